/*
Package types defines the data model for HA relation payloads.

A RelationData value aggregates everything a unit tells its cluster-manager
peer: the resources to create (name -> resource agent), their parameter
strings, group memberships, clone sets, init services, colocation
constraints, and legacy resource names to delete. The fixed keys mirror the
wire contract; anything else a charm wants to send rides in Extra.

# Wire format

Encode produces the mapping actually placed on the relation:

	json_resources        {"res_nova_00d7353":"ocf:heartbeat:IPaddr2",...}
	json_resource_params  {"res_nova_00d7353":"params ip=\"10.0.0.5\" ..."}
	json_groups           {"grp_nova_vips":"res_nova_00d7353"}
	json_delete_resources ["res_nova_eth0"]

Values are compact JSON with sorted object keys, so identical logical input
always yields identical bytes. The peer relies on that to detect whether a
reconfiguration actually changed anything. Keys whose value is empty never
appear in the encoded mapping.

# Merge semantics

Merge implements the deep-merge used both for caller-supplied extra settings
and for folding builder fragments into a payload: map-valued keys merge per
entry (the incoming side wins on collisions), delete_resources appends, and
unknown keys are adopted as-is.

# Invariants

  - Every resource created by this module has a matching resource_params
    entry.
  - Group members reference existing resources entries.
  - delete_resources only ever carries legacy-format names.
*/
package types
