/*
Package ha generates cluster HA configuration payloads for the hacluster
relation: corosync/pacemaker resource descriptions derived from configured
virtual IPs or DNS hostnames, plus haproxy clone sets and caller-supplied
service-specific resources.

# Architecture

A Generator is wired with the collaborators the deployment framework owns:

	gen, err := ha.New(ha.Config{
		Environment: env,                    // config, addresses, relation channel
		Discovery:   network.NewSystemDiscovery(),
		Store:       store,                  // optional publish cache
	})

	payload, err := gen.GenerateRelationData("keystone", true, nil)
	// payload["json_resources"]      -> {"res_keystone_242d562":"ocf:heartbeat:IPaddr2",...}
	// payload["json_groups"]         -> {"grp_keystone_vips":"res_keystone_242d562"}
	// payload["json_delete_resources"] -> ["res_keystone_eth1"]

Exactly one of the two builders populates the service-level resources:

  - VIP mode (default): one IPaddr2/IPv6addr resource per configured VIP,
    named res_<service>_<first 7 sha1 hex chars of the VIP> so the name is
    identical on every unit. Interface and netmask come from local
    discovery, falling back to vip_iface/vip_cidr configuration; fallback
    parameters pin nic and cidr_netmask, auto-detected ones leave them to
    the cluster manager. Legacy interface-based names are always scheduled
    for deletion.

  - DNS mode (dns-ha=true): one ocf:maas:dns resource per configured
    os-{admin,internal,public,access}-hostname setting, keyed by endpoint
    type ("internal" abbreviates to "int"), carrying the resolved endpoint
    address. Requires platform release 16.04 or later.

# Errors

Configuration states that cannot be reconciled (unsupported release,
malformed hostname setting, DNS HA with no hostnames) report a blocked
unit status and surface as *BlockedError; everything softer is logged and
skipped. Collaborator failures wrap and propagate.

# Idempotency

Resource names are pure functions of (service, VIP) or (service, endpoint
type) and the payload encoding is byte-stable, so re-running a hook with
unchanged configuration republishes identical bytes — which the optional
payload store uses to skip the relation write entirely.
*/
package ha
