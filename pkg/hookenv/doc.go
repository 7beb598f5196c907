/*
Package hookenv abstracts the deployment-framework surface the HA helpers
consume: charm configuration, related-unit discovery, endpoint address
resolution, unit status reporting and relation data publication.

The core never talks to the framework directly; it takes an Environment.
Two implementations ship here: FileEnvironment, a YAML snapshot used by the
charm-ha CLI and for replaying hook runs offline, and StaticEnvironment, a
map-backed stub for tests. A live charm supplies its own implementation
bridging to the agent's hook tools.
*/
package hookenv
