/*
Package metrics exposes Prometheus instrumentation for HA payload
generation: payloads built per mode, blocking configuration errors by
reason, fallback interface/netmask usage, and relation publish outcomes.

Collectors register themselves at package load; Handler serves them for
scraping when the surrounding process runs an HTTP endpoint.
*/
package metrics
