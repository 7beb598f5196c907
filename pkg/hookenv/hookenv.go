package hookenv

import (
	"errors"
	"strings"
)

var (
	// ErrNotImplemented indicates the deployment framework does not
	// support the requested lookup (e.g. goal-state on older agents).
	ErrNotImplemented = errors.New("hook environment lookup not implemented")

	// ErrNotFound indicates the requested key or relation is absent.
	ErrNotFound = errors.New("hook environment key not found")
)

// StatusState is a workload status reported to the operator.
type StatusState string

const (
	StatusActive      StatusState = "active"
	StatusBlocked     StatusState = "blocked"
	StatusMaintenance StatusState = "maintenance"
	StatusWaiting     StatusState = "waiting"
)

// ClusterConfig carries the HA-cluster section of charm configuration.
type ClusterConfig struct {
	// VIP is a whitespace-separated list of virtual IP literals,
	// IPv4 and IPv6 mixed.
	VIP string
}

// Environment is the surface this module consumes from the surrounding
// deployment framework. All lookups are synchronous and read-only;
// SetStatus and RelationSet are the only side-effecting calls.
type Environment interface {
	// CharmName returns the name of the charm owning this unit.
	CharmName() string

	// Config returns the configuration value for key, or "" when unset.
	Config(key string) string

	// ConfigFlag interprets the configuration value for key as a boolean.
	// Unset values are false.
	ConfigFlag(key string) bool

	// RelatedUnits lists the units expected on relations of the given
	// type. May fail with ErrNotImplemented or ErrNotFound.
	RelatedUnits(relType string) ([]string, error)

	// ResolveAddress returns the canonical network address for an
	// endpoint type ("admin", "int", "public", "access").
	ResolveAddress(endpointType string, override bool) (string, error)

	// SetStatus reports workload status to the operator. Fire-and-forget.
	SetStatus(state StatusState, message string)

	// RelationSet publishes data on the given relation.
	RelationSet(relationID string, data map[string]string) error

	// LSBRelease returns the host platform release identifier,
	// e.g. "22.04".
	LSBRelease() string

	// ClusterConfig returns the HA-cluster charm configuration.
	ClusterConfig() (ClusterConfig, error)
}

// ParseFlag interprets a configuration string as a boolean the way charm
// config does: recognised boolean literals parse as such, any other
// non-empty value is true.
func ParseFlag(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "false", "no", "off", "0", "none":
		return false
	default:
		return true
	}
}
