package ha

import "errors"

// BlockedError indicates the current configuration cannot be reconciled:
// the platform lacks a required capability, a DNS hostname setting violates
// the naming contract, or DNS HA was requested with no usable hostnames.
// A blocked unit status is always reported before one is returned; callers
// must treat it as fatal to the reconfiguration attempt, not retry.
type BlockedError struct {
	Message string
}

func (e *BlockedError) Error() string {
	return e.Message
}

// IsBlocked reports whether err is (or wraps) a BlockedError.
func IsBlocked(err error) bool {
	var blocked *BlockedError
	return errors.As(err, &blocked)
}
