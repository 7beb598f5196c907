package ha

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danackerson/charm-helpers/pkg/hookenv"
)

// TestNew tests generator construction and defaults
func TestNew(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)

	gen, err := New(Config{Environment: &hookenv.StaticEnvironment{}})
	require.NoError(t, err)
	assert.Equal(t, DefaultDNSResourceAgent, gen.crmOCF)
	assert.NotNil(t, gen.disc)

	gen, err = New(Config{
		Environment:      &hookenv.StaticEnvironment{},
		DNSResourceAgent: "ocf:custom:dns",
	})
	require.NoError(t, err)
	assert.Equal(t, "ocf:custom:dns", gen.crmOCF)
}

// TestExpectHA tests the HA-expectation decision
func TestExpectHA(t *testing.T) {
	tests := []struct {
		name     string
		units    []string
		unitsErr error
		settings map[string]string
		expected bool
	}{
		{
			name:     "nothing configured, no units",
			settings: map[string]string{},
			expected: false,
		},
		{
			name:     "related units present",
			units:    []string{"hacluster/0", "hacluster/1", "hacluster/2"},
			settings: map[string]string{},
			expected: true,
		},
		{
			name:     "vip configured, lookup unimplemented",
			unitsErr: hookenv.ErrNotImplemented,
			settings: map[string]string{"vip": "10.0.0.1"},
			expected: true,
		},
		{
			name:     "dns-ha configured",
			settings: map[string]string{"dns-ha": "true"},
			expected: true,
		},
		{
			name:     "lookup unimplemented, nothing configured",
			unitsErr: hookenv.ErrNotImplemented,
			settings: map[string]string{},
			expected: false,
		},
		{
			name:     "lookup key missing, nothing configured",
			unitsErr: fmt.Errorf("relation type ha: %w", hookenv.ErrNotFound),
			settings: map[string]string{},
			expected: false,
		},
		{
			name:     "unexpected lookup failure counts as zero units",
			unitsErr: errors.New("agent exploded"),
			settings: map[string]string{},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := &hookenv.StaticEnvironment{
				Settings: tt.settings,
				Units:    map[string][]string{"ha": tt.units},
				UnitsErr: tt.unitsErr,
			}
			gen := newTestGenerator(t, env, testDiscovery())
			assert.Equal(t, tt.expected, gen.ExpectHA())
		})
	}
}
