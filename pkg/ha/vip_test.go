package ha

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danackerson/charm-helpers/pkg/hookenv"
	"github.com/danackerson/charm-helpers/pkg/network"
	"github.com/danackerson/charm-helpers/pkg/types"
)

// Discovery tables shared across tests. sha1 short hashes:
// 10.5.100.1 -> 242d562, ffff::1 -> 856d56f, ffaa::1 -> f563c5d.
var (
	testIfaces = map[string]string{
		"10.5.100.1": "eth1",
		"ffff::1":    "eth1",
		"ffaa::1":    "eth2",
	}
	testNetmasks = map[string]string{
		"10.5.100.1": "255.255.255.0",
		"ffff::1":    "64",
		"ffaa::1":    "32",
	}
)

func testDiscovery() network.Discovery {
	return &network.StaticDiscovery{Interfaces: testIfaces, Netmasks: testNetmasks}
}

func newTestGenerator(t *testing.T, env hookenv.Environment, disc network.Discovery) *Generator {
	t.Helper()
	gen, err := New(Config{Environment: env, Discovery: disc})
	require.NoError(t, err)
	return gen
}

// TestVIPSettings tests interface/netmask discovery with config fallback
func TestVIPSettings(t *testing.T) {
	env := &hookenv.StaticEnvironment{
		Settings: map[string]string{
			"vip_iface": "eth3",
			"vip_cidr":  "255.255.0.0",
		},
	}
	gen := newTestGenerator(t, env, testDiscovery())

	iface, netmask, fallback := gen.VIPSettings("10.5.100.1")
	assert.Equal(t, "eth1", iface)
	assert.Equal(t, "255.255.255.0", netmask)
	assert.False(t, fallback)

	iface, netmask, fallback = gen.VIPSettings("192.168.100.1")
	assert.Equal(t, "eth3", iface)
	assert.Equal(t, "255.255.0.0", netmask)
	assert.True(t, fallback)
}

// TestVIPResourcesSingle tests a single auto-detected IPv4 VIP
func TestVIPResourcesSingle(t *testing.T) {
	env := &hookenv.StaticEnvironment{
		Settings: map[string]string{"vip": "10.5.100.1"},
	}
	gen := newTestGenerator(t, env, testDiscovery())

	data, err := gen.vipResources("testservice")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"res_testservice_242d562": "ocf:heartbeat:IPaddr2",
	}, data.Resources)
	assert.Equal(t, map[string]string{
		"res_testservice_242d562": `params ip="10.5.100.1" op monitor depth="0" timeout="20s" interval="10s"`,
	}, data.ResourceParams)
	assert.Equal(t, map[string]string{
		"grp_testservice_vips": "res_testservice_242d562",
	}, data.Groups)
	assert.Equal(t, []string{"res_testservice_eth1"}, data.DeleteResources)
}

// TestVIPResourcesFallback tests config-supplied interface and netmask
func TestVIPResourcesFallback(t *testing.T) {
	env := &hookenv.StaticEnvironment{
		Settings: map[string]string{
			"vip":       "10.5.100.1",
			"vip_iface": "eth1",
			"vip_cidr":  "255.255.255.0",
		},
	}
	gen := newTestGenerator(t, env, &network.StaticDiscovery{})

	data, err := gen.vipResources("testservice")
	require.NoError(t, err)

	// Fallback parameters pin nic and cidr_netmask.
	assert.Equal(t,
		`params ip="10.5.100.1" cidr_netmask="255.255.255.0" nic="eth1" op monitor depth="0" timeout="20s" interval="10s"`,
		data.ResourceParams["res_testservice_242d562"])
	assert.Equal(t, []string{"res_testservice_eth1"}, data.DeleteResources)
}

// TestVIPResourcesMultiple tests mixed IPv4/IPv6 VIPs with legacy-name
// disambiguation
func TestVIPResourcesMultiple(t *testing.T) {
	env := &hookenv.StaticEnvironment{
		Settings: map[string]string{"vip": "10.5.100.1 ffff::1 ffaa::1"},
	}
	gen := newTestGenerator(t, env, testDiscovery())

	data, err := gen.vipResources("testservice")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"res_testservice_242d562": "ocf:heartbeat:IPaddr2",
		"res_testservice_856d56f": "ocf:heartbeat:IPv6addr",
		"res_testservice_f563c5d": "ocf:heartbeat:IPv6addr",
	}, data.Resources)
	assert.Equal(t, map[string]string{
		"res_testservice_242d562": `params ip="10.5.100.1" op monitor depth="0" timeout="20s" interval="10s"`,
		"res_testservice_856d56f": `params ipv6addr="ffff::1" op monitor depth="0" timeout="20s" interval="10s"`,
		"res_testservice_f563c5d": `params ipv6addr="ffaa::1" op monitor depth="0" timeout="20s" interval="10s"`,
	}, data.ResourceParams)

	// Group members follow VIP order.
	assert.Equal(t, map[string]string{
		"grp_testservice_vips": "res_testservice_242d562 res_testservice_856d56f res_testservice_f563c5d",
	}, data.Groups)

	// Both VIPs on eth1 collide on the legacy name; the second gets the
	// parameter-key suffix.
	assert.Equal(t, []string{
		"res_testservice_eth1",
		"res_testservice_eth1_ipv6addr",
		"res_testservice_eth2",
	}, data.DeleteResources)
}

// TestVIPResourcesNoVIPs tests that an empty VIP list records nothing
func TestVIPResourcesNoVIPs(t *testing.T) {
	env := &hookenv.StaticEnvironment{Settings: map[string]string{}}
	gen := newTestGenerator(t, env, testDiscovery())

	data, err := gen.vipResources("testservice")
	require.NoError(t, err)
	assert.Empty(t, data.Resources)
	assert.Empty(t, data.Groups)
	assert.Empty(t, data.DeleteResources)
}

// TestVIPResourcesNoInterface tests that a VIP with no discoverable or
// configured interface is skipped entirely
func TestVIPResourcesNoInterface(t *testing.T) {
	env := &hookenv.StaticEnvironment{
		Settings: map[string]string{"vip": "192.168.100.1"},
	}
	gen := newTestGenerator(t, env, &network.StaticDiscovery{})

	data, err := gen.vipResources("testservice")
	require.NoError(t, err)
	assert.Empty(t, data.Resources)
	assert.Empty(t, data.Groups)
	assert.Empty(t, data.DeleteResources)
}

// TestVIPResourceNamesDeterministic tests that repeated builds yield
// identical resource names
func TestVIPResourceNamesDeterministic(t *testing.T) {
	env := &hookenv.StaticEnvironment{
		Settings: map[string]string{"vip": "10.5.100.1 ffff::1"},
	}
	gen := newTestGenerator(t, env, testDiscovery())

	first, err := gen.vipResources("testservice")
	require.NoError(t, err)
	second, err := gen.vipResources("testservice")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// TestVIPInvariants tests that every resource has params and every group
// member references an existing resource
func TestVIPInvariants(t *testing.T) {
	env := &hookenv.StaticEnvironment{
		Settings: map[string]string{"vip": "10.5.100.1 ffff::1 ffaa::1"},
	}
	gen := newTestGenerator(t, env, testDiscovery())

	data, err := gen.vipResources("testservice")
	require.NoError(t, err)
	assertPayloadInvariants(t, data)
}

func assertPayloadInvariants(t *testing.T, data *types.RelationData) {
	t.Helper()
	for name := range data.Resources {
		assert.Contains(t, data.ResourceParams, name)
	}
	for _, members := range data.Groups {
		for _, member := range strings.Fields(members) {
			assert.Contains(t, data.Resources, member)
		}
	}
}
