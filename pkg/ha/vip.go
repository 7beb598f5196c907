package ha

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/danackerson/charm-helpers/pkg/metrics"
	"github.com/danackerson/charm-helpers/pkg/network"
	"github.com/danackerson/charm-helpers/pkg/types"
)

// VIPSettings determines the interface and netmask serving vip. When
// discovery cannot answer, the charm-supplied vip_iface/vip_cidr values are
// substituted and fallback is true.
func (g *Generator) VIPSettings(vip string) (iface, netmask string, fallback bool) {
	iface = g.disc.InterfaceForAddress(vip)
	netmask = g.disc.NetmaskForAddress(vip)
	if iface == "" {
		iface = g.env.Config("vip_iface")
		fallback = true
	}
	if netmask == "" {
		netmask = g.env.Config("vip_cidr")
		fallback = true
	}
	return iface, netmask, fallback
}

// vipResources builds the VIP resource fragment: one resource per
// configured VIP, named from the sha1 of the VIP literal so the name is
// stable across units regardless of interface naming. Legacy
// interface-based names are scheduled for deletion whenever an interface
// is known, cleaning up resources created under the old naming scheme.
func (g *Generator) vipResources(service string) (*types.RelationData, error) {
	clusterCfg, err := g.env.ClusterConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to read cluster configuration: %w", err)
	}

	data := types.NewRelationData()
	var group []string
	var toDelete []string

	for _, vip := range strings.Fields(clusterCfg.VIP) {
		agent, paramKey := agentIPv4, "ip"
		if network.IsIPv6(vip) {
			agent, paramKey = agentIPv6, "ipv6addr"
		}

		iface, netmask, fallback := g.VIPSettings(vip)
		if iface == "" {
			g.logger.Debug().Str("vip", vip).Msg("no interface for VIP, skipping")
			continue
		}
		if fallback {
			metrics.VIPFallbacks.Inc()
		}

		// Old naming encoded the interface in the resource name, which
		// breaks when interface/subnet wiring differs across units.
		legacy := fmt.Sprintf("res_%s_%s", service, iface)
		if contains(toDelete, legacy) {
			legacy = fmt.Sprintf("%s_%s", legacy, paramKey)
		}
		if !contains(toDelete, legacy) {
			toDelete = append(toDelete, legacy)
		}

		name := fmt.Sprintf("res_%s_%s", service, shortHash(vip))
		data.Resources[name] = agent
		if fallback {
			data.ResourceParams[name] = fmt.Sprintf(
				`params %s="%s" cidr_netmask="%s" nic="%s" %s`,
				paramKey, vip, netmask, iface, vipMonitoring)
		} else {
			// Discovery succeeded centrally but may differ per node;
			// leave nic/netmask to the cluster manager.
			data.ResourceParams[name] = fmt.Sprintf(
				`params %s="%s" %s`, paramKey, vip, vipMonitoring)
		}
		group = append(group, name)
	}

	data.DeleteResources = toDelete
	if len(group) >= 1 {
		data.Groups = map[string]string{
			fmt.Sprintf(vipGroupFormat, service): strings.Join(group, " "),
		}
	}
	return data, nil
}

// shortHash returns the first 7 hex characters of the SHA-1 digest of s.
func shortHash(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])[:7]
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
