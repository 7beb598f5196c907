package ha

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/danackerson/charm-helpers/pkg/metrics"
	"github.com/danackerson/charm-helpers/pkg/types"
)

// minDNSHARelease is the first platform release shipping the MAAS client
// DNS HA depends on. Compared lexicographically.
const minDNSHARelease = "16.04"

// dnsSettings are the hostname configuration slots considered for DNS HA,
// processed in this order.
var dnsSettings = []string{
	"os-admin-hostname",
	"os-internal-hostname",
	"os-public-hostname",
	"os-access-hostname",
}

var hostnameSettingRE = regexp.MustCompile(`os-(.+?)-hostname`)

// AssertSupportsDNSHA validates the platform can run DNS HA. On releases
// older than 16.04 it reports a blocked status and returns a BlockedError.
func (g *Generator) AssertSupportsDNSHA() error {
	if g.env.LSBRelease() < minDNSHARelease {
		return g.blocked(metrics.ReasonUnsupportedRelease,
			"DNS HA is only supported on 16.04 and greater versions of Ubuntu.")
	}
	return nil
}

// dnsHAResources builds the DNS-HA resource fragment: one hostname
// resource per configured os-*-hostname setting, keyed by endpoint type,
// with the resolved endpoint address baked into the parameters.
func (g *Generator) dnsHAResources(service string) (*types.RelationData, error) {
	if err := g.AssertSupportsDNSHA(); err != nil {
		return nil, err
	}

	data := types.NewRelationData()
	var group []string

	for _, setting := range dnsSettings {
		hostname := g.env.Config(setting)
		if hostname == "" {
			g.logger.Debug().Str("setting", setting).Msg("hostname setting unset, ignoring")
			continue
		}

		m := hostnameSettingRE.FindStringSubmatch(setting)
		if m == nil {
			return nil, g.blocked(metrics.ReasonBadHostnameSetting, fmt.Sprintf(
				"Unexpected DNS hostname setting: %s. Cannot determine endpoint_type name",
				setting))
		}
		endpointType := m[1]
		// The address-resolution map abbreviates "internal".
		if endpointType == "internal" {
			endpointType = "int"
		}

		key := fmt.Sprintf("res_%s_%s_hostname", service, endpointType)
		if contains(group, key) {
			g.logger.Debug().
				Str("resource", key).
				Str("hostname", hostname).
				Msg("resource already in hostname group, skipping")
			continue
		}

		addr, err := g.env.ResolveAddress(endpointType, false)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s address: %w", endpointType, err)
		}

		group = append(group, key)
		data.Resources[key] = g.crmOCF
		data.ResourceParams[key] = fmt.Sprintf(
			`params fqdn="%s" ip_address="%s"`, hostname, addr)
	}

	if len(group) == 0 {
		return nil, g.blocked(metrics.ReasonEmptyHostnameGroup,
			"DNS HA: Hostname group has no members.")
	}

	g.logger.Debug().
		Str("members", strings.Join(group, " ")).
		Msg("hostname group set, informing the ha relation")
	data.Groups = map[string]string{
		fmt.Sprintf(dnsGroupFormat, service): strings.Join(group, " "),
	}
	return data, nil
}
