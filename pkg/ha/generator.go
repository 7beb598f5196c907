package ha

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/danackerson/charm-helpers/pkg/hookenv"
	"github.com/danackerson/charm-helpers/pkg/log"
	"github.com/danackerson/charm-helpers/pkg/metrics"
	"github.com/danackerson/charm-helpers/pkg/network"
	"github.com/danackerson/charm-helpers/pkg/storage"
)

const (
	// haRelationType is the relation consumed by the cluster-manager peer.
	haRelationType = "ha"

	// DefaultDNSResourceAgent is the OCF resource agent used for DNS HA
	// unless overridden in Config.
	DefaultDNSResourceAgent = "ocf:maas:dns"

	agentIPv4    = "ocf:heartbeat:IPaddr2"
	agentIPv6    = "ocf:heartbeat:IPv6addr"
	agentHAProxy = "lsb:haproxy"

	vipMonitoring     = `op monitor depth="0" timeout="20s" interval="10s"`
	haproxyMonitoring = `op monitor interval="5s"`

	vipGroupFormat = "grp_%s_vips"
	dnsGroupFormat = "grp_%s_hostnames"
)

// Config assembles a Generator's collaborators.
type Config struct {
	// Environment supplies charm configuration, address resolution,
	// status reporting and the relation channel. Required.
	Environment hookenv.Environment

	// Discovery resolves interfaces/netmasks for VIPs. Defaults to the
	// system interface table.
	Discovery network.Discovery

	// Store, when set, caches the last published payload per relation id
	// so unchanged payloads skip the relation write.
	Store *storage.Store

	// DNSResourceAgent overrides the resource agent for DNS HA entries.
	DNSResourceAgent string
}

// Generator builds and publishes HA relation payloads from charm
// configuration. It holds no state between calls; every payload is built
// fresh from the injected collaborators.
type Generator struct {
	env    hookenv.Environment
	disc   network.Discovery
	store  *storage.Store
	crmOCF string
	logger zerolog.Logger
}

// New creates a Generator from cfg.
func New(cfg Config) (*Generator, error) {
	if cfg.Environment == nil {
		return nil, fmt.Errorf("hook environment is required")
	}
	disc := cfg.Discovery
	if disc == nil {
		disc = network.NewSystemDiscovery()
	}
	crmOCF := cfg.DNSResourceAgent
	if crmOCF == "" {
		crmOCF = DefaultDNSResourceAgent
	}
	return &Generator{
		env:    cfg.Environment,
		disc:   disc,
		store:  cfg.Store,
		crmOCF: crmOCF,
		logger: log.WithComponent("ha"),
	}, nil
}

// ExpectHA reports whether this unit should expect an HA relation: either
// at least one related unit already exists, or the vip/dns-ha configuration
// indicates one is coming. A related-unit lookup the framework cannot
// answer counts as zero units, never as an error.
func (g *Generator) ExpectHA() bool {
	units, err := g.env.RelatedUnits(haRelationType)
	if err != nil {
		if !errors.Is(err, hookenv.ErrNotImplemented) && !errors.Is(err, hookenv.ErrNotFound) {
			g.logger.Warn().Err(err).Msg("related-unit lookup failed, assuming none")
		}
		units = nil
	}
	return len(units) > 0 || g.env.ConfigFlag("vip") || g.env.ConfigFlag("dns-ha")
}

// blocked reports a blocked unit status, bumps the matching counter and
// returns the BlockedError builders hand back.
func (g *Generator) blocked(reason, msg string) error {
	metrics.BlockedErrors.WithLabelValues(reason).Inc()
	g.env.SetStatus(hookenv.StatusBlocked, msg)
	return &BlockedError{Message: msg}
}
