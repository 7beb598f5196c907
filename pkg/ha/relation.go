package ha

import (
	"encoding/json"
	"fmt"

	"github.com/danackerson/charm-helpers/pkg/metrics"
	"github.com/danackerson/charm-helpers/pkg/types"
)

// GenerateRelationData builds the encoded HA relation payload for service.
//
// The payload starts from the haproxy clone-set block (when enabled),
// deep-merges any caller-supplied extra settings, then folds in either the
// DNS-HA or the VIP resource fragment depending on the dns-ha
// configuration flag. The result maps "json_"-prefixed keys to canonical
// JSON encodings, omitting empty values.
//
// Extra settings let a charm attach service-specific resources:
//
//	extra := &types.RelationData{
//		Colocations:  map[string]string{"vip_cauth": "inf: res_nova_cauth grp_nova_vips"},
//		Resources:    map[string]string{"res_nova_cauth": "ocf:openstack:nova-cauth"},
//		InitServices: map[string]string{"res_nova_cauth": "nova-cauth"},
//	}
//	payload, err := gen.GenerateRelationData("nova", true, extra)
func (g *Generator) GenerateRelationData(service string, haproxyEnabled bool, extra *types.RelationData) (map[string]string, error) {
	data := types.NewRelationData()

	if haproxyEnabled {
		res := fmt.Sprintf("res_%s_haproxy", service)
		data.Resources[res] = agentHAProxy
		data.ResourceParams[res] = haproxyMonitoring
		data.InitServices = map[string]string{res: "haproxy"}
		data.Clones = map[string]string{
			fmt.Sprintf("cl_%s_haproxy", service): res,
		}
	}

	data.Merge(extra)

	mode := "vip"
	build := g.vipResources
	if g.env.ConfigFlag("dns-ha") {
		mode = "dns"
		build = g.dnsHAResources
	}
	fragment, err := build(service)
	if err != nil {
		return nil, err
	}
	data.Merge(fragment)

	metrics.PayloadsGenerated.WithLabelValues(mode).Inc()
	g.logger.Debug().
		Str("service", service).
		Str("mode", mode).
		Strs("keys", data.Keys()).
		Msg("relation payload generated")
	return data.Encode()
}

// PublishRelationData generates the payload for service and hands it to
// the relation channel. When a payload store is configured and the encoded
// payload is byte-identical to the last one published on relationID, the
// relation write is skipped.
func (g *Generator) PublishRelationData(relationID, service string, haproxyEnabled bool, extra *types.RelationData) error {
	payload, err := g.GenerateRelationData(service, haproxyEnabled, extra)
	if err != nil {
		return err
	}

	if g.store != nil && !g.store.Changed(relationID, payload) {
		metrics.PublishesTotal.WithLabelValues(metrics.OutcomeUnchanged).Inc()
		g.logger.Debug().
			Str("relation_id", relationID).
			Msg("relation payload unchanged, skipping publish")
		return nil
	}

	if err := g.env.RelationSet(relationID, payload); err != nil {
		return fmt.Errorf("failed to publish relation data: %w", err)
	}
	if g.store != nil {
		if err := g.store.Put(relationID, payload); err != nil {
			g.logger.Warn().Err(err).Msg("failed to record published payload")
		}
	}

	metrics.PublishesTotal.WithLabelValues(metrics.OutcomePublished).Inc()
	g.logger.Info().
		Str("relation_id", relationID).
		Str("service", service).
		Int("keys", len(payload)).
		Msg("relation data published")
	return nil
}

// UpdateDNSHAResourceParams folds DNS-HA resources for this charm into the
// caller's resources/resource_params maps and publishes the hostname group
// on relationID. Retained for charms that assemble the rest of the
// relation data themselves.
func (g *Generator) UpdateDNSHAResourceParams(relationID string, resources, resourceParams map[string]string) error {
	fragment, err := g.dnsHAResources(g.env.CharmName())
	if err != nil {
		return err
	}

	for k, v := range fragment.Resources {
		resources[k] = v
	}
	for k, v := range fragment.ResourceParams {
		resourceParams[k] = v
	}

	groups, err := json.Marshal(fragment.Groups)
	if err != nil {
		return fmt.Errorf("failed to encode groups: %w", err)
	}
	if err := g.env.RelationSet(relationID, map[string]string{
		types.KeyGroups: string(groups),
	}); err != nil {
		return fmt.Errorf("failed to publish hostname group: %w", err)
	}
	return nil
}
