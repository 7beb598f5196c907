package types

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Fixed top-level keys of the HA relation payload. Caller-supplied keys
// outside this set travel in RelationData.Extra.
const (
	KeyResources       = "resources"
	KeyResourceParams  = "resource_params"
	KeyGroups          = "groups"
	KeyClones          = "clones"
	KeyInitServices    = "init_services"
	KeyColocations     = "colocations"
	KeyDeleteResources = "delete_resources"
)

// EncodedKeyPrefix is prepended to every payload key before the encoded
// mapping is handed to the relation channel.
const EncodedKeyPrefix = "json_"

// RelationData describes the cluster resources a unit asks its HA peer to
// manage: resource agents, their parameters, grouping and colocation rules,
// and legacy resource names scheduled for deletion.
type RelationData struct {
	// Resources maps resource name to resource-agent identifier
	// (e.g. "ocf:heartbeat:IPaddr2").
	Resources map[string]string

	// ResourceParams maps resource name to its parameter string. Every
	// resource created by this module has a matching entry here.
	ResourceParams map[string]string

	// Groups maps group name to a space-joined, ordered member list.
	Groups map[string]string

	// Clones maps clone-set name to the resource it clones.
	Clones map[string]string

	// InitServices maps resource name to the init service backing it.
	InitServices map[string]string

	// Colocations maps constraint name to its descriptor string. Passed
	// through verbatim, never interpreted here.
	Colocations map[string]string

	// DeleteResources lists legacy resource names the peer should remove.
	// Order is preserved; names are appended, never rewritten.
	DeleteResources []string

	// Extra holds caller-supplied top-level keys outside the fixed set,
	// each a name->descriptor table of the same shape as the above maps.
	Extra map[string]map[string]string
}

// NewRelationData returns a RelationData with the resources and
// resource_params tables initialised, the shape every payload starts from.
func NewRelationData() *RelationData {
	return &RelationData{
		Resources:      map[string]string{},
		ResourceParams: map[string]string{},
	}
}

// Merge folds other into d. Map-valued keys are merged per entry with other
// winning on collisions; DeleteResources entries are appended in order;
// Extra tables merge the same way as the fixed maps. A nil other is a no-op.
func (d *RelationData) Merge(other *RelationData) {
	if other == nil {
		return
	}
	d.Resources = mergeTable(d.Resources, other.Resources)
	d.ResourceParams = mergeTable(d.ResourceParams, other.ResourceParams)
	d.Groups = mergeTable(d.Groups, other.Groups)
	d.Clones = mergeTable(d.Clones, other.Clones)
	d.InitServices = mergeTable(d.InitServices, other.InitServices)
	d.Colocations = mergeTable(d.Colocations, other.Colocations)
	d.DeleteResources = append(d.DeleteResources, other.DeleteResources...)
	for key, table := range other.Extra {
		if d.Extra == nil {
			d.Extra = map[string]map[string]string{}
		}
		d.Extra[key] = mergeTable(d.Extra[key], table)
	}
}

func mergeTable(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// Encode serialises every non-empty top-level value to canonical JSON
// (sorted keys, compact separators, no extraneous whitespace) under a
// "json_"-prefixed key. Empty values are omitted entirely. The result is
// byte-stable for identical logical input: the receiving side compares
// encodings to detect changes.
func (d *RelationData) Encode() (map[string]string, error) {
	encoded := map[string]string{}

	tables := map[string]map[string]string{
		KeyResources:      d.Resources,
		KeyResourceParams: d.ResourceParams,
		KeyGroups:         d.Groups,
		KeyClones:         d.Clones,
		KeyInitServices:   d.InitServices,
		KeyColocations:    d.Colocations,
	}
	for key, table := range d.Extra {
		tables[key] = table
	}

	for key, table := range tables {
		if len(table) == 0 {
			continue
		}
		raw, err := json.Marshal(table)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", key, err)
		}
		encoded[EncodedKeyPrefix+key] = string(raw)
	}

	if len(d.DeleteResources) > 0 {
		raw, err := json.Marshal(d.DeleteResources)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", KeyDeleteResources, err)
		}
		encoded[EncodedKeyPrefix+KeyDeleteResources] = string(raw)
	}

	return encoded, nil
}

// Keys returns the sorted top-level keys that would survive encoding.
// Useful for logging what a payload carries without dumping it.
func (d *RelationData) Keys() []string {
	encoded, err := d.Encode()
	if err != nil {
		return nil
	}
	keys := make([]string, 0, len(encoded))
	for k := range encoded {
		keys = append(keys, k[len(EncodedKeyPrefix):])
	}
	sort.Strings(keys)
	return keys
}
