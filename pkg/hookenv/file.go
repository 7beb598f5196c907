package hookenv

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/danackerson/charm-helpers/pkg/log"
	"github.com/danackerson/charm-helpers/pkg/network"
)

// fileDoc is the on-disk YAML shape of a hook environment snapshot.
type fileDoc struct {
	Charm        string                       `yaml:"charm"`
	LSBRelease   string                       `yaml:"lsb_release"`
	Config       map[string]string            `yaml:"config"`
	RelatedUnits map[string][]string          `yaml:"related_units"`
	Addresses    map[string]string            `yaml:"addresses"`
	Network      struct {
		Interfaces map[string]string `yaml:"interfaces"`
		Netmasks   map[string]string `yaml:"netmasks"`
	} `yaml:"network"`
}

// FileEnvironment is an Environment backed by a YAML snapshot of charm
// state. It exists for the charm-ha CLI and for reproducing hook runs
// outside a live deployment; status reports and relation writes are logged
// and retained for inspection rather than handed to a real agent.
type FileEnvironment struct {
	doc fileDoc

	// LastStatus holds the most recent SetStatus call, if any.
	LastStatus *StatusRecord

	// Relations holds the data last published per relation id.
	Relations map[string]map[string]string
}

// StatusRecord is one observed SetStatus call.
type StatusRecord struct {
	State   StatusState
	Message string
}

// LoadFileEnvironment reads a YAML environment snapshot from path.
func LoadFileEnvironment(path string) (*FileEnvironment, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read environment file: %w", err)
	}

	var doc fileDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse environment file %s: %w", path, err)
	}
	if doc.Charm == "" {
		return nil, fmt.Errorf("environment file %s: charm name is required", path)
	}

	return &FileEnvironment{
		doc:       doc,
		Relations: map[string]map[string]string{},
	}, nil
}

// CharmName returns the charm name from the snapshot.
func (e *FileEnvironment) CharmName() string {
	return e.doc.Charm
}

// Config returns the configured value for key, or "" when unset.
func (e *FileEnvironment) Config(key string) string {
	return e.doc.Config[key]
}

// ConfigFlag interprets the configured value for key as a boolean.
func (e *FileEnvironment) ConfigFlag(key string) bool {
	return ParseFlag(e.doc.Config[key])
}

// RelatedUnits lists units for the relation type. A relation type absent
// from the snapshot yields ErrNotFound, mirroring a framework without the
// relation established.
func (e *FileEnvironment) RelatedUnits(relType string) ([]string, error) {
	units, ok := e.doc.RelatedUnits[relType]
	if !ok {
		return nil, fmt.Errorf("relation type %s: %w", relType, ErrNotFound)
	}
	return units, nil
}

// ResolveAddress returns the snapshot address for the endpoint type.
func (e *FileEnvironment) ResolveAddress(endpointType string, override bool) (string, error) {
	addr, ok := e.doc.Addresses[endpointType]
	if !ok {
		return "", fmt.Errorf("no address for endpoint type %s: %w", endpointType, ErrNotFound)
	}
	return addr, nil
}

// SetStatus logs the status and retains it on LastStatus.
func (e *FileEnvironment) SetStatus(state StatusState, message string) {
	e.LastStatus = &StatusRecord{State: state, Message: message}
	log.Logger.Info().
		Str("state", string(state)).
		Str("message", message).
		Msg("unit status")
}

// RelationSet logs the publish and retains the data per relation id.
func (e *FileEnvironment) RelationSet(relationID string, data map[string]string) error {
	e.Relations[relationID] = data
	relLog := log.WithRelation(relationID)
	relLog.Info().
		Int("keys", len(data)).
		Msg("relation data set")
	return nil
}

// LSBRelease returns the snapshot platform release identifier.
func (e *FileEnvironment) LSBRelease() string {
	return e.doc.LSBRelease
}

// ClusterConfig returns the HA-cluster configuration from the snapshot.
func (e *FileEnvironment) ClusterConfig() (ClusterConfig, error) {
	return ClusterConfig{VIP: e.doc.Config["vip"]}, nil
}

// Discovery builds a network discovery from the snapshot's network
// section. When the section is empty the system discovery is used, so a
// snapshot taken on the target host still resolves real interfaces.
func (e *FileEnvironment) Discovery() network.Discovery {
	if len(e.doc.Network.Interfaces) == 0 && len(e.doc.Network.Netmasks) == 0 {
		return network.NewSystemDiscovery()
	}
	return &network.StaticDiscovery{
		Interfaces: e.doc.Network.Interfaces,
		Netmasks:   e.doc.Network.Netmasks,
	}
}
