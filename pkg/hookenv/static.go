package hookenv

// StaticEnvironment is a map-backed Environment for tests. Zero value is
// usable; every field may be set independently.
type StaticEnvironment struct {
	Name      string
	Settings  map[string]string
	Units     map[string][]string
	UnitsErr  error
	Addresses map[string]string
	Release   string

	// Statuses records every SetStatus call in order.
	Statuses []StatusRecord

	// Published records the data last set per relation id.
	Published map[string]map[string]string

	// RelationSetErr, when set, is returned from RelationSet.
	RelationSetErr error
}

func (e *StaticEnvironment) CharmName() string {
	return e.Name
}

func (e *StaticEnvironment) Config(key string) string {
	return e.Settings[key]
}

func (e *StaticEnvironment) ConfigFlag(key string) bool {
	return ParseFlag(e.Settings[key])
}

func (e *StaticEnvironment) RelatedUnits(relType string) ([]string, error) {
	if e.UnitsErr != nil {
		return nil, e.UnitsErr
	}
	return e.Units[relType], nil
}

func (e *StaticEnvironment) ResolveAddress(endpointType string, override bool) (string, error) {
	addr, ok := e.Addresses[endpointType]
	if !ok {
		return "", ErrNotFound
	}
	return addr, nil
}

func (e *StaticEnvironment) SetStatus(state StatusState, message string) {
	e.Statuses = append(e.Statuses, StatusRecord{State: state, Message: message})
}

func (e *StaticEnvironment) RelationSet(relationID string, data map[string]string) error {
	if e.RelationSetErr != nil {
		return e.RelationSetErr
	}
	if e.Published == nil {
		e.Published = map[string]map[string]string{}
	}
	e.Published[relationID] = data
	return nil
}

func (e *StaticEnvironment) LSBRelease() string {
	return e.Release
}

func (e *StaticEnvironment) ClusterConfig() (ClusterConfig, error) {
	return ClusterConfig{VIP: e.Settings["vip"]}, nil
}
