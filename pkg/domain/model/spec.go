package model

import "github.com/secmon-lab/adtool/pkg/domain/types"

// RawSpec holds the decoded root mapping of each spec file.
// A kind whose file is missing or unreadable maps to an empty mapping.
type RawSpec map[types.EntityKind]map[string]any

// Get returns the raw mapping for a kind, never nil
func (r RawSpec) Get(kind types.EntityKind) map[string]any {
	if m, ok := r[kind]; ok && m != nil {
		return m
	}
	return map[string]any{}
}

// Spec is the typed entity graph parsed from a spec directory.
// Every list is sorted ascending by ID.
type Spec struct {
	Stakeholders  []Stakeholder
	Concerns      []Concern
	Capabilities  []Capability
	ServiceLevels []ServiceLevel
	Risks         []Risk
}

// IDSet is a set of entity IDs
type IDSet map[string]bool

// Has reports whether the set contains id
func (s IDSet) Has(id string) bool {
	return s[id]
}

// StakeholderIDs returns the set of stakeholder IDs
func (s *Spec) StakeholderIDs() IDSet {
	ids := make(IDSet, len(s.Stakeholders))
	for _, e := range s.Stakeholders {
		ids[e.ID] = true
	}
	return ids
}

// ConcernIDs returns the set of concern IDs
func (s *Spec) ConcernIDs() IDSet {
	ids := make(IDSet, len(s.Concerns))
	for _, e := range s.Concerns {
		ids[e.ID] = true
	}
	return ids
}

// CapabilityIDs returns the set of capability IDs
func (s *Spec) CapabilityIDs() IDSet {
	ids := make(IDSet, len(s.Capabilities))
	for _, e := range s.Capabilities {
		ids[e.ID] = true
	}
	return ids
}

// ServiceLevelIDs returns the set of service level IDs
func (s *Spec) ServiceLevelIDs() IDSet {
	ids := make(IDSet, len(s.ServiceLevels))
	for _, e := range s.ServiceLevels {
		ids[e.ID] = true
	}
	return ids
}

// ConcernsByStakeholder maps each known stakeholder ID to the IDs of the
// concerns referencing it, in concern order
func (s *Spec) ConcernsByStakeholder() map[string][]string {
	out := make(map[string][]string, len(s.Stakeholders))
	for _, stk := range s.Stakeholders {
		out[stk.ID] = nil
	}
	for _, c := range s.Concerns {
		for _, sid := range c.Stakeholders {
			if _, ok := out[sid]; ok {
				out[sid] = append(out[sid], c.ID)
			}
		}
	}
	return out
}

// CapabilitiesByConcern maps each known concern ID to the IDs of the
// capabilities addressing it, in capability order
func (s *Spec) CapabilitiesByConcern() map[string][]string {
	out := make(map[string][]string, len(s.Concerns))
	for _, c := range s.Concerns {
		out[c.ID] = nil
	}
	for _, capability := range s.Capabilities {
		for _, cid := range capability.AddressesConcerns {
			if _, ok := out[cid]; ok {
				out[cid] = append(out[cid], capability.ID)
			}
		}
	}
	return out
}

// DuplicateIDs returns, per kind, the IDs that occur more than once
func (s *Spec) DuplicateIDs() map[types.EntityKind]IDSet {
	out := map[types.EntityKind]IDSet{}
	collect := func(kind types.EntityKind, ids []string) {
		seen := IDSet{}
		dup := IDSet{}
		for _, id := range ids {
			if id == "" {
				continue
			}
			if seen[id] {
				dup[id] = true
			}
			seen[id] = true
		}
		out[kind] = dup
	}

	ids := func(n int, get func(int) string) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = get(i)
		}
		return out
	}

	collect(types.EntityStakeholders, ids(len(s.Stakeholders), func(i int) string { return s.Stakeholders[i].ID }))
	collect(types.EntityConcerns, ids(len(s.Concerns), func(i int) string { return s.Concerns[i].ID }))
	collect(types.EntityCapabilities, ids(len(s.Capabilities), func(i int) string { return s.Capabilities[i].ID }))
	collect(types.EntityServiceLevels, ids(len(s.ServiceLevels), func(i int) string { return s.ServiceLevels[i].ID }))
	collect(types.EntityRisks, ids(len(s.Risks), func(i int) string { return s.Risks[i].ID }))
	return out
}
