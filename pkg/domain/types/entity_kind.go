package types

import "fmt"

// EntityKind identifies one of the spec collections. The value doubles as
// the collection key inside the YAML file and as the file base name.
type EntityKind string

const (
	EntityStakeholders  EntityKind = "stakeholders"
	EntityConcerns      EntityKind = "concerns"
	EntityCapabilities  EntityKind = "capabilities"
	EntityServiceLevels EntityKind = "service_levels"
	EntityRisks         EntityKind = "risks"
)

// entityFiles maps each kind to the file names accepted for it, in lookup order
var entityFiles = map[EntityKind][]string{
	EntityStakeholders:  {"stakeholders.yaml", "stakeholders.yml"},
	EntityConcerns:      {"concerns.yaml", "concerns.yml"},
	EntityCapabilities:  {"capabilities.yaml", "capabilities.yml"},
	EntityServiceLevels: {"service_levels.yaml", "service_levels.yml"},
	EntityRisks:         {"risks.yaml", "risks.yml"},
}

var entityLabels = map[EntityKind]string{
	EntityStakeholders:  "stakeholder",
	EntityConcerns:      "concern",
	EntityCapabilities:  "capability",
	EntityServiceLevels: "service level",
	EntityRisks:         "risk",
}

var requiredEntities = map[EntityKind]bool{
	EntityStakeholders: true,
	EntityConcerns:     true,
	EntityCapabilities: true,
}

// AllEntityKinds returns all entity kinds in load order
func AllEntityKinds() []EntityKind {
	return []EntityKind{
		EntityStakeholders,
		EntityConcerns,
		EntityCapabilities,
		EntityServiceLevels,
		EntityRisks,
	}
}

// IsValid checks if the entity kind is known
func (k EntityKind) IsValid() bool {
	_, ok := entityFiles[k]
	return ok
}

// IsRequired reports whether a spec directory must provide a file for this kind
func (k EntityKind) IsRequired() bool {
	return requiredEntities[k]
}

// FileNames returns the accepted file names for this kind
func (k EntityKind) FileNames() []string {
	names := entityFiles[k]
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Label returns the singular human-readable name of the kind
func (k EntityKind) Label() string {
	return entityLabels[k]
}

// CollectionKey returns the top-level YAML key holding the entity list
func (k EntityKind) CollectionKey() string {
	return string(k)
}

// String returns the string representation of the entity kind
func (k EntityKind) String() string {
	return string(k)
}

// ParseEntityKind parses a string into an EntityKind
func ParseEntityKind(s string) (EntityKind, error) {
	kind := EntityKind(s)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid entity kind: %s", s)
	}
	return kind, nil
}
