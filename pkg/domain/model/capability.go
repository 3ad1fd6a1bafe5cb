package model

import (
	"sort"
	"strings"
)

// Capability is something the system must be able to do
type Capability struct {
	ID                string
	Name              string
	Description       string
	AddressesConcerns []string
	Constraints       map[string]string
	Tags              []string
}

// HasTag reports whether the capability explicitly carries the given tag
func (c Capability) HasTag(tag string) bool {
	return containsTag(c.Tags, tag)
}

// ConstraintNames returns constraint names in ascending order
func (c Capability) ConstraintNames() []string {
	names := make([]string, 0, len(c.Constraints))
	for name := range c.Constraints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ConstraintsString formats constraints as "name=value; name=value" in name order
func (c Capability) ConstraintsString() string {
	names := c.ConstraintNames()
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + "=" + c.Constraints[name]
	}
	return strings.Join(parts, "; ")
}
