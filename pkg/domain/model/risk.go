package model

import "strings"

// Risk is an uncertainty that may affect concerns, capabilities or service levels
type Risk struct {
	ID                      string
	Title                   string
	Description             string
	Type                    string
	Status                  string
	Owner                   string
	AffectedConcerns        []string
	AffectedCapabilities    []string
	ThreatenedServiceLevels []string
	LinkedViews             []string
	Mitigation              string
}

// LinksView reports whether any linked view contains marker
func (r Risk) LinksView(marker string) bool {
	for _, v := range r.LinkedViews {
		if strings.Contains(v, marker) {
			return true
		}
	}
	return false
}
