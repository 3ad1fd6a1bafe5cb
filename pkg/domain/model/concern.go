package model

// Measurement describes how a concern is measured
type Measurement struct {
	SLI            string
	SLO            string
	SLA            string
	ServiceLevelID string
}

// HasIndicator reports whether an SLI or a service level reference is present
func (m Measurement) HasIndicator() bool {
	return m.SLI != "" || m.ServiceLevelID != ""
}

// HasTarget reports whether an SLO or an SLA is present
func (m Measurement) HasTarget() bool {
	return m.SLO != "" || m.SLA != ""
}

// Concern is an interest in the system held by one or more stakeholders
type Concern struct {
	ID           string
	Name         string
	Description  string
	Stakeholders []string
	Tags         []string
	Measurement  Measurement
}

// HasTag reports whether the concern carries the given tag
func (c Concern) HasTag(tag string) bool {
	return containsTag(c.Tags, tag)
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
