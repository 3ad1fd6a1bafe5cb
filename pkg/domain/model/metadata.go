package model

import "time"

// Default metadata values used when a build does not provide them
const (
	DefaultSystemName = "RCS"
	DefaultDocumentID = "AD-RCS-001"
	DefaultVersion    = "0.1"
	DefaultStatus     = "Draft"
)

// Metadata describes the architecture document being rendered
type Metadata struct {
	SystemName string
	DocumentID string
	Version    string
	Date       string
	Status     string
	Scope      string
	Glossary   []GlossaryTerm
}

// WithDefaults returns a copy with empty header fields filled in.
// Scope and Glossary stay empty: the template marks them itself.
func (m Metadata) WithDefaults(now time.Time) Metadata {
	if m.SystemName == "" {
		m.SystemName = DefaultSystemName
	}
	if m.DocumentID == "" {
		m.DocumentID = DefaultDocumentID
	}
	if m.Version == "" {
		m.Version = DefaultVersion
	}
	if m.Date == "" {
		m.Date = now.Format(time.DateOnly)
	}
	if m.Status == "" {
		m.Status = DefaultStatus
	}
	return m
}
