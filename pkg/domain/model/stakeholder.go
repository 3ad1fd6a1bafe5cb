package model

// Stakeholder is a person, team or organization with an interest in the system
type Stakeholder struct {
	ID          string
	Name        string
	Description string
}
