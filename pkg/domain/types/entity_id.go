package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

// EntityID is the identifier of a stakeholder, concern, capability,
// service level or risk (e.g. STK-OPS, C-003, CAP-05, SL-001, R-001)
type EntityID string

var entityIDPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9\-_.:]*$`)

var (
	ErrEmptyID         = goerr.New("entity ID cannot be empty")
	ErrInvalidIDFormat = goerr.New("entity ID has invalid format")
)

// Validate checks if the EntityID is valid
func (id EntityID) Validate() error {
	if id == "" {
		return ErrEmptyID
	}
	if !entityIDPattern.MatchString(string(id)) {
		return goerr.Wrap(ErrInvalidIDFormat, "entity ID must start with a letter followed by letters, digits or -_.:", goerr.V("id", string(id)))
	}
	return nil
}

// String returns the string representation of EntityID
func (id EntityID) String() string {
	return string(id)
}
