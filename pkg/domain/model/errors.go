package model

import "github.com/m-mizutani/goerr/v2"

// Spec store errors
var (
	ErrArchitectureNotFound = goerr.New("architecture not found")
	ErrInvalidArchitecture  = goerr.New("invalid architecture path")
	ErrReadOnlyArchitecture = goerr.New("architecture is read-only")
	ErrInvalidRoot          = goerr.New("YAML root must be a mapping")
)

// Context keys for error values
const (
	ArchitectureIDKey = "architecture_id"
	EntityKindKey     = "entity_kind"
	PathKey           = "path"
	OperationKey      = "operation"
)
