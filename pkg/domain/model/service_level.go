package model

// ServiceLevel is an entry of the service level catalog
type ServiceLevel struct {
	ID             string
	Name           string
	SLIDefinition  string
	Window         string
	Exclusions     string
	TargetSLO      string
	ContractualSLA string
}
