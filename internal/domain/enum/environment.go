package enum

// Environment selects which invoicing API entrypoint is used.
type Environment string

const (
	EnvironmentStaging    Environment = "staging"
	EnvironmentProduction Environment = "production"
)

// IsValid reports whether the value is a supported environment.
func (e Environment) IsValid() bool {
	return e == EnvironmentStaging || e == EnvironmentProduction
}

func (e Environment) String() string {
	return string(e)
}
