package enums

import "fmt"

// AnimalType classifies herd animals; it also scopes ID generation.
type AnimalType string

const (
	AnimalTypeCow  AnimalType = "cow"
	AnimalTypeBull AnimalType = "bull"
	AnimalTypeCalf AnimalType = "calf"
)

var validAnimalTypes = []AnimalType{
	AnimalTypeCow,
	AnimalTypeBull,
	AnimalTypeCalf,
}

// String implements fmt.Stringer.
func (a AnimalType) String() string {
	return string(a)
}

// IsValid reports whether the value matches a known animal type.
func (a AnimalType) IsValid() bool {
	for _, candidate := range validAnimalTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAnimalType converts raw input into AnimalType.
func ParseAnimalType(value string) (AnimalType, error) {
	for _, candidate := range validAnimalTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid animal type %q", value)
}

// IDPrefix returns the sequential-ID prefix assigned to the animal type.
func (a AnimalType) IDPrefix() string {
	switch a {
	case AnimalTypeCow:
		return "V"
	case AnimalTypeBull:
		return "T"
	case AnimalTypeCalf:
		return "B"
	}
	return "A"
}
