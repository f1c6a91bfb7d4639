package enums

import "fmt"

// SupplyUrgency ranks restocking requests.
type SupplyUrgency string

const (
	SupplyUrgencyNormal    SupplyUrgency = "normal"
	SupplyUrgencyImportant SupplyUrgency = "important"
	SupplyUrgencyUrgent    SupplyUrgency = "urgent"
)

var validSupplyUrgencies = []SupplyUrgency{
	SupplyUrgencyNormal,
	SupplyUrgencyImportant,
	SupplyUrgencyUrgent,
}

// String implements fmt.Stringer.
func (s SupplyUrgency) String() string {
	return string(s)
}

// IsValid reports whether the value matches a known urgency.
func (s SupplyUrgency) IsValid() bool {
	for _, candidate := range validSupplyUrgencies {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSupplyUrgency converts raw input into SupplyUrgency.
func ParseSupplyUrgency(value string) (SupplyUrgency, error) {
	for _, candidate := range validSupplyUrgencies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid supply urgency %q", value)
}
