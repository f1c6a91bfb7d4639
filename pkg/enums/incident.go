package enums

import "fmt"

// IncidentStatus tracks a reported farm problem through resolution.
type IncidentStatus string

const (
	IncidentStatusPending    IncidentStatus = "pending"
	IncidentStatusInProgress IncidentStatus = "in-progress"
	IncidentStatusResolved   IncidentStatus = "resolved"
)

var validIncidentStatuses = []IncidentStatus{
	IncidentStatusPending,
	IncidentStatusInProgress,
	IncidentStatusResolved,
}

// String implements fmt.Stringer.
func (i IncidentStatus) String() string {
	return string(i)
}

// IsValid reports whether the value matches a known incident status.
func (i IncidentStatus) IsValid() bool {
	for _, candidate := range validIncidentStatuses {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseIncidentStatus converts raw input into IncidentStatus.
func ParseIncidentStatus(value string) (IncidentStatus, error) {
	for _, candidate := range validIncidentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid incident status %q", value)
}
