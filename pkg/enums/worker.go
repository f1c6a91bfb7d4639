package enums

import "fmt"

// WorkerStatus tracks whether a field worker is currently on shift.
type WorkerStatus string

const (
	WorkerStatusActive   WorkerStatus = "active"
	WorkerStatusPaused   WorkerStatus = "paused"
	WorkerStatusInactive WorkerStatus = "inactive"
)

var validWorkerStatuses = []WorkerStatus{
	WorkerStatusActive,
	WorkerStatusPaused,
	WorkerStatusInactive,
}

// String implements fmt.Stringer.
func (w WorkerStatus) String() string {
	return string(w)
}

// IsValid reports whether the value matches a known worker status.
func (w WorkerStatus) IsValid() bool {
	for _, candidate := range validWorkerStatuses {
		if candidate == w {
			return true
		}
	}
	return false
}

// ParseWorkerStatus converts raw input into WorkerStatus.
func ParseWorkerStatus(value string) (WorkerStatus, error) {
	for _, candidate := range validWorkerStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid worker status %q", value)
}
