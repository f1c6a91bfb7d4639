package enums

import "fmt"

// UserRole identifies which dashboard surface a user belongs to.
type UserRole string

const (
	UserRoleAdmin       UserRole = "admin"
	UserRoleDev         UserRole = "dev"
	UserRoleClient      UserRole = "client"
	UserRoleFieldWorker UserRole = "field-worker"
)

var validUserRoles = []UserRole{
	UserRoleAdmin,
	UserRoleDev,
	UserRoleClient,
	UserRoleFieldWorker,
}

// String implements fmt.Stringer.
func (r UserRole) String() string {
	return string(r)
}

// IsValid reports whether the value matches a known role.
func (r UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseUserRole converts raw input into UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}

// UserStatus tracks the account lifecycle driven by the license engine.
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusTrial     UserStatus = "trial"
	UserStatusExpired   UserStatus = "expired"
	UserStatusSuspended UserStatus = "suspended"
)

var validUserStatuses = []UserStatus{
	UserStatusActive,
	UserStatusTrial,
	UserStatusExpired,
	UserStatusSuspended,
}

// String implements fmt.Stringer.
func (s UserStatus) String() string {
	return string(s)
}

// IsValid reports whether the value matches a known account status.
func (s UserStatus) IsValid() bool {
	for _, candidate := range validUserStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseUserStatus converts raw input into UserStatus.
func ParseUserStatus(value string) (UserStatus, error) {
	for _, candidate := range validUserStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user status %q", value)
}
