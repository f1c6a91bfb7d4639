package enums

import "testing"

func TestParseUserRole(t *testing.T) {
	role, err := ParseUserRole("field-worker")
	if err != nil {
		t.Fatalf("ParseUserRole: %v", err)
	}
	if role != UserRoleFieldWorker {
		t.Fatalf("role = %s, want %s", role, UserRoleFieldWorker)
	}
	if _, err := ParseUserRole("manager"); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}

func TestUserStatusIsValid(t *testing.T) {
	for _, status := range []UserStatus{UserStatusActive, UserStatusTrial, UserStatusExpired, UserStatusSuspended} {
		if !status.IsValid() {
			t.Fatalf("%s should be valid", status)
		}
	}
	if UserStatus("frozen").IsValid() {
		t.Fatalf("unknown status should be invalid")
	}
}

func TestAnimalTypeIDPrefix(t *testing.T) {
	cases := map[AnimalType]string{
		AnimalTypeCow:  "V",
		AnimalTypeBull: "T",
		AnimalTypeCalf: "B",
	}
	for animalType, prefix := range cases {
		if got := animalType.IDPrefix(); got != prefix {
			t.Fatalf("IDPrefix(%s) = %s, want %s", animalType, got, prefix)
		}
	}
}

func TestParsePlanType(t *testing.T) {
	for _, value := range []string{"trial", "basic", "premium"} {
		if _, err := ParsePlanType(value); err != nil {
			t.Fatalf("ParsePlanType(%s): %v", value, err)
		}
	}
	if _, err := ParsePlanType("enterprise"); err == nil {
		t.Fatalf("expected error for unknown plan")
	}
}
