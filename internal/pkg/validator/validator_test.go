package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2025-01-31"); !ok {
		t.Error("IsValidDate(\"2025-01-31\") = false, want true")
	}
	invalid := []string{"2025-13-01", "31-01-2025", "2025/01/31", "", "yesterday"}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidEmployeeCode(t *testing.T) {
	valid := []string{"EMP001", "EMP042", "EMP1000"}
	invalid := []string{"emp001", "EMP01", "EMP", "001", "EMPLOYEE1", ""}
	for _, code := range valid {
		if !IsValidEmployeeCode(code) {
			t.Errorf("IsValidEmployeeCode(%q) = false, want true", code)
		}
	}
	for _, code := range invalid {
		if IsValidEmployeeCode(code) {
			t.Errorf("IsValidEmployeeCode(%q) = true, want false", code)
		}
	}
}

func TestIsValidClockTime(t *testing.T) {
	valid := []string{"09:30", "00:00", "23:59"}
	invalid := []string{"24:00", "09:60", "", "noon"}
	for _, s := range valid {
		if !IsValidClockTime(s) {
			t.Errorf("IsValidClockTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidClockTime(s) {
			t.Errorf("IsValidClockTime(%q) = true, want false", s)
		}
	}
}
