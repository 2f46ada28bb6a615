package validator

import "testing"

func TestValidator(t *testing.T) {
	v := New()
	if !v.Valid() {
		t.Error("new validator should be valid")
	}

	v.Check(false, "field", "must be provided")
	if v.Valid() {
		t.Error("validator with an error should not be valid")
	}
	if v.Errors["field"] != "must be provided" {
		t.Errorf("unexpected error message: %q", v.Errors["field"])
	}

	// First error for a key wins.
	v.Check(false, "field", "another message")
	if v.Errors["field"] != "must be provided" {
		t.Error("existing error was overwritten")
	}
}

func TestMatchesEmail(t *testing.T) {
	cases := []struct {
		email string
		valid bool
	}{
		{"alice@example.com", true},
		{"a.b+tag@sub.example.org", true},
		{"not-an-email", false},
		{"@example.com", false},
		{"alice@", false},
	}

	for _, tc := range cases {
		if got := Matches(tc.email, EmailRX); got != tc.valid {
			t.Errorf("Matches(%q) = %v, want %v", tc.email, got, tc.valid)
		}
	}
}

func TestPermittedValue(t *testing.T) {
	if !PermittedValue("b", "a", "b", "c") {
		t.Error("expected b to be permitted")
	}
	if PermittedValue("d", "a", "b", "c") {
		t.Error("expected d to not be permitted")
	}
}
