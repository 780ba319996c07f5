package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{"head@example.org", "  a.b+c@sub.example.co  "}
	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Fatalf("ValidateEmail(%q) = false, want true", email)
		}
	}

	invalid := []string{"", "not-an-address", "missing@tld", "@example.org", "a b@example.org"}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Fatalf("ValidateEmail(%q) = true, want false", email)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := SanitizeInput("  Somsri\x00 Jaidee  "); got != "Somsri Jaidee" {
		t.Fatalf("SanitizeInput = %q, want %q", got, "Somsri Jaidee")
	}
	if got := SanitizeInput("\x00 \x00"); got != "" {
		t.Fatalf("SanitizeInput = %q, want empty", got)
	}
}

func TestValidatePassword(t *testing.T) {
	if ok, _ := ValidatePassword("short"); ok {
		t.Fatal("expected short password to be rejected")
	}
	if ok, msg := ValidatePassword("longenough"); !ok {
		t.Fatalf("expected password to pass, got %q", msg)
	}
}
