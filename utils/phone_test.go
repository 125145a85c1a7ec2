package utils

import "testing"

func TestNormalizePhoneNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"9876543210", "919876543210"},
		{"+91 98765 43210", "919876543210"},
		{"91-98765-43210", "919876543210"},
		{"09876543210", "919876543210"},
		{"9123456789", "919123456789"}, // 10 digits starting 91 is still a local number
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizePhoneNumber(tt.in); got != tt.want {
			t.Errorf("NormalizePhoneNumber(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidatePhoneNumber(t *testing.T) {
	valid := []string{"9876543210", "+91 98765 43210", "6123456789"}
	for _, number := range valid {
		if !ValidatePhoneNumber(number) {
			t.Errorf("expected %q to be valid", number)
		}
	}

	invalid := []string{"12345", "5876543210", "98765432101234", ""}
	for _, number := range invalid {
		if ValidatePhoneNumber(number) {
			t.Errorf("expected %q to be invalid", number)
		}
	}
}

func TestDisplayPhoneNumber(t *testing.T) {
	if got := DisplayPhoneNumber("9876543210"); got != "+91 98765 43210" {
		t.Fatalf("unexpected display format %q", got)
	}
	// Numbers that cannot be normalized come back untouched.
	if got := DisplayPhoneNumber("12"); got != "12" {
		t.Fatalf("expected passthrough for short input, got %q", got)
	}
}
