package version

import (
	"testing"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		input string
		major uint16
		minor uint16
	}{
		{"1.0", 1, 0},
		{"0.4", 0, 4},
		{"10.23", 10, 23},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if v.Major != tt.major {
				t.Errorf("Major = %d, want %d", v.Major, tt.major)
			}
			if v.Minor != tt.minor {
				t.Errorf("Minor = %d, want %d", v.Minor, tt.minor)
			}
			if v.String() != tt.input {
				t.Errorf("String() = %q, want %q", v.String(), tt.input)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{
		"",
		"1",
		"abc",
		"1.0.0",
		"1.x",
		"-1.0",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			if err == nil {
				t.Errorf("Parse(%q) should return error", input)
			}
		})
	}
}

func TestCurrentParses(t *testing.T) {
	if _, err := Parse(Current); err != nil {
		t.Fatalf("Current %q does not parse: %v", Current, err)
	}
	if Release().String() != Current {
		t.Errorf("Release() = %s, want %s", Release(), Current)
	}
	if UserAgent() != "sessionctl/"+Current {
		t.Errorf("UserAgent() = %q", UserAgent())
	}
}

func TestCompatible(t *testing.T) {
	a, _ := Parse("1.0")
	b, _ := Parse("1.7")
	c, _ := Parse("2.0")

	if !a.Compatible(b) {
		t.Error("1.0 should be compatible with 1.7")
	}
	if a.Compatible(c) {
		t.Error("1.0 should not be compatible with 2.0")
	}
}
