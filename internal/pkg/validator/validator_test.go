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

func TestIsInSlice(t *testing.T) {
	envs := []string{"development", "production"}
	if !IsInSlice("production", envs) {
		t.Error("IsInSlice(production) = false, want true")
	}
	if IsInSlice("staging", envs) {
		t.Error("IsInSlice(staging) = true, want false")
	}
	if IsInSlice("", nil) {
		t.Error("IsInSlice on nil slice = true, want false")
	}
}

func TestIsValidPort(t *testing.T) {
	valid := []int{1, 80, 8080, 65535}
	invalid := []int{0, -1, 65536}
	for _, p := range valid {
		if !IsValidPort(p) {
			t.Errorf("IsValidPort(%d) = false, want true", p)
		}
	}
	for _, p := range invalid {
		if IsValidPort(p) {
			t.Errorf("IsValidPort(%d) = true, want false", p)
		}
	}
}

func TestIsValidTimezone(t *testing.T) {
	valid := []string{"UTC", "Local"}
	invalid := []string{"", "   ", "Mars/Olympus_Mons"}
	for _, tz := range valid {
		if !IsValidTimezone(tz) {
			t.Errorf("IsValidTimezone(%q) = false, want true", tz)
		}
	}
	for _, tz := range invalid {
		if IsValidTimezone(tz) {
			t.Errorf("IsValidTimezone(%q) = true, want false", tz)
		}
	}
}

func TestIsValidOrigin(t *testing.T) {
	valid := []string{"*", "http://localhost:3000", "https://school.example.com", "https://school.example.com/"}
	invalid := []string{"", "localhost:3000", "ftp://example.com", "https://example.com/app", "http://"}
	for _, o := range valid {
		if !IsValidOrigin(o) {
			t.Errorf("IsValidOrigin(%q) = false, want true", o)
		}
	}
	for _, o := range invalid {
		if IsValidOrigin(o) {
			t.Errorf("IsValidOrigin(%q) = true, want false", o)
		}
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "identifier", Message: "identifier field is required"},
		{Field: "name", Message: "name field is required"},
	}
	want := "identifier: identifier field is required; name: name field is required"
	if got := errs.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	m := errs.ToMap()
	if len(m) != 2 || m["name"] != "name field is required" {
		t.Errorf("ToMap() = %v", m)
	}
}
