package prefs

import "testing"

func TestParseRoutes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "single", input: "10.0.0.0/24", expected: "10.0.0.0/24"},
		{name: "commas", input: "10.0.0.0/24,10.1.0.0/24", expected: "10.0.0.0/24,10.1.0.0/24"},
		{name: "mixed separators", input: " 10.0.0.0/24 ,\t10.1.0.0/24\n10.2.0.0/24,, ", expected: "10.0.0.0/24,10.1.0.0/24,10.2.0.0/24"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JoinRoutes(ParseRoutes(tt.input)); got != tt.expected {
				t.Errorf("ParseRoutes(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestWithExitNode(t *testing.T) {
	tests := []struct {
		name     string
		routes   []string
		enable   bool
		expected string
	}{
		{name: "enable on empty", routes: nil, enable: true, expected: "0.0.0.0/0,::/0"},
		{name: "enable keeps routes first", routes: []string{"10.0.0.0/24"}, enable: true, expected: "10.0.0.0/24,0.0.0.0/0,::/0"},
		{name: "enable is idempotent", routes: []string{"0.0.0.0/0", "10.0.0.0/24", "::/0"}, enable: true, expected: "10.0.0.0/24,0.0.0.0/0,::/0"},
		{name: "disable", routes: []string{"0.0.0.0/0", "10.0.0.0/24", "::/0"}, enable: false, expected: "10.0.0.0/24"},
		{name: "disable with half pair", routes: []string{"::/0"}, enable: false, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JoinRoutes(WithExitNode(tt.routes, tt.enable)); got != tt.expected {
				t.Errorf("WithExitNode(%v, %v) = %q, want %q", tt.routes, tt.enable, got, tt.expected)
			}
		})
	}
}

func TestWithExitNode_DoesNotAliasInput(t *testing.T) {
	in := make([]string, 1, 4)
	in[0] = "10.0.0.0/24"
	out := WithExitNode(in, true)
	out[0] = "changed"
	if in[0] != "10.0.0.0/24" {
		t.Errorf("input mutated: %v", in)
	}
}
