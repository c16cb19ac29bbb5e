package services

import (
	"testing"
)

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bare host gets https scheme",
			input:    "hooks.example.com/compliance",
			expected: "https://hooks.example.com/compliance",
		},
		{
			name:     "existing https kept",
			input:    "https://hooks.example.com/compliance",
			expected: "https://hooks.example.com/compliance",
		},
		{
			name:     "http kept for internal targets",
			input:    "http://localhost:9090/hook",
			expected: "http://localhost:9090/hook",
		},
		{
			name:     "trailing slash dropped",
			input:    "https://hooks.example.com/compliance/",
			expected: "https://hooks.example.com/compliance",
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  hooks.example.com ",
			expected: "https://hooks.example.com",
		},
		{
			name:     "empty stays empty",
			input:    "   ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeEndpoint(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeEndpoint(%q) = %q; want %q", tt.input, result, tt.expected)
			}
		})
	}
}
