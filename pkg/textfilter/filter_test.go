package textfilter

import (
	"testing"
)

func TestInputNormalizer_Normalize(t *testing.T) {
	n := NewInputNormalizer()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain lowercase",
			input:    "left",
			expected: "left",
		},
		{
			name:     "upper case is folded",
			input:    "LEFT",
			expected: "left",
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  open door \n",
			expected: "open door",
		},
		{
			name:     "inner whitespace collapsed",
			input:    "quit \t  game",
			expected: "quit game",
		},
		{
			name:     "full-width letters folded",
			input:    "ｆｌｅｅ",
			expected: "flee",
		},
		{
			name:     "control characters dropped",
			input:    "ex\x00it",
			expected: "exit",
		},
		{
			name:     "cyrillic folded",
			input:    "ВЫХОД",
			expected: "выход",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := n.Normalize(tt.input)
			if result != tt.expected {
				t.Errorf("Normalize(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsBlank(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"", true},
		{"   ", true},
		{"\t\r\n", true},
		{" a ", false},
	}

	for _, tt := range tests {
		if got := IsBlank(tt.input); got != tt.expected {
			t.Errorf("IsBlank(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}
