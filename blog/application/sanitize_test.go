package application

import (
	"testing"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Empty",
			input:    "",
			expected: "",
		},
		{
			name:     "Plain text untouched",
			input:    "hello world",
			expected: "hello world",
		},
		{
			name:     "Angle brackets escaped",
			input:    "<b>bold</b>",
			expected: "&lt;b&gt;bold&lt;/b&gt;",
		},
		{
			name:     "Script escaped not executed",
			input:    "<script>alert(1)</script>",
			expected: "&lt;script&gt;alert(1)&lt;/script&gt;",
		},
		{
			name:     "Ampersand escaped",
			input:    "a & b",
			expected: "a &amp; b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeText(tt.input)
			if result != tt.expected {
				t.Errorf("SanitizeText(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSanitizeMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Empty",
			input:    "",
			expected: "",
		},
		{
			name:     "Markdown syntax untouched",
			input:    "# Title\n\n**bold** [link](https://example.com)",
			expected: "# Title\n\n**bold** [link](https://example.com)",
		},
		{
			name:     "Script element removed",
			input:    "before<script>alert(1)</script>after",
			expected: "beforeafter",
		},
		{
			name:     "Script removed case-insensitively",
			input:    "a<ScRiPt>x</sCrIpT>b",
			expected: "ab",
		},
		{
			name:     "Multiline script removed",
			input:    "a<script>\nline1\nline2\n</script>b",
			expected: "ab",
		},
		{
			name:     "Iframe removed",
			input:    "x<iframe src=\"https://evil.example\">y</iframe>z",
			expected: "xz",
		},
		{
			name:     "Img onerror neutralized",
			input:    `<img src=x onerror=alert(1)>`,
			expected: `<img alert(1)>`,
		},
		{
			name:     "Javascript scheme rewritten",
			input:    "[x](javascript:alert(1))",
			expected: "[x](blocked:alert(1))",
		},
		{
			name:     "Javascript scheme rewritten regardless of case",
			input:    "[x](JavaScript:alert(1))",
			expected: "[x](blocked:alert(1))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeMarkdown(tt.input)
			if result != tt.expected {
				t.Errorf("SanitizeMarkdown(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
