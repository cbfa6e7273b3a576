package render

import "testing"

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"plain text", "Sign in", "Sign in"},
		{"ampersand", "Terms & Conditions", "Terms &amp; Conditions"},
		{"tags", "<script>alert(1)</script>", "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{"quotes", `say "hi" it's`, "say &quot;hi&quot; it&#39;s"},
		{"unicode", "Café ☕", "Café ☕"},
		{"already escaped", "&amp;", "&amp;amp;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeHTML(tt.input); got != tt.expected {
				t.Errorf("escapeHTML(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestEscapeAttr(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"href with query", "/search?q=a&b=c", "/search?q=a&amp;b=c"},
		{"breaking out", `" onclick="x`, "&quot; onclick=&quot;x"},
		{"whitespace", "a\nb\tc\r", "a&#10;b&#9;c&#13;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeAttr(tt.input); got != tt.expected {
				t.Errorf("escapeAttr(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
