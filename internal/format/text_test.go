package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/olbridge/outlook-mcp/internal/format"
)

func TestLooksLikeHTML(t *testing.T) {
	cases := []struct {
		input    string
		expected bool
	}{
		{"<html><body>hi</body></html>", true},
		{"<p>para</p>", true},
		{"plain text only", false},
		{"a < b and b > c", false},
		{"", false},
		{"multi\nline <div>\ncontent</div>", true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.expected, format.LooksLikeHTML(tc.input), "input %q", tc.input)
	}
}

func TestToText(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "paragraphs become lines",
			input:    "<html><body><p>first</p><p>second</p></body></html>",
			expected: "first\nsecond",
		},
		{
			name:     "br breaks lines",
			input:    "line one<br>line two",
			expected: "line one\nline two",
		},
		{
			name:     "script dropped",
			input:    "<p>visible</p><script>alert('x')</script>",
			expected: "visible",
		},
		{
			name:     "list items on own lines",
			input:    "<ul><li>alpha</li><li>beta</li></ul>",
			expected: "alpha\nbeta",
		},
		{
			name:     "inline elements keep spacing",
			input:    "<p>hello <b>bold</b> world</p>",
			expected: "hello bold world",
		},
		{
			name:     "blank runs collapsed",
			input:    "<div>top</div><div></div><div></div><div>bottom</div>",
			expected: "top\nbottom",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, format.ToText(tc.input))
		})
	}
}
