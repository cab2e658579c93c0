package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tp := New()

	tests := []struct {
		name     string
		input    string
		contains []string
		absent   []string
	}{
		{
			name:     "emphasis",
			input:    "a *very* **good** widget",
			contains: []string{"<em>very</em>", "<strong>good</strong>"},
		},
		{
			name:     "strikethrough",
			input:    "~~old~~ new",
			contains: []string{"<del>old</del>"},
		},
		{
			name:     "list",
			input:    "- one\n- two",
			contains: []string{"<ul>", "<li>one</li>", "<li>two</li>"},
		},
		{
			name:     "script is stripped",
			input:    "hi <script>alert(1)</script>",
			contains: []string{"hi"},
			absent:   []string{"<script>", "alert(1)"},
		},
		{
			name:     "event handlers are stripped",
			input:    `<img src="x.png" onerror="alert(1)">`,
			absent:   []string{"onerror"},
		},
		{
			name:     "javascript links are stripped",
			input:    "[click](javascript:alert(1))",
			absent:   []string{"javascript:"},
		},
		{
			name:     "external links get nofollow",
			input:    "[shop](https://example.com)",
			contains: []string{`href="https://example.com"`, "nofollow"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tp.Render(tt.input)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestRenderEmpty(t *testing.T) {
	assert.Equal(t, "", New().Render("   \n"))
}
