package pipeline

import "testing"

func TestSplitFrontMatter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantMeta string
		wantBody string
		wantOK   bool
	}{
		{
			name:     "dashes",
			input:    "---\ntitle: A\n---\n# Body\n",
			wantMeta: "title: A\n",
			wantBody: "# Body\n",
			wantOK:   true,
		},
		{
			name:     "dots close",
			input:    "---\ntitle: A\n...\nbody",
			wantMeta: "title: A\n",
			wantBody: "body",
			wantOK:   true,
		},
		{
			name:     "crlf",
			input:    "---\r\ntitle: A\r\n---\r\nbody",
			wantMeta: "title: A\r\n",
			wantBody: "body",
			wantOK:   true,
		},
		{
			name:     "byte order mark",
			input:    "\ufeff---\ntitle: A\n---\nbody",
			wantMeta: "title: A\n",
			wantBody: "body",
			wantOK:   true,
		},
		{
			name:     "closing at end of file",
			input:    "---\ntitle: A\n---",
			wantMeta: "title: A\n",
			wantBody: "",
			wantOK:   true,
		},
		{
			name:     "no closing delimiter",
			input:    "---\ntitle: A\nbody",
			wantBody: "---\ntitle: A\nbody",
		},
		{
			name:     "thematic break",
			input:    "---\n\nparagraph\n---\n",
			wantBody: "---\n\nparagraph\n---\n",
		},
		{
			name:     "not at start",
			input:    "text\n---\ntitle: A\n---\n",
			wantBody: "text\n---\ntitle: A\n---\n",
		},
		{
			name:     "single line",
			input:    "---",
			wantBody: "---",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			meta, body, ok := SplitFrontMatter(tt.input)
			if ok != tt.wantOK || meta != tt.wantMeta || body != tt.wantBody {
				t.Errorf("SplitFrontMatter() = (%q, %q, %v), want (%q, %q, %v)",
					meta, body, ok, tt.wantMeta, tt.wantBody, tt.wantOK)
			}
		})
	}
}

func TestParseFrontMatter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		meta string
		want string
	}{
		{"title", "title: Notes\n", "Notes"},
		{"trimmed", "title: '  Notes  '\n", "Notes"},
		{"other keys ignored", "author: x\ntags: [a, b]\ntitle: T\n", "T"},
		{"empty", "", ""},
		{"malformed", "title: [unclosed\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ParseFrontMatter(tt.meta).Title; got != tt.want {
				t.Errorf("ParseFrontMatter().Title = %q, want %q", got, tt.want)
			}
		})
	}
}
