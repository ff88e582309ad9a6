package vault

import (
	"bytes"
	"testing"

	"campusvault/internal/client/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text unchanged", "report 2026.pdf", "report 2026.pdf"},
		{"script tag", `<script>alert("x")</script>`, "&lt;script&gt;alert(&quot;x&quot;)&lt;/script&gt;"},
		{"ampersand first", "a&b<c", "a&amp;b&lt;c"},
		{"single quote", "it's", "it&#x27;s"},
		{"already escaped gets escaped again", "&amp;", "&amp;amp;"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeHTML(tt.in))
		})
	}
}

func TestWriteHTMLEscapesUserFields(t *testing.T) {
	listing := &api.FileListing{
		Total: 1,
		Items: []api.FileRecord{
			{ID: 1, Filename: `<img src=x>.txt`, Size: 10, Description: `"quoted" & 'done'`},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, listing))

	out := buf.String()
	assert.Contains(t, out, "&lt;img src=x&gt;.txt")
	assert.Contains(t, out, "&quot;quoted&quot; &amp; &#x27;done&#x27;")
	assert.NotContains(t, out, "<img")
}

func TestWriteHTMLEmptyListing(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, &api.FileListing{}))
	assert.Contains(t, buf.String(), "No files yet")
}
