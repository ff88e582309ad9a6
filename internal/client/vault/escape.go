package vault

import "strings"

// htmlEscaper neutralizes the five reserved HTML characters. The entity
// spellings match what the backend's pages already contain (&quot;/&#x27;
// rather than the numeric forms the html package emits).
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

// EscapeHTML returns s with markup-significant characters replaced by
// entities. Plain text passes through unchanged. Every user-supplied string
// (filename, description) goes through this before being written into any
// markup output.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
