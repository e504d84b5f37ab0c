package render

import (
	"fmt"
	"strings"
)

const helpTemplate = `# Blarry Chat

Messages go to **%s** as user ` + "`%s`" + `.

| Key | Action |
|-----|--------|
| Enter | Send the message in the input |
| Tab | Move focus between input and **Send** |
| Enter / Space on Send | Send the message |
| PgUp / PgDn | Scroll the log |
| Ctrl+Y | Copy the last reply |
| Ctrl+L | Clear the log |
| F1 | Toggle this help |
| Esc / Ctrl+C | Quit |

Replies show up in the order the server answers them, each one tagged
with the number of the message it answers.
`

// HelpMarkdown returns the help screen source for an endpoint and user
func HelpMarkdown(endpoint, userID string) string {
	return fmt.Sprintf(helpTemplate, endpoint, userID)
}

// Help renders the help screen, falling back to the raw markdown if
// rendering fails
func Help(endpoint, userID string, opts Options) string {
	src := HelpMarkdown(endpoint, userID)
	out, err := Markdown(src, opts)
	if err != nil {
		return src
	}
	return strings.TrimRight(out, "\n")
}
