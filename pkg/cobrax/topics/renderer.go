package topics

import "strings"

// Renderer turns a help topic into terminal text. ext is the topic file's
// extension, so a renderer can leave formats it does not know alone.
type Renderer interface {
	Render(content string, ext string) string
}

// PlainRenderer prints topics as written, used when no styling is wanted
type PlainRenderer struct{}

// Render returns content with exactly one trailing newline
func (r *PlainRenderer) Render(content string, ext string) string {
	return strings.TrimRight(content, "\n") + "\n"
}
