package publish

import "regexp"

// importDirective matches an indented `@import ... coverage.css";` statement.
// The body is non-greedy and may span lines; the closing paren of a
// url("coverage.css") form is optional.
var importDirective = regexp.MustCompile(`[ \t]*@import(?s:.*?)coverage\.css"\)?;`)

// Inline replaces every coverage.css import directive in html with css.
// css is inserted literally. It returns the rewritten text and the number
// of directives replaced; html is returned unchanged when there are none.
func Inline(html, css string) (string, int) {
	n := len(importDirective.FindAllStringIndex(html, -1))
	if n == 0 {
		return html, 0
	}
	return importDirective.ReplaceAllLiteralString(html, css), n
}
