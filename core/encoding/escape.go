// Package encoding provides HTML escaping for text spliced into markup.
package encoding

import (
	"fmt"
	"strings"
)

// textReplacer escapes the characters that can open or close markup.
var textReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// attrReplacer additionally escapes double quotes for attribute values.
var attrReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
)

// EscapeHTMLText escapes special characters for HTML text content.
// Escapes: & < >
func EscapeHTMLText(s string) string {
	return textReplacer.Replace(s)
}

// EscapeHTML escapes special characters for HTML content and attributes.
// Escapes: & < > "
func EscapeHTML(s string) string {
	return attrReplacer.Replace(s)
}

// HTML splices exprs between trusted literal chunks, escaping every
// expression with EscapeHTMLText after converting it with fmt.Sprint:
//
//	HTML([]string{"<b>", "</b>"}, name) // "<b>Tom &amp; Jerry</b>"
//
// Chunks are copied verbatim. Expressions without a following chunk are
// still emitted.
func HTML(chunks []string, exprs ...any) string {
	var b strings.Builder
	if len(chunks) > 0 {
		b.WriteString(chunks[0])
	}
	for i, expr := range exprs {
		textReplacer.WriteString(&b, fmt.Sprint(expr))
		if i+1 < len(chunks) {
			b.WriteString(chunks[i+1])
		}
	}
	for i := len(exprs) + 1; i < len(chunks); i++ {
		b.WriteString(chunks[i])
	}
	return b.String()
}
