package syntax

import "strings"

// Span is a half-open byte range [Start, End) into the original,
// unescaped text. Selection and search-match overlays are expressed as
// spans; all overlay arithmetic happens on raw offsets and each slice
// is escaped only as it is written out, so escaped entities are never
// split.
type Span struct {
	Start int
	End   int
}

// NoActiveMatch disables the active-match style when passed as the
// activeMatch argument of Highlight.
const NoActiveMatch = -1

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

// EscapeHTML escapes &, < and > for embedding text in markup. Quotes
// are left alone; this output is never placed inside an attribute
// value (attributes use the stricter internal escaper).
func EscapeHTML(text string) string {
	return textEscaper.Replace(text)
}

// Highlight tokenizes text for the given language and renders one HTML
// fragment: a <span class="tok-KIND"> per token, in input order. A
// token carrying an error message renders with class "tok-error" and a
// title attribute holding the message, regardless of its lexical kind.
//
// matches is an ordered list of search-match spans; the part of a token
// overlapped by a match is wrapped in <mark class="search-match">, and
// the match whose index equals activeMatch gets "search-match active"
// instead. selection, when non-nil, is applied after match splitting,
// inside whatever slices result, as <span class="selection">. Pass
// NoActiveMatch for activeMatch when no match is active.
//
// Empty text returns the empty string without tokenizing.
func Highlight(text, language string, selection *Span, matches []Span, activeMatch int) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	offset := 0
	for _, token := range Tokenize(text, language) {
		start := offset
		end := offset + len(token.Text)
		offset = end

		class := "tok-" + token.Kind
		if token.ErrorMessage != "" {
			class = "tok-error"
		}
		b.WriteString(`<span class="`)
		b.WriteString(class)
		b.WriteString(`"`)
		if token.ErrorMessage != "" {
			b.WriteString(` title="`)
			b.WriteString(attrEscaper.Replace(token.ErrorMessage))
			b.WriteString(`"`)
		}
		b.WriteString(`>`)
		writeOverlaid(&b, text, start, end, selection, matches, activeMatch)
		b.WriteString(`</span>`)
	}
	return b.String()
}

// writeOverlaid renders text[start:end) split by the search-match spans
// first, then by the selection span within the resulting slices.
func writeOverlaid(b *strings.Builder, text string, start, end int, selection *Span, matches []Span, activeMatch int) {
	cursor := start
	for i, m := range matches {
		from := max(m.Start, cursor)
		to := min(m.End, end)
		if from >= to {
			continue
		}
		if from > cursor {
			writeSelected(b, text, cursor, from, selection)
		}
		class := "search-match"
		if i == activeMatch {
			class = "search-match active"
		}
		b.WriteString(`<mark class="`)
		b.WriteString(class)
		b.WriteString(`">`)
		writeSelected(b, text, from, to, selection)
		b.WriteString(`</mark>`)
		cursor = to
	}
	if cursor < end {
		writeSelected(b, text, cursor, end, selection)
	}
}

// writeSelected renders text[start:end), wrapping the part overlapped
// by the selection span, if any.
func writeSelected(b *strings.Builder, text string, start, end int, selection *Span) {
	if selection != nil {
		from := max(selection.Start, start)
		to := min(selection.End, end)
		if from < to {
			b.WriteString(EscapeHTML(text[start:from]))
			b.WriteString(`<span class="selection">`)
			b.WriteString(EscapeHTML(text[from:to]))
			b.WriteString(`</span>`)
			b.WriteString(EscapeHTML(text[to:end]))
			return
		}
	}
	b.WriteString(EscapeHTML(text[start:end]))
}
