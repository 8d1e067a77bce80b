// Package syntax implements the editor's lexical highlighter: ordered
// per-language regex rule tables, a tokenizer that partitions source
// text into classified tokens, and an HTML renderer that composites
// token spans with selection and search-match overlays.
//
// Everything in this package is a pure function over its arguments. The
// rule tables are built once at init and only ever read afterwards, so
// concurrent calls need no coordination.
package syntax

import "regexp"

// Token kinds. Not every language uses every kind; rule tables pick
// from this vocabulary.
const (
	KindComment    = "comment"
	KindString     = "string"
	KindNumber     = "number"
	KindKeyword    = "keyword"
	KindIdentifier = "identifier"
	KindOperator   = "operator"
	KindBracket    = "bracket"
	KindTag        = "tag"
	KindAttrName   = "attribute-name"
	KindAttrValue  = "attribute-value"
	KindProperty   = "property"
	KindSelector   = "selector"
	KindKey        = "key"
	KindBoolean    = "boolean"
	KindNull       = "null"
	KindMeta       = "meta"
	KindVariable   = "variable"
	KindText       = "text"
	KindWhitespace = "whitespace"
	KindUnknown    = "unknown"
	KindError      = "error"
)

// Token is a classified contiguous slice of source text. The tokenizer
// always emits a complete partition of its input: concatenating the
// Text fields of the result reproduces the input exactly.
type Token struct {
	Kind string

	// Text is the exact source slice, verbatim.
	Text string

	// ErrorMessage is non-empty for tokens matched by a dedicated error
	// rule (unterminated strings, unterminated comments) and for
	// characters no rule matched. The renderer turns it into an error
	// style and a tooltip.
	ErrorMessage string
}

// Rule is one entry in a language's ordered rule table. Patterns are
// anchored at the scan position ("match here or not at all"); rule
// order is the priority order and is the only tie-break between rules
// that match the same lexeme shape.
type Rule struct {
	Kind    string
	Pattern *regexp.Regexp

	// Follow, when set, must match the input immediately after the
	// Pattern match for the rule to apply. RE2 has no lookahead; this
	// restores "word followed by a colon" style rules (JSON keys, CSS
	// properties, HTML attribute names) without consuming the trailer.
	Follow *regexp.Regexp

	// ErrorMessage marks the rule as an error rule; it is copied onto
	// every token the rule produces.
	ErrorMessage string
}
