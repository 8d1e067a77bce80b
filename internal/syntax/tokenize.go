package syntax

import "unicode/utf8"

// Message attached to characters no rule matched.
const invalidTokenMessage = "invalid token"

// Tokenize scans text with the rule table for the given language id and
// returns the token stream. Unknown language ids fall back to plain
// text.
//
// At every scan position the rules are tried strictly in table order
// and the first rule matching a non-empty prefix wins; rule order, not
// match length, is the tie-break. When no rule matches, a single-rune
// token of kind "unknown" is emitted and the cursor advances by one
// rune, so the scanner always terminates and the concatenated token
// texts always reproduce the input exactly.
func Tokenize(text, language string) []Token {
	rules := rulesFor(language)

	var tokens []Token
	pos := 0
	for pos < len(text) {
		rest := text[pos:]

		matched := false
		for i := range rules {
			rule := &rules[i]
			loc := rule.Pattern.FindStringIndex(rest)
			if loc == nil || loc[0] != 0 || loc[1] == 0 {
				continue
			}
			if rule.Follow != nil && !rule.Follow.MatchString(rest[loc[1]:]) {
				continue
			}
			tokens = append(tokens, Token{
				Kind:         rule.Kind,
				Text:         rest[:loc[1]],
				ErrorMessage: rule.ErrorMessage,
			})
			pos += loc[1]
			matched = true
			break
		}

		if !matched {
			_, size := utf8.DecodeRuneInString(rest)
			tokens = append(tokens, Token{
				Kind:         KindUnknown,
				Text:         rest[:size],
				ErrorMessage: invalidTokenMessage,
			})
			pos += size
		}
	}
	return tokens
}
