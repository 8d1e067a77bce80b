package syntax

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Fallback language for unknown ids: the whole remaining text is one
// plain text token.
const LangPlainText = "plaintext"

// languages holds the per-language rule tables. Order within a table is
// priority order and must not be reshuffled: keywords are listed before
// identifiers, terminated strings before their unterminated error
// variants, and so on.
var languages = map[string][]Rule{
	"javascript": {
		pat(KindWhitespace, `^[ \t\r\n]+`),
		pat(KindComment, `^//[^\n]*`),
		pat(KindComment, `(?s)^/\*.*?\*/`),
		errPat(`(?s)^/\*.*`, "unterminated block comment"),
		pat(KindString, `^"(?:[^"\\\n]|\\.)*"`),
		pat(KindString, `^'(?:[^'\\\n]|\\.)*'`),
		pat(KindString, "(?s)^`(?:[^`\\\\]|\\\\.)*`"),
		errPat(`^"(?:[^"\\\n]|\\.)*`, "unterminated string literal"),
		errPat(`^'(?:[^'\\\n]|\\.)*`, "unterminated string literal"),
		errPat("(?s)^`.*", "unterminated template literal"),
		pat(KindNumber, `^(?:0[xX][0-9a-fA-F]+|\d+(?:\.\d+)?(?:[eE][+-]?\d+)?|\.\d+)`),
		pat(KindKeyword, `^(?:async|await|break|case|catch|class|const|continue|debugger|default|delete|do|else|export|extends|finally|for|function|if|import|in|instanceof|let|new|of|return|static|super|switch|this|throw|try|typeof|var|void|while|with|yield)\b`),
		pat(KindBoolean, `^(?:true|false)\b`),
		pat(KindNull, `^(?:null|undefined)\b`),
		pat(KindIdentifier, `^[A-Za-z_$][A-Za-z0-9_$]*`),
		pat(KindBracket, `^[()\[\]{}]`),
		pat(KindOperator, `^(?:===|!==|==|!=|<=|>=|=>|\+\+|--|&&|\|\||\?\?|\*\*|[+\-*/%=<>!&|^~?:.,;])`),
	},

	"html": {
		pat(KindWhitespace, `^[ \t\r\n]+`),
		pat(KindComment, `(?s)^<!--.*?-->`),
		errPat(`(?s)^<!--.*`, "unterminated comment"),
		pat(KindMeta, `^<![A-Za-z][^>]*>`),
		pat(KindTag, `^</?[A-Za-z][A-Za-z0-9-]*`),
		pat(KindTag, `^/?>`),
		pat(KindAttrValue, `^"[^"\n]*"`),
		pat(KindAttrValue, `^'[^'\n]*'`),
		follow(KindAttrName, `^[A-Za-z_:][-A-Za-z0-9_:.]*`, `^\s*=`),
		pat(KindOperator, `^=`),
		pat(KindText, `^[^<\s]+`),
	},

	"css": {
		pat(KindWhitespace, `^[ \t\r\n]+`),
		pat(KindComment, `(?s)^/\*.*?\*/`),
		errPat(`(?s)^/\*.*`, "unterminated comment"),
		pat(KindString, `^"(?:[^"\\\n]|\\.)*"`),
		pat(KindString, `^'(?:[^'\\\n]|\\.)*'`),
		errPat(`^"(?:[^"\\\n]|\\.)*`, "unterminated string literal"),
		errPat(`^'(?:[^'\\\n]|\\.)*`, "unterminated string literal"),
		pat(KindMeta, `^@[A-Za-z-]+`),
		pat(KindNumber, `^#[0-9a-fA-F]{3,8}\b`),
		pat(KindNumber, `^-?(?:\d+(?:\.\d+)?|\.\d+)(?:%|[a-zA-Z]+)?`),
		pat(KindKeyword, `^!important\b`),
		pat(KindSelector, `^[.#][-A-Za-z0-9_]+`),
		follow(KindProperty, `^-?[A-Za-z][-A-Za-z0-9]*`, `^\s*:`),
		pat(KindIdentifier, `^-?[A-Za-z][-A-Za-z0-9]*`),
		pat(KindBracket, `^[{}()\[\]]`),
		pat(KindOperator, `^[:;,>+~*=]`),
	},

	"json": {
		pat(KindWhitespace, `^[ \t\r\n]+`),
		follow(KindKey, `^"(?:[^"\\\n]|\\.)*"`, `^\s*:`),
		pat(KindString, `^"(?:[^"\\\n]|\\.)*"`),
		errPat(`^"(?:[^"\\\n]|\\.)*`, "unterminated string literal"),
		pat(KindNumber, `^-?\d+(?:\.\d+)?(?:[eE][+-]?\d+)?`),
		pat(KindBoolean, `^(?:true|false)\b`),
		pat(KindNull, `^null\b`),
		pat(KindBracket, `^[{}\[\]]`),
		pat(KindOperator, `^[:,]`),
	},

	"python": {
		pat(KindWhitespace, `^[ \t\r\n]+`),
		pat(KindComment, `^#[^\n]*`),
		pat(KindString, `(?s)^(?:""".*?"""|'''.*?''')`),
		errPat(`(?s)^(?:""".*|'''.*)`, "unterminated string literal"),
		pat(KindString, `^"(?:[^"\\\n]|\\.)*"`),
		pat(KindString, `^'(?:[^'\\\n]|\\.)*'`),
		errPat(`^"(?:[^"\\\n]|\\.)*`, "unterminated string literal"),
		errPat(`^'(?:[^'\\\n]|\\.)*`, "unterminated string literal"),
		pat(KindNumber, `^(?:0[xX][0-9a-fA-F]+|0[oO][0-7]+|0[bB][01]+|\d+(?:\.\d+)?(?:[eE][+-]?\d+)?|\.\d+)`),
		pat(KindKeyword, `^(?:and|as|assert|async|await|break|class|continue|def|del|elif|else|except|finally|for|from|global|if|import|in|is|lambda|nonlocal|not|or|pass|raise|return|try|while|with|yield)\b`),
		pat(KindBoolean, `^(?:True|False)\b`),
		pat(KindNull, `^None\b`),
		pat(KindMeta, `^@[A-Za-z_][A-Za-z0-9_.]*`),
		pat(KindIdentifier, `^[A-Za-z_][A-Za-z0-9_]*`),
		pat(KindBracket, `^[()\[\]{}]`),
		pat(KindOperator, `^(?:\*\*|//|<<|>>|<=|>=|==|!=|->|:=|[+\-*/%@=<>&|^~:.,;])`),
	},

	"shell": {
		pat(KindWhitespace, `^[ \t\r\n]+`),
		pat(KindComment, `^#[^\n]*`),
		pat(KindString, `(?s)^"(?:[^"\\]|\\.)*"`),
		pat(KindString, `(?s)^'[^']*'`),
		errPat(`(?s)^"(?:[^"\\]|\\.)*`, "unterminated string literal"),
		errPat(`(?s)^'[^']*`, "unterminated string literal"),
		pat(KindVariable, `^(?:\$\{[^}\n]*\}|\$[A-Za-z_][A-Za-z0-9_]*|\$[0-9@#?*!$])`),
		pat(KindKeyword, `^(?:case|do|done|elif|else|esac|export|fi|for|function|if|in|local|readonly|return|select|then|until|while)\b`),
		pat(KindNumber, `^\d+\b`),
		pat(KindBracket, `^[()\[\]{}]`),
		pat(KindOperator, `^(?:&&|\|\||;;|>>|<<|[|&;<>=!])`),
		pat(KindIdentifier, `^[A-Za-z_][A-Za-z0-9_]*`),
		pat(KindText, `^[^\s|&;<>=(){}\[\]"'$]+`),
	},

	"sql": {
		pat(KindWhitespace, `^[ \t\r\n]+`),
		pat(KindComment, `^--[^\n]*`),
		pat(KindComment, `(?s)^/\*.*?\*/`),
		errPat(`(?s)^/\*.*`, "unterminated comment"),
		pat(KindString, `^'(?:[^'\n]|'')*'`),
		errPat(`^'(?:[^'\n]|'')*`, "unterminated string literal"),
		pat(KindNumber, `^\d+(?:\.\d+)?`),
		pat(KindNull, `(?i)^null\b`),
		pat(KindBoolean, `(?i)^(?:true|false)\b`),
		pat(KindKeyword, `(?i)^(?:select|insert|update|delete|from|where|join|inner|left|right|outer|cross|on|group|by|order|having|limit|offset|as|and|or|not|in|is|like|between|union|all|distinct|create|table|view|primary|key|foreign|references|drop|alter|add|column|index|into|values|set|default|constraint|exists|case|when|then|else|end|asc|desc|count|sum|avg|min|max)\b`),
		pat(KindIdentifier, `^"[^"\n]*"`),
		pat(KindIdentifier, `^[A-Za-z_][A-Za-z0-9_]*`),
		pat(KindBracket, `^[()]`),
		pat(KindOperator, `^(?:<>|<=|>=|!=|\|\||[=<>+\-*/%,;.])`),
	},

	LangPlainText: {
		pat(KindText, `(?s)^.+`),
	},
}

func pat(kind, pattern string) Rule {
	return Rule{Kind: kind, Pattern: regexp.MustCompile(pattern)}
}

func errPat(pattern, message string) Rule {
	return Rule{Kind: KindError, Pattern: regexp.MustCompile(pattern), ErrorMessage: message}
}

func follow(kind, pattern, followPattern string) Rule {
	return Rule{
		Kind:    kind,
		Pattern: regexp.MustCompile(pattern),
		Follow:  regexp.MustCompile(followPattern),
	}
}

// rulesFor returns the rule table for a language id, falling back to
// plain text for ids this package does not know.
func rulesFor(language string) []Rule {
	if rules, ok := languages[language]; ok {
		return rules
	}
	return languages[LangPlainText]
}

// Languages returns the supported language ids in sorted order.
func Languages() []string {
	ids := make([]string, 0, len(languages))
	for id := range languages {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// extensions maps filename extensions to language ids for DetectLanguage.
var extensions = map[string]string{
	".js":   "javascript",
	".mjs":  "javascript",
	".cjs":  "javascript",
	".html": "html",
	".htm":  "html",
	".css":  "css",
	".json": "json",
	".py":   "python",
	".sh":   "shell",
	".bash": "shell",
	".sql":  "sql",
}

// DetectLanguage picks a language id from a file name, falling back to
// plain text for unknown extensions.
func DetectLanguage(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if lang, ok := extensions[ext]; ok {
		return lang
	}
	return LangPlainText
}
