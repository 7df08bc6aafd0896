package feed

import (
	"strings"
)

// MatchMode controls how query tokens are combined.
type MatchMode int

const (
	// MatchAny ORs tokens: "blue car" finds rows mentioning either word.
	MatchAny MatchMode = iota
	// MatchAll ANDs tokens.
	MatchAll
)

// tsquery operators and syntax that must not reach to_tsquery from user input.
var tsqueryReplacer = strings.NewReplacer(
	"&", " ", "|", " ", "!", " ", "(", " ", ")", " ",
	":", " ", "*", " ", "<", " ", ">", " ", "'", " ", "\"", " ", "\\", " ",
)

// Tokens splits raw text into lower-cased search terms with tsquery syntax removed.
func Tokens(raw string) []string {
	cleaned := tsqueryReplacer.Replace(strings.TrimSpace(raw))
	fields := strings.Fields(cleaned)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, strings.ToLower(f))
	}
	return out
}

// BuildTSQuery turns free text into a prefix-matching to_tsquery expression,
// e.g. "Blue Car" -> "blue:* | car:*". It returns "" when nothing searchable
// remains; callers treat that as an empty result without querying.
// The result is always bound as a parameter, never spliced into SQL.
func BuildTSQuery(raw string, mode MatchMode) string {
	tokens := Tokens(raw)
	if len(tokens) == 0 {
		return ""
	}
	for i, t := range tokens {
		tokens[i] = t + ":*"
	}
	sep := " | "
	if mode == MatchAll {
		sep = " & "
	}
	return strings.Join(tokens, sep)
}
