// Package jsonrepair recovers JSON objects from truncated or malformed LLM responses.
//
// The repair is a deterministic heuristic, not a general JSON fixer. It only repairs
// unterminated string literals and unbalanced closing brackets, in that priority order,
// and gives up after one repair retry rather than looping.
package jsonrepair

import (
	"encoding/json"
	"github.com/myrjola/casegen/internal/errors"
	"log/slog"
	"strings"
)

// ErrUnrecoverableFormat means the response could not be repaired into valid JSON.
var ErrUnrecoverableFormat = errors.NewSentinel("unrecoverable response format")

// diagnosticTailLength limits how much of the raw response is retained in error
// attributes for server-side diagnostics.
const diagnosticTailLength = 500

// Repair trims the raw response down to a syntactically plausible JSON object.
//
// Prose and markdown fences around the object are stripped. When the response was
// truncated mid-stream, the dangling string literal is closed and the missing
// closing brackets are appended. Already well-formed input is returned untouched
// so that repair is a no-op on valid JSON.
func Repair(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return "", errors.Wrap(ErrUnrecoverableFormat, "response contains no JSON object",
			slog.String("tail", tail(raw)))
	}
	s = s[start:]

	if strings.HasSuffix(s, "}") {
		return s, nil
	}

	// The response was truncated mid-stream or has trailing prose. Cutting at the
	// last closing brace is correct when the prefix up to it has balanced quotes.
	if i := strings.LastIndexByte(s, '}'); i >= 0 {
		head := s[:i+1]
		if quotesBalanced(head) {
			return head, nil
		}
	}

	s = closeDanglingString(s)
	return appendClosers(s), nil
}

// Decode repairs raw and unmarshals the result into v. When the first decode fails,
// the quote-balance scan runs once more and decoding is retried exactly once.
func Decode(raw string, v any) error {
	repaired, err := Repair(raw)
	if err != nil {
		return err
	}
	if err = json.Unmarshal([]byte(repaired), v); err == nil {
		return nil
	}
	retried := appendClosers(closeDanglingString(repaired))
	if err = json.Unmarshal([]byte(retried), v); err != nil {
		return errors.Wrap(ErrUnrecoverableFormat, "decode repaired response",
			slog.String("tail", tail(raw)))
	}
	return nil
}

// RepairAndParse repairs raw and parses it into a generic object.
func RepairAndParse(raw string) (map[string]any, error) {
	var parsed map[string]any
	if err := Decode(raw, &parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}

// quotesBalanced reports whether s has an even count of unescaped double quotes.
func quotesBalanced(s string) bool {
	balanced := true
	for i := 0; i < len(s); i++ {
		if s[i] == '"' && !escaped(s, i) {
			balanced = !balanced
		}
	}
	return balanced
}

// escaped reports whether the character at index i is preceded by an odd number
// of backslashes.
func escaped(s string, i int) bool {
	backslashes := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		backslashes++
	}
	return backslashes%2 == 1
}

// closeDanglingString terminates an unterminated string literal.
//
// The scan walks s tracking whether it is inside a string. When the scan ends
// still inside one, a closing quote is spliced immediately before the nearest
// following structural character, or appended at the end when none exists.
func closeDanglingString(s string) string {
	inString := false
	lastOpenQuote := -1
	for i := 0; i < len(s); i++ {
		if s[i] == '"' && !escaped(s, i) {
			inString = !inString
			if inString {
				lastOpenQuote = i
			}
		}
	}
	if !inString {
		return s
	}
	for i := lastOpenQuote + 1; i < len(s); i++ {
		switch s[i] {
		case ',', '}', ']':
			if !escaped(s, i) {
				return s[:i] + `"` + s[i:]
			}
		}
	}
	return s + `"`
}

// appendClosers appends the exact closing brackets needed to balance still-open
// objects and arrays. Bracket characters inside string literals are ignored.
func appendClosers(s string) string {
	var open []byte
	inString := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' && !escaped(s, i) {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		switch c {
		case '{', '[':
			open = append(open, c)
		case '}', ']':
			if len(open) > 0 {
				open = open[:len(open)-1]
			}
		}
	}
	closers := make([]byte, 0, len(open))
	for i := len(open) - 1; i >= 0; i-- {
		if open[i] == '{' {
			closers = append(closers, '}')
		} else {
			closers = append(closers, ']')
		}
	}
	return s + string(closers)
}

func tail(s string) string {
	if len(s) <= diagnosticTailLength {
		return s
	}
	return s[len(s)-diagnosticTailLength:]
}
