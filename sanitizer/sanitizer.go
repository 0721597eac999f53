// FILE: lixenwraith/loclog/sanitizer/sanitizer.go
// Package sanitizer provides a fluent and composable interface for making
// text safe to write to a log line, based on bitwise filter and transform flags.
package sanitizer

import (
	"encoding/hex"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Filter flags for character matching
const (
	FilterNonPrintable    uint64 = 1 << iota // Matches runes not classified as printable by strconv.IsPrint
	FilterControl                            // Matches control characters (unicode.IsControl)
	FilterTerminalControl                    // Matches control characters except tab (escape sequences, carriage return, bell)
	FilterInvalidUTF8                        // Matches bytes that are not part of a valid UTF-8 sequence
)

// Transform flags for character transformation
const (
	TransformStrip      uint64 = 1 << iota // Removes the character
	TransformHexEncode                     // Encodes the character's bytes as "<XXYY>"
	TransformByteEscape                    // Encodes each byte as "\xNN"
	TransformQuote                         // Renders the whole input Go-quoted
)

// PolicyPreset defines pre-configured sanitization policies
type PolicyPreset string

const (
	PolicyRaw    PolicyPreset = "raw"    // Raw is a no-op (passthrough)
	PolicyTxt    PolicyPreset = "txt"    // Policy for text written to log files and terminals
	PolicyStrict PolicyPreset = "strict" // Policy that leaves only printable runes untouched
)

// rule represents a single sanitization rule
type rule struct {
	filter    uint64
	transform uint64
}

// policyRules contains pre-configured rules for each policy
var policyRules = map[PolicyPreset][]rule{
	PolicyRaw: {},
	PolicyTxt: {
		{filter: FilterInvalidUTF8 | FilterTerminalControl, transform: TransformQuote},
	},
	PolicyStrict: {
		{filter: FilterInvalidUTF8, transform: TransformByteEscape},
		{filter: FilterNonPrintable, transform: TransformHexEncode},
	},
}

// filterCheckers maps individual filter flags to their check functions
var filterCheckers = map[uint64]func(r rune, invalid bool) bool{
	FilterNonPrintable: func(r rune, invalid bool) bool { return !invalid && !strconv.IsPrint(r) },
	FilterControl:      func(r rune, invalid bool) bool { return !invalid && unicode.IsControl(r) },
	FilterTerminalControl: func(r rune, invalid bool) bool {
		return !invalid && r != '\t' && unicode.IsControl(r)
	},
	FilterInvalidUTF8: func(_ rune, invalid bool) bool { return invalid },
}

// Sanitizer provides chainable text sanitization.
// Once configured it holds no per-call state and is safe for concurrent use.
type Sanitizer struct {
	rules []rule
}

// New creates a new Sanitizer instance
func New() *Sanitizer {
	return &Sanitizer{
		rules: []rule{},
	}
}

// Rule adds a custom rule to the sanitizer (appended, earliest rule applies first)
func (s *Sanitizer) Rule(filter uint64, transform uint64) *Sanitizer {
	s.rules = append(s.rules, rule{filter: filter, transform: transform})
	return s
}

// Policy applies a pre-configured policy to the sanitizer (appended)
func (s *Sanitizer) Policy(preset PolicyPreset) *Sanitizer {
	if rules, ok := policyRules[preset]; ok {
		s.rules = append(s.rules, rules...)
	}
	return s
}

// Sanitize applies all configured rules to the input string.
//
// A rune matched by a TransformQuote rule turns the whole input into its
// strconv.Quote form. Input that already starts with a double quote is quoted
// as well, so with such a rule an output line starting with '"' is always the
// quoted form and every other line is the input verbatim.
func (s *Sanitizer) Sanitize(data string) string {
	if len(s.rules) == 0 {
		return data
	}
	if strings.HasPrefix(data, `"`) && s.quotes() {
		return strconv.Quote(data)
	}

	buf := make([]byte, 0, len(data)+16)
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRuneInString(data[i:])
		raw := data[i : i+size]
		invalid := r == utf8.RuneError && size == 1

		matched := false
		// Check rules in order (first match wins)
		for _, rl := range s.rules {
			if matchesFilter(r, invalid, rl.filter) {
				if rl.transform&TransformQuote != 0 {
					return strconv.Quote(data)
				}
				buf = applyTransform(buf, raw, rl.transform)
				matched = true
				break
			}
		}
		if !matched {
			buf = append(buf, raw...)
		}
		i += size
	}

	return string(buf)
}

// quotes reports whether any rule quotes its input
func (s *Sanitizer) quotes() bool {
	for _, rl := range s.rules {
		if rl.transform&TransformQuote != 0 {
			return true
		}
	}
	return false
}

// matchesFilter checks if a rune matches any filter in the mask
func matchesFilter(r rune, invalid bool, filterMask uint64) bool {
	for flag, checker := range filterCheckers {
		if (filterMask&flag) != 0 && checker(r, invalid) {
			return true
		}
	}
	return false
}

// applyTransform appends the transformed form of raw to buf
func applyTransform(buf []byte, raw string, transformMask uint64) []byte {
	switch {
	case (transformMask & TransformStrip) != 0:
		// Do nothing (strip)

	case (transformMask & TransformHexEncode) != 0:
		buf = append(buf, '<')
		buf = hex.AppendEncode(buf, []byte(raw))
		buf = append(buf, '>')

	case (transformMask & TransformByteEscape) != 0:
		for i := 0; i < len(raw); i++ {
			buf = append(buf, '\\', 'x')
			buf = hex.AppendEncode(buf, []byte{raw[i]})
		}

	default:
		buf = append(buf, raw...)
	}
	return buf
}

// Decode returns b as text. Valid UTF-8 is returned unchanged; anything else is
// returned in Go-quoted form so that every byte stays visible. Used where no
// sanitizer runs afterwards.
func Decode(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strconv.Quote(string(b))
}

// Lines splits text on line feeds and sanitizes each line independently.
func (s *Sanitizer) Lines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = s.Sanitize(line)
	}
	return lines
}
