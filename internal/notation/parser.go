// Package notation parses tabletop dice notation such as "2d6+3" into a RollSpec
package notation

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/KirkDiggler/rpg-dice/internal/entities"
	"github.com/KirkDiggler/rpg-dice/internal/errors"
)

const (
	// Shortest legal roll is "1d1", longest is "99d100+999"
	minLength = 3
	maxLength = 11

	dieMarker = 'd'
)

// Reasons reported by Parse
const (
	ReasonInvalidInput      errors.Reason = "invalid_input"
	ReasonLength            errors.Reason = "length"
	ReasonMissingDieMarker  errors.Reason = "missing_die_marker"
	ReasonNonNumericCount   errors.Reason = "non_numeric_count"
	ReasonNonNumericDieSize errors.Reason = "non_numeric_die_size"
	ReasonEmptyDieSize      errors.Reason = "empty_die_size"
	ReasonRange             errors.Reason = "range"
	ReasonModifierSyntax    errors.Reason = "modifier_syntax"
)

// tokens holds the raw pieces of a roll before conversion
type tokens struct {
	count    string
	sides    string
	sign     byte
	modifier string
}

// Parse validates raw dice notation and returns the roll it describes.
// All whitespace is ignored and the die marker is case-insensitive.
func Parse(raw string) (entities.RollSpec, error) {
	if !utf8.ValidString(raw) {
		return entities.RollSpec{}, invalid(ReasonInvalidInput, "roll must be plain text")
	}

	compact := strings.ToLower(stripWhitespace(raw))
	if n := utf8.RuneCountInString(compact); n < minLength || n > maxLength {
		return entities.RollSpec{}, invalidf(ReasonLength,
			"roll must be between %d and %d characters, got %d", minLength, maxLength, n)
	}

	marker := strings.IndexByte(compact, dieMarker)
	if marker < 0 {
		return entities.RollSpec{}, invalid(ReasonMissingDieMarker, "roll is missing the 'd' between count and sides")
	}

	tok := split(compact, marker)

	count, err := parseCount(tok.count)
	if err != nil {
		return entities.RollSpec{}, err
	}

	sides, err := parseSides(tok.sides)
	if err != nil {
		return entities.RollSpec{}, err
	}

	modifier, err := parseModifier(tok)
	if err != nil {
		return entities.RollSpec{}, err
	}

	return entities.RollSpec{
		Count:    count,
		Sides:    sides,
		Modifier: modifier,
	}, nil
}

// MustParse is like Parse but panics on invalid notation
func MustParse(raw string) entities.RollSpec {
	spec, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return spec
}

// split cuts compact notation into tokens. The count is everything before
// the marker. After it, a '+' anywhere ends the sides token and everything
// past it is the modifier; with no '+', the first '-' ends the sides token
// and stays at the front of the modifier so its sign survives conversion.
func split(compact string, marker int) tokens {
	tok := tokens{count: compact[:marker]}
	rest := compact[marker+1:]

	if plus := strings.IndexByte(rest, '+'); plus >= 0 {
		tok.sides = rest[:plus]
		tok.sign = '+'
		tok.modifier = rest[plus+1:]
		return tok
	}

	if minus := strings.IndexByte(rest, '-'); minus >= 0 {
		tok.sides = rest[:minus]
		tok.sign = '-'
		tok.modifier = rest[minus:]
		return tok
	}

	tok.sides = rest
	return tok
}

func parseCount(token string) (int, error) {
	if !isDigits(token) {
		return 0, invalidf(ReasonNonNumericCount, "dice count %q is not a number", token)
	}

	count, err := strconv.Atoi(token)
	if err != nil || count < entities.MinCount || count > entities.MaxCount {
		return 0, outOfRangef("dice count must be between %d and %d", entities.MinCount, entities.MaxCount)
	}
	return count, nil
}

func parseSides(token string) (int, error) {
	if token == "" {
		return 0, invalid(ReasonEmptyDieSize, "die size is missing after the 'd'")
	}
	if !isDigits(token) {
		return 0, invalidf(ReasonNonNumericDieSize, "die size %q is not a number", token)
	}

	sides, err := strconv.Atoi(token)
	if err != nil || sides < entities.MinSides || sides > entities.MaxSides {
		return 0, outOfRangef("die size must be between %d and %d", entities.MinSides, entities.MaxSides)
	}
	return sides, nil
}

func parseModifier(tok tokens) (int, error) {
	if tok.sign == 0 {
		return 0, nil
	}

	digits := tok.modifier
	if tok.sign == '-' {
		digits = strings.TrimPrefix(digits, "-")
	}
	if !isDigits(digits) {
		return 0, invalidf(ReasonModifierSyntax, "modifier %q must be a sign followed by digits", string(tok.sign)+digits)
	}

	value, err := strconv.Atoi(tok.modifier)
	if err != nil || value < -entities.MaxModifier || value > entities.MaxModifier {
		return 0, invalidf(ReasonModifierSyntax, "modifier must be between -%d and %d", entities.MaxModifier, entities.MaxModifier)
	}
	return value, nil
}

// isDigits reports whether s is a non-empty run of ASCII decimal digits
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func invalid(reason errors.Reason, message string) *errors.Error {
	return errors.InvalidArgument(message).WithReason(reason)
}

func invalidf(reason errors.Reason, format string, args ...interface{}) *errors.Error {
	return errors.InvalidArgumentf(format, args...).WithReason(reason)
}

func outOfRangef(format string, args ...interface{}) *errors.Error {
	return errors.OutOfRangef(format, args...).WithReason(ReasonRange)
}
