package gotemplate

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultElide is the elide limit used when a template passes none.
const DefaultElide = 32

// DefaultFilters returns the filters every engine registers: trim, slug and
// elide.
func DefaultFilters() map[string]Filter {
	return map[string]Filter{
		"trim":  Trim,
		"slug":  Slug,
		"elide": Elide,
	}
}

// Trim strips surrounding whitespace.
func Trim(input any, _ any) (any, error) {
	return strings.TrimSpace(stringify(input)), nil
}

// Slug turns a label such as "Encrypted message" into "encrypted-message"
// for element ids.
func Slug(input any, _ any) (any, error) {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(stringify(input))) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-"), nil
}

// Elide shortens values longer than param runes, keeping both ends:
// "gAAAAABk...Q==". Limits under 5 leave the value untouched.
func Elide(input any, param any) (any, error) {
	text := stringify(input)
	limit, err := elideLimit(param)
	if err != nil {
		return nil, err
	}
	if limit < 5 || utf8.RuneCountInString(text) <= limit {
		return text, nil
	}
	runes := []rune(text)
	keep := (limit - 3) / 2
	return string(runes[:keep]) + "..." + string(runes[len(runes)-keep:]), nil
}

func elideLimit(param any) (int, error) {
	switch v := param.(type) {
	case nil:
		return DefaultElide, nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("elide: invalid limit %q", v)
		}
		return n, nil
	}
	return 0, fmt.Errorf("elide: invalid limit %v", param)
}

func stringify(input any) string {
	switch v := input.(type) {
	case nil:
		return ""
	case string:
		return v
	}
	return fmt.Sprint(input)
}
