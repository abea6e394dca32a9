// Package strutil parses integer literals and renders two's complement values.
package strutil

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

const (
	digitSep = '_'
)

type posError struct {
	pos int
	err string
}

func newPosError(err string, pos int) *posError {
	return &posError{err: err, pos: pos}
}

func (pe posError) Error() string {
	return pe.err + fmt.Sprintf(" at pos %d", pe.pos)
}

func addPosErrorOffset(err error, offset int) error {
	var pe *posError
	if !errors.As(err, &pe) { // try to locate error position.
		return err
	}
	pe.pos += offset
	return pe
}

// Literal is a parsed integer literal.
type Literal struct {
	// Value is the parsed number.
	Value *big.Int
	// Base is 2, 8, 10, or 16.
	Base int
	// Digits is the number of digits in the literal, excluding the prefix and separators.
	Digits int
}

// ParseInt parses decimal, 0b, 0o, and 0x literals. Digits may be separated by '_'.
// Surrounding quotes and spaces are ignored, a leading sign is accepted.
func ParseInt(s string) (Literal, error) {
	s, offset, neg := PrepareString(s)
	if len(s) == 0 {
		return Literal{}, fmt.Errorf("empty input")
	}
	lit, err := doParseInt(s)
	if err != nil {
		// add what we've trimmed before and add +1 to the offset to start indices from 1.
		return Literal{}, fmt.Errorf("parsing failed: %w", addPosErrorOffset(err, offset+1))
	}
	if neg {
		lit.Value.Neg(lit.Value)
	}
	return lit, nil
}

func doParseInt(s string) (Literal, error) {
	base, start := 10, 0
	if len(s) > 1 && s[0] == '0' {
		switch s[1] {
		case 'b', 'B':
			base, start = 2, 2
		case 'o', 'O':
			base, start = 8, 2
		case 'x', 'X':
			base, start = 16, 2
		}
	}
	var b strings.Builder
	for i, r := range s[start:] {
		switch {
		case r == digitSep:
			continue
		case digitValue(r) < base:
			b.WriteRune(r)
		default:
			return Literal{}, newPosError(fmt.Sprintf("unexpected symbol %q", r), start+i)
		}
	}
	if b.Len() == 0 {
		return Literal{}, newPosError("no digits", len(s))
	}
	v, ok := new(big.Int).SetString(b.String(), base)
	if !ok {
		panic("invalid digits") // should not normally happen
	}
	return Literal{Value: v, Base: base, Digits: b.Len()}, nil
}

func digitValue(r rune) int {
	switch {
	case '0' <= r && r <= '9':
		return int(r - '0')
	case 'a' <= r && r <= 'f':
		return int(r-'a') + 10
	case 'A' <= r && r <= 'F':
		return int(r-'A') + 10
	default:
		return 1 << 8
	}
}

// PrepareString cleans the string from ",-,+ symbols, and spaces.
func PrepareString(s string) (prepared string, offset int, neg bool) {
	if len(s) == 0 {
		return "", 0, false
	}
	if s[0] == '"' {
		s = s[1:]
		offset++
	}
	if len(s) == 0 {
		return "", 0, false
	}
	if s[len(s)-1] == '"' {
		s = s[:len(s)-1]
	}
	if trimmed := strings.TrimLeftFunc(s, unicode.IsSpace); len(trimmed) != len(s) {
		offset += len(s) - len(trimmed)
		s = trimmed
	}
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	if len(s) == 0 {
		return "", 0, false
	}
	if s[0] == '-' {
		neg = true
		offset++
		s = s[1:]
	} else if s[0] == '+' {
		offset++
		s = s[1:]
	}
	return s, offset, neg
}

// FormatBin renders v as a two's complement bit string.
// If width > 0, exactly width bits are rendered, otherwise the minimal
// two's complement form is used: no sign bit for non-negative numbers,
// a single leading one for negative ones.
func FormatBin(v *big.Int, width int) string {
	if width <= 0 {
		if v.Sign() >= 0 {
			return v.Text(2)
		}
		t := new(big.Int).Neg(v)
		t.Sub(t, big.NewInt(1))
		width = t.BitLen() + 1
	}
	mod := new(big.Int).Lsh(big.NewInt(1), uint(width))
	t := new(big.Int).Mod(v, mod)
	s := t.Text(2)
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	return s
}

// FormatScaled renders a scaled integer as "<si> * 2**<shift>".
func FormatScaled(si *big.Int, shift int) string {
	var b strings.Builder
	b.WriteString(si.String())
	b.WriteString(" * 2**")
	b.WriteString(strconv.Itoa(shift))
	return b.String()
}

// ParseScaled parses the FormatScaled form, like "6 * 2**-3".
// Spaces around '*' are optional.
func ParseScaled(s string) (si *big.Int, shift int, err error) {
	s = strings.Trim(strings.TrimSpace(s), `"`)
	idx := strings.Index(s, "**")
	if idx < 0 {
		return nil, 0, fmt.Errorf("parsing failed: missing '**' in %q", s)
	}
	head := strings.TrimRightFunc(s[:idx], unicode.IsSpace)
	if !strings.HasSuffix(head, "2") {
		return nil, 0, fmt.Errorf("parsing failed: base must be 2 in %q", s)
	}
	head = strings.TrimRightFunc(head[:len(head)-1], unicode.IsSpace)
	if !strings.HasSuffix(head, "*") {
		return nil, 0, fmt.Errorf("parsing failed: missing '*' in %q", s)
	}
	lit, err := ParseInt(head[:len(head)-1])
	if err != nil {
		return nil, 0, err
	}
	shift, err = strconv.Atoi(strings.TrimSpace(s[idx+2:]))
	if err != nil {
		return nil, 0, fmt.Errorf("parsing failed: bad exponent: %w", err)
	}
	return lit.Value, shift, nil
}
