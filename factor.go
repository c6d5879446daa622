package polygrade

import (
	"strconv"
	"strings"
)

// ============================================================
// Factor splitting
// ============================================================

var closerOf = map[byte]byte{'(': ')', '[': ']'}

// ParseFactored splits a product such as `\left(x^2 - 1\right)^2 (x + 3)` into
// its factors. Each parenthesized or bracketed group becomes one factor with
// the power written after it (1 when absent); loose text between groups, like
// the 2x in 2x(x+1), becomes a power-1 factor of its own.
//
// Group contents are handed whole to ParsePolynomial, so nesting only matters
// for finding the matching close. Unbalanced delimiters return a *ParseError
// wrapping ErrUnbalanced; any other malformed input is absorbed.
func ParseFactored(text string) (Factored, error) {
	s := clean(text)
	var (
		factors []Factor
		buf     strings.Builder
	)

	flush := func() {
		pending := buf.String()
		buf.Reset()
		if pending == "" || strings.Trim(pending, "*.") == "" {
			return
		}
		factors = append(factors, Factor{Base: ParsePolynomial(pending), Power: 1})
	}

	for i := 0; i < len(s); {
		c := s[i]
		switch c {
		case ')', ']':
			return Factored{}, &ParseError{Input: s, Offset: i, Err: ErrUnbalanced}
		case '(', '[':
			flush()
			end := matchingClose(s, i)
			if end < 0 {
				return Factored{}, &ParseError{Input: s, Offset: i, Err: ErrUnbalanced}
			}
			power, next, err := scanGroupPower(s, end+1)
			if err != nil {
				return Factored{}, err
			}
			factors = append(factors, Factor{Base: ParsePolynomial(s[i+1 : end]), Power: power})
			i = next
		default:
			buf.WriteByte(c)
			i++
		}
	}
	flush()

	return Factored{Factors: factors}, nil
}

// matchingClose returns the index of the delimiter closing s[open], counting
// only delimiters of the same family, or -1.
func matchingClose(s string, open int) int {
	opener := s[open]
	closer := closerOf[opener]
	depth := 1
	for j := open + 1; j < len(s); j++ {
		switch s[j] {
		case opener:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

// scanGroupPower reads an optional ^{n} or ^digits at i and returns the power
// and the index just past it.
func scanGroupPower(s string, i int) (int, int, error) {
	if i >= len(s) || s[i] != '^' {
		return 1, i, nil
	}
	i++
	if i < len(s) && s[i] == '{' {
		end := strings.IndexByte(s[i:], '}')
		if end < 0 {
			return 0, 0, &ParseError{Input: s, Offset: i, Err: ErrUnbalanced}
		}
		end += i
		return leadingInt(s[i+1:end], 1), end + 1, nil
	}
	end := scanDigits(s, i)
	if end == i {
		return 1, i, nil
	}
	return leadingInt(s[i:end], 1), end, nil
}

// leadingInt parses the optionally signed integer prefix of s, or returns def.
func leadingInt(s string, def int) int {
	j := 0
	if j < len(s) && (s[j] == '-' || s[j] == '+') {
		j++
	}
	end := scanDigits(s, j)
	if end == j {
		return def
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return def
	}
	return n
}
