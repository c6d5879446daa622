package polygrade

import (
	"errors"
	"math"
	"sort"
	"strconv"
)

// ============================================================
// Term scanning
// ============================================================

// rawTerm is one match of
//
//	term := sign? coefficient? variable? exponent?
//
// where exponent := '^' '{'? '-'? digits '}'?.
type rawTerm struct {
	negative    bool
	coeff       float64
	hasCoeff    bool
	hasVariable bool
	exponent    int
	hasExponent bool
}

// scanTerm matches the longest term starting at s[i] and returns it with its
// width in bytes. A width of zero means nothing matched at i.
func scanTerm(s string, i int, variable string) (rawTerm, int) {
	var t rawTerm
	j := i

	if j < len(s) && (s[j] == '+' || s[j] == '-') {
		t.negative = s[j] == '-'
		j++
	}

	if k := scanDecimal(s, j); k > j {
		// Digits and '.' only, ParseFloat cannot reject them. Overlong runs
		// saturate to ±Inf.
		t.coeff, _ = strconv.ParseFloat(s[j:k], 64)
		t.hasCoeff = true
		j = k
	}

	if j+len(variable) <= len(s) && s[j:j+len(variable)] == variable {
		t.hasVariable = true
		j += len(variable)
	}

	if exp, k, ok := scanExponent(s, j); ok {
		t.exponent = exp
		t.hasExponent = true
		j = k
	}

	return t, j - i
}

// scanDecimal returns the end of digits ('.' digits)? starting at i, or i.
func scanDecimal(s string, i int) int {
	j := i
	for j < len(s) && isDigit(s[j]) {
		j++
	}
	if j == i {
		return i
	}
	if j+1 < len(s) && s[j] == '.' && isDigit(s[j+1]) {
		j++
		for j < len(s) && isDigit(s[j]) {
			j++
		}
	}
	return j
}

// scanDigits returns the end of a run of digits starting at i.
func scanDigits(s string, i int) int {
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return i
}

// scanExponent matches '^' '{'? '-'? digits '}'? at i. When the digits are
// missing nothing is consumed, so a dangling '^' is left for the caller to
// skip. Exponents beyond the int range saturate.
func scanExponent(s string, i int) (int, int, bool) {
	if i >= len(s) || s[i] != '^' {
		return 0, i, false
	}
	j := i + 1
	if j < len(s) && s[j] == '{' {
		j++
	}
	start := j
	if j < len(s) && s[j] == '-' {
		j++
	}
	end := scanDigits(s, j)
	if end == j {
		return 0, i, false
	}
	n, err := strconv.Atoi(s[start:end])
	if err != nil {
		// Only ErrRange is possible here; Atoi saturates on it.
		if !errors.Is(err, strconv.ErrRange) {
			return 0, i, false
		}
	}
	if end < len(s) && s[end] == '}' {
		end++
	}
	return n, end, true
}

// value interprets a matched term as (coefficient, exponent).
func (t rawTerm) value() (float64, int) {
	c := 1.0
	if t.hasCoeff {
		c = t.coeff
	}
	if t.negative {
		c = -c
	}
	if !t.hasVariable {
		return c, 0
	}
	if t.hasExponent {
		return c, t.exponent
	}
	return c, 1
}

// ============================================================
// ParsePolynomial
// ============================================================

// ParsePolynomial parses a single-variable polynomial such as
// "x^{12} + -2x + 3.5" and combines like terms.
//
// It never fails. Characters that do not start a term are skipped, so a
// partially typed answer still yields its recognisable terms. The variable is
// the first letter in the input, "x" when there is none.
func ParsePolynomial(text string) Polynomial {
	s := Normalize(text)
	return parseTerms(s, DetectVariable(s))
}

// parseTerms scans a normalized string. The cursor always advances: by the
// match width, or by one byte past a position where nothing matched.
func parseTerms(s, variable string) Polynomial {
	sums := map[int]float64{}
	order := []int{}
	simplified := true

	for i := 0; i < len(s); {
		t, width := scanTerm(s, i, variable)
		if width == 0 {
			i++
			continue
		}
		i += width

		c, exp := t.value()
		if _, seen := sums[exp]; seen {
			simplified = false
		} else {
			order = append(order, exp)
		}
		sums[exp] += c
	}

	terms := make([]Term, 0, len(order))
	for _, exp := range order {
		if c := sums[exp]; roundCoeff(c) != 0 {
			terms = append(terms, Term{Coefficient: c, Exponent: exp})
		}
	}
	sortTerms(terms)

	return Polynomial{Variable: variable, Terms: terms, IsSimplified: simplified}
}

func sortTerms(terms []Term) {
	sort.Slice(terms, func(i, j int) bool { return terms[i].Exponent > terms[j].Exponent })
}

// ============================================================
// Comparison
// ============================================================

const (
	coeffPrecision = 6
	zeroTolerance  = 1e-9
)

var precisionScale = math.Pow10(coeffPrecision)

// roundCoeff rounds c to coeffPrecision decimals. Every coefficient
// comparison goes through it.
func roundCoeff(c float64) float64 {
	if math.Abs(c) >= 1e15 || math.IsNaN(c) {
		return c // no fractional digits left at this magnitude
	}
	r := math.Round(c*precisionScale) / precisionScale
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}

// PolynomialsEqual reports whether a and b have the same variable and the
// same terms. Both must come from ParsePolynomial (or be sorted the same
// way); terms are compared position by position.
func PolynomialsEqual(a, b Polynomial) bool {
	if a.Variable != b.Variable || len(a.Terms) != len(b.Terms) {
		return false
	}
	for i := range a.Terms {
		ta, tb := a.Terms[i], b.Terms[i]
		if ta.Exponent != tb.Exponent || roundCoeff(ta.Coefficient) != roundCoeff(tb.Coefficient) {
			return false
		}
	}
	return true
}
