package polygrade

import (
	"strconv"
	"strings"
)

// ============================================================
// Rendering
// ============================================================

// String returns the canonical form, every term spelled out as
// coefficient·variable^exponent and joined by '+': "1x^2+-1x^0".
// ParsePolynomial reads it back to an equal polynomial.
func (p Polynomial) String() string {
	if len(p.Terms) == 0 {
		return "0"
	}
	parts := make([]string, len(p.Terms))
	for i, t := range p.Terms {
		parts[i] = strconv.FormatFloat(t.Coefficient, 'f', -1, 64) + p.Variable + "^" + strconv.Itoa(t.Exponent)
	}
	return strings.Join(parts, "+")
}

// LaTeX renders p the way a student would type it: x^{2} - 3x + 1.
func (p Polynomial) LaTeX() string {
	if len(p.Terms) == 0 {
		return "0"
	}
	var b strings.Builder
	for i, t := range p.Terms {
		c := roundCoeff(t.Coefficient)
		switch {
		case i == 0 && c < 0:
			b.WriteString("-")
		case i > 0 && c < 0:
			b.WriteString(" - ")
		case i > 0:
			b.WriteString(" + ")
		}
		if c < 0 {
			c = -c
		}
		b.WriteString(monomialLaTeX(c, p.Variable, t.Exponent))
	}
	return b.String()
}

func monomialLaTeX(c float64, v string, exp int) string {
	coeff := strconv.FormatFloat(c, 'f', -1, 64)
	switch {
	case exp == 0:
		return coeff
	case c == 1:
		coeff = ""
	}
	if exp == 1 {
		return coeff + v
	}
	return coeff + v + "^{" + strconv.Itoa(exp) + "}"
}

// String renders f as a product of canonical bases:
// (1x^1+1x^0)^{2}(1x^1+-1x^0). ParseFactored reads it back.
func (f Factored) String() string { return f.render(Polynomial.String) }

// LaTeX renders f as (x + 1)^{2}(x - 1).
func (f Factored) LaTeX() string { return f.render(Polynomial.LaTeX) }

func (f Factored) render(base func(Polynomial) string) string {
	if len(f.Factors) == 0 {
		return "1"
	}
	var b strings.Builder
	for _, factor := range f.Factors {
		b.WriteString("(" + base(factor.Base) + ")")
		if factor.Power != 1 {
			b.WriteString("^{" + strconv.Itoa(factor.Power) + "}")
		}
	}
	return b.String()
}
