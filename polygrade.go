// Package polygrade parses LaTeX-like single-variable polynomial answers and
// checks them for combined like terms and for factored structure.
//
// Design goals:
//   - Pure functions, no I/O, safe for concurrent use
//   - Lenient with messy student input, strict only about grouping delimiters
//   - Deterministic comparisons (coefficients rounded to 6 decimals)
//   - Tool-call friendly: JSON-tagged values and a HandleToolCall entry point
//
// Two checks are offered. PolynomialsEqual compares expanded answers term by
// term and ParsePolynomial reports whether like terms were already combined.
// FactoredEqual compares factored answers as multisets of (base, power) and
// deliberately rejects an expanded answer to a factoring question.
package polygrade

import (
	"errors"
	"fmt"
)

// ============================================================
// Values
// ============================================================

// Term is a single coefficient·variable^exponent monomial.
type Term struct {
	Coefficient float64 `json:"coefficient"`
	Exponent    int     `json:"exponent"`
}

// Polynomial is a single-variable polynomial with like terms combined.
//
// Terms are sorted by exponent descending, hold at most one entry per
// exponent and never carry a zero coefficient. IsSimplified is false when the
// raw input had two or more terms sharing an exponent.
type Polynomial struct {
	Variable     string `json:"variable"`
	Terms        []Term `json:"terms"`
	IsSimplified bool   `json:"is_simplified"`
}

// Degree returns the highest exponent, or -1 for the zero polynomial.
func (p Polynomial) Degree() int {
	if len(p.Terms) == 0 {
		return -1
	}
	return p.Terms[0].Exponent
}

// IsZero reports whether every term cancelled.
func (p Polynomial) IsZero() bool { return len(p.Terms) == 0 }

// Factor is a parenthesized base raised to Power.
type Factor struct {
	Base  Polynomial `json:"base"`
	Power int        `json:"power"`
}

// Factored is a product of factors. Order is not significant.
type Factored struct {
	Factors []Factor `json:"factors"`
}

// ============================================================
// Errors
// ============================================================

// ErrUnbalanced is returned (wrapped in a *ParseError) when grouping
// delimiters do not pair up.
var ErrUnbalanced = errors.New("polygrade: unbalanced delimiters")

// ParseError describes a structural failure in a factored expression.
type ParseError struct {
	Input  string // cleaned input
	Offset int    // byte offset of the offending delimiter
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v at offset %d in %q", e.Err, e.Offset, e.Input)
}

func (e *ParseError) Unwrap() error { return e.Err }
