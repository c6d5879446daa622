package polygrade

import (
	"math"
	"strconv"
	"strings"
)

// ============================================================
// Signatures and factored equivalence
// ============================================================

// zeroSignature is the signature of a polynomial whose terms all cancel.
const zeroSignature = "0"

// Signature returns a canonical string for p, independent of term order and
// of floating-point noise past the sixth decimal: "1x^2+-1x^0" for x^2 - 1.
func Signature(p Polynomial) string {
	active := make([]Term, 0, len(p.Terms))
	for _, t := range p.Terms {
		if math.Abs(t.Coefficient) > zeroTolerance {
			active = append(active, t)
		}
	}
	if len(active) == 0 {
		return zeroSignature
	}
	sortTerms(active)

	parts := make([]string, len(active))
	for i, t := range active {
		parts[i] = formatCoeff(t.Coefficient) + p.Variable + "^" + strconv.Itoa(t.Exponent)
	}
	return strings.Join(parts, "+")
}

func formatCoeff(c float64) string {
	return strconv.FormatFloat(roundCoeff(c), 'f', -1, 64)
}

// unitSignature is the signature of the constant 1 in variable v. Such
// factors are invisible to factoring.
func unitSignature(v string) string { return "1" + v + "^0" }

// FactorMap maps each base signature in f to its total power. Repeated bases
// sum their powers, so (x+1)(x+1) and (x+1)^2 map the same way.
func FactorMap(f Factored) map[string]int {
	m := make(map[string]int, len(f.Factors))
	for _, factor := range f.Factors {
		sig := Signature(factor.Base)
		if sig == unitSignature(factor.Base.Variable) {
			continue
		}
		m[sig] += factor.Power
	}
	return m
}

// FactoredEqual reports whether a and b are the same product of factors up to
// reordering and merging of repeated factors.
//
// This compares factoring structure, not value: (x+1)(x-1) is not equal to
// x^2-1.
func FactoredEqual(a, b Factored) bool {
	ma, mb := FactorMap(a), FactorMap(b)
	if len(ma) != len(mb) {
		return false
	}
	for sig, pa := range ma {
		pb, ok := mb[sig]
		if !ok || pb != pa {
			return false
		}
	}
	return true
}
