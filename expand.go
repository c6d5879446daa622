package polygrade

// ============================================================
// Expansion
// ============================================================

const (
	// maxExpandPower bounds the work a single factor can ask for.
	maxExpandPower = 64
	// maxExpandWork bounds the coefficient multiplications of a whole
	// product. Factors like (x^{2^k}+1) double the term count each time.
	maxExpandWork = 1 << 16
	// maxExpandExponent keeps exponent sums far from int overflow.
	maxExpandExponent = 1 << 30
)

// Expand multiplies the factors of f out into a single polynomial. It reports
// false when a power is negative or when the non-constant bases disagree on
// the variable (neither is a polynomial in one variable), when a power
// exceeds maxExpandPower, when an exponent exceeds maxExpandExponent, and
// when the product would need more than maxExpandWork multiplications.
func Expand(f Factored) (Polynomial, bool) {
	variable := ""
	for _, factor := range f.Factors {
		for _, t := range factor.Base.Terms {
			if t.Exponent > maxExpandExponent || t.Exponent < -maxExpandExponent {
				return Polynomial{}, false
			}
		}
		if !isConstant(factor.Base) {
			if variable != "" && factor.Base.Variable != variable {
				return Polynomial{}, false
			}
			variable = factor.Base.Variable
		}
	}
	if variable == "" {
		variable = "x"
	}

	acc := map[int]float64{0: 1}
	work := 0
	for _, factor := range f.Factors {
		if factor.Power < 0 || factor.Power > maxExpandPower {
			return Polynomial{}, false
		}
		for n := 0; n < factor.Power; n++ {
			work += len(acc) * len(factor.Base.Terms)
			if work > maxExpandWork {
				return Polynomial{}, false
			}
			acc = mulTerms(acc, factor.Base.Terms)
		}
	}

	terms := make([]Term, 0, len(acc))
	for exp, c := range acc {
		if roundCoeff(c) != 0 {
			terms = append(terms, Term{Coefficient: c, Exponent: exp})
		}
	}
	sortTerms(terms)
	return Polynomial{Variable: variable, Terms: terms, IsSimplified: true}, true
}

func mulTerms(acc map[int]float64, terms []Term) map[int]float64 {
	out := make(map[int]float64, len(acc)*len(terms))
	for ea, ca := range acc {
		for _, t := range terms {
			out[ea+t.Exponent] += ca * t.Coefficient
		}
	}
	return out
}

func isConstant(p Polynomial) bool {
	for _, t := range p.Terms {
		if t.Exponent != 0 {
			return false
		}
	}
	return true
}
