package polygrade

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ============================================================
// Normalization
// ============================================================

// Markup that carries no weight for a polynomial answer.
var sizingMarkup = []string{`\left`, `\right`}

// Glyphs students paste from word processors, and LaTeX product operators.
var glyphReplacer = strings.NewReplacer(
	"−", "-", // minus sign
	"–", "-", // en dash
	"—", "-", // em dash
	`\cdot`, "*",
	`\times`, "*",
)

// Normalize cleans raw answer text for scanning: Unicode folding, whitespace
// removal, sizing markup removal and sign-run collapsing.
func Normalize(s string) string {
	return collapseSigns(clean(s))
}

// clean does everything Normalize does except sign collapsing. The factor
// splitter uses it directly and leaves sign runs to ParsePolynomial.
func clean(s string) string {
	s = norm.NFKC.String(superscripts(s))
	s = glyphReplacer.Replace(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	for _, m := range sizingMarkup {
		s = strings.ReplaceAll(s, m, "")
	}
	return s
}

var superscriptDigits = map[rune]byte{
	'⁰': '0', '¹': '1', '²': '2', '³': '3', '⁴': '4',
	'⁵': '5', '⁶': '6', '⁷': '7', '⁸': '8', '⁹': '9', '⁻': '-',
}

// superscripts rewrites runs of superscript digits as braced exponents,
// x¹² to x^{12}. NFKC alone would fold them into plain digits.
func superscripts(s string) string {
	if !strings.ContainsAny(s, "⁰¹²³⁴⁵⁶⁷⁸⁹⁻") {
		return s
	}
	var b strings.Builder
	inRun := false
	for _, r := range s {
		d, ok := superscriptDigits[r]
		switch {
		case ok && !inRun:
			b.WriteString("^{")
			inRun = true
		case !ok && inRun:
			b.WriteByte('}')
			inRun = false
		}
		if ok {
			b.WriteByte(d)
		} else {
			b.WriteRune(r)
		}
	}
	if inRun {
		b.WriteByte('}')
	}
	return b.String()
}

// collapseSigns rewrites every run of '+'/'-' into a single sign. A run is
// negative iff it holds an odd number of '-', which is the fixed point of
// repeatedly applying --→+, ++→+, +-→-, -+→-.
func collapseSigns(s string) string {
	if !strings.ContainsAny(s, "+-") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c != '+' && c != '-' {
			b.WriteByte(c)
			i++
			continue
		}
		neg := false
		for ; i < len(s) && (s[i] == '+' || s[i] == '-'); i++ {
			if s[i] == '-' {
				neg = !neg
			}
		}
		if neg {
			b.WriteByte('-')
		} else {
			b.WriteByte('+')
		}
	}
	return b.String()
}

// DetectVariable returns the first ASCII letter in s, or "x" when s has none.
func DetectVariable(s string) string {
	for i := 0; i < len(s); i++ {
		if isLetter(s[i]) {
			return s[i : i+1]
		}
	}
	return "x"
}

func isLetter(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }
func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
