package polygrade

import (
	"errors"
	"fmt"
	"strings"
)

// ============================================================
// Grading
// ============================================================

// Mode selects which check Grade applies.
type Mode string

const (
	// ModeSimplified accepts any answer equal to the expected polynomial
	// once like terms are combined, and flags uncombined ones.
	ModeSimplified Mode = "simplified"
	// ModeFactored accepts only the expected factorization.
	ModeFactored Mode = "factored"
)

// ErrUnknownMode is returned by ParseMode.
var ErrUnknownMode = errors.New("polygrade: unknown grading mode")

// ParseMode maps "simplified" or "factored" (any case) to a Mode. The empty
// string selects ModeSimplified.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeSimplified:
		return ModeSimplified, nil
	case ModeFactored:
		return ModeFactored, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Verdict is the outcome of grading one answer.
type Verdict string

const (
	Correct       Verdict = "correct"
	NotSimplified Verdict = "not_simplified"
	NotFactored   Verdict = "not_factored"
	Incorrect     Verdict = "incorrect"
	Unparseable   Verdict = "unparseable"
)

// Result is a graded answer.
type Result struct {
	Verdict  Verdict `json:"verdict"`
	Mode     Mode    `json:"mode"`
	Expected string  `json:"expected"`
	Answer   string  `json:"answer"`
	Message  string  `json:"message"`
}

// Correct reports whether the answer earns full credit.
func (r Result) Correct() bool { return r.Verdict == Correct }

var verdictMessages = map[Verdict]string{
	Correct:       "correct",
	NotSimplified: "equal, but like terms are not combined",
	NotFactored:   "equal when multiplied out, but not in the expected factored form",
	Incorrect:     "incorrect",
	Unparseable:   "could not parse answer",
}

// Grade checks a student's answer against the expected one.
//
// The error is reserved for a bad expected expression or mode; anything wrong
// with the answer itself is reported through the verdict.
func Grade(expected, answer string, mode Mode) (Result, error) {
	res := Result{Mode: mode, Expected: expected, Answer: answer}
	if Normalize(answer) == "" {
		return res.with(Unparseable), nil
	}

	switch mode {
	case ModeSimplified:
		return res.with(gradeSimplified(ParsePolynomial(expected), ParsePolynomial(answer))), nil
	case ModeFactored:
		want, err := ParseFactored(expected)
		if err != nil {
			return Result{}, fmt.Errorf("expected answer: %w", err)
		}
		got, err := ParseFactored(answer)
		if err != nil {
			return res.with(Unparseable), nil
		}
		return res.with(gradeFactored(want, got)), nil
	}
	return Result{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
}

func (r Result) with(v Verdict) Result {
	r.Verdict = v
	r.Message = verdictMessages[v]
	return r
}

func gradeSimplified(want, got Polynomial) Verdict {
	if !PolynomialsEqual(want, got) {
		return Incorrect
	}
	if !got.IsSimplified {
		return NotSimplified
	}
	return Correct
}

func gradeFactored(want, got Factored) Verdict {
	if FactoredEqual(want, got) {
		return Correct
	}
	we, ok1 := Expand(want)
	ge, ok2 := Expand(got)
	if ok1 && ok2 && PolynomialsEqual(we, ge) {
		return NotFactored
	}
	return Incorrect
}
