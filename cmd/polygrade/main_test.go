package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/polygrade"
)

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	cfg := filepath.Join(t.TempDir(), "none.yaml")
	rootCmd.SetArgs(append(args, "--config", cfg, "--log-level", "error"))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	out, err := run(t, "parse", "3x^2 + 2x^2")
	require.NoError(t, err)
	assert.Contains(t, out, "latex:      5x^{2}")
	assert.Contains(t, out, "simplified: false")
	assert.Contains(t, out, "signature:  5x^2")
}

func TestParseCommand_JSON(t *testing.T) {
	out, err := run(t, "parse", "--json", "x^2", "-", "1")
	require.NoError(t, err)

	var p polygrade.Polynomial
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, []polygrade.Term{{Coefficient: 1, Exponent: 2}, {Coefficient: -1, Exponent: 0}}, p.Terms)
}

func TestFactorCommand(t *testing.T) {
	out, err := run(t, "factor", "(x+1)(x+1)(x-1)")
	require.NoError(t, err)
	assert.Contains(t, out, "1x^1+1x^0 -> 2")
	assert.Contains(t, out, "1x^1+-1x^0 -> 1")

	_, err = run(t, "factor", "(x+1")
	assert.ErrorIs(t, err, polygrade.ErrUnbalanced)
}

func TestCheckCommand(t *testing.T) {
	out, err := run(t, "check", "--expected", "(x+1)(x-1)", "--answer", "x^2-1", "--mode", "factored")
	require.NoError(t, err)
	assert.Contains(t, out, "NOT_FACTORED")
	assert.Contains(t, out, "Grading report")

	out, err = run(t, "check", "--expected", "x^2-1", "--answer", "x^2-1", "--mode", "simplified", "--json")
	require.NoError(t, err)
	var res polygrade.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, polygrade.Correct, res.Verdict)

	_, err = run(t, "check", "--expected", "x", "--answer", "x", "--mode", "bogus", "--json")
	assert.ErrorIs(t, err, polygrade.ErrUnknownMode)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "polygrade version "+polygrade.Version+"\n", out)
}

func TestRenderResult_Plain(t *testing.T) {
	res, err := polygrade.Grade("x^2-1", "x^2+x-x-1", polygrade.ModeSimplified)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderResult(&buf, res, "notty"))
	assert.Contains(t, buf.String(), "NOT_SIMPLIFIED  equal, but like terms are not combined")
	assert.Contains(t, buf.String(), "Grading report")
}
