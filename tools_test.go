package polygrade_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/polygrade"
)

func call(tool string, params map[string]interface{}) polygrade.ToolResponse {
	return polygrade.HandleToolCall(polygrade.ToolRequest{Tool: tool, Params: params})
}

func TestHandleToolCall_ParsePolynomial(t *testing.T) {
	resp := call("parse_polynomial", map[string]interface{}{"text": "3x^2 + 2x^2"})
	require.Empty(t, resp.Error)
	p, ok := resp.Result.(polygrade.Polynomial)
	require.True(t, ok)
	assert.False(t, p.IsSimplified)
	assert.Equal(t, "5x^{2}", resp.LaTeX)
	assert.Equal(t, "5x^2", resp.String)
}

func TestHandleToolCall_Equality(t *testing.T) {
	resp := call("polynomials_equal", map[string]interface{}{"a": "x^2-1", "b": "-1+x^2"})
	require.Empty(t, resp.Error)
	assert.Equal(t, true, resp.Result)

	resp = call("factored_equal", map[string]interface{}{"a": "(x+1)(x+1)", "b": "(x+1)^2"})
	require.Empty(t, resp.Error)
	assert.Equal(t, true, resp.Result)

	resp = call("factored_equal", map[string]interface{}{"a": "(x+1", "b": "(x+1)"})
	assert.Contains(t, resp.Error, "unbalanced")
}

func TestHandleToolCall_ParseFactored(t *testing.T) {
	resp := call("parse_factored", map[string]interface{}{"text": "(x+1)^2(x-1)"})
	require.Empty(t, resp.Error)
	f, ok := resp.Result.(polygrade.Factored)
	require.True(t, ok)
	assert.Len(t, f.Factors, 2)
	assert.Equal(t, "(x + 1)^{2}(x - 1)", resp.LaTeX)
}

func TestHandleToolCall_Expand(t *testing.T) {
	resp := call("expand", map[string]interface{}{"text": "(x+1)(x-1)"})
	require.Empty(t, resp.Error)
	assert.Equal(t, "x^{2} - 1", resp.LaTeX)

	resp = call("expand", map[string]interface{}{"text": "(x+1)^{-1}"})
	assert.NotEmpty(t, resp.Error)
}

func TestHandleToolCall_Signature(t *testing.T) {
	resp := call("signature", map[string]interface{}{"text": "-1 + x^2"})
	require.Empty(t, resp.Error)
	assert.Equal(t, "1x^2+-1x^0", resp.String)
}

func TestHandleToolCall_Grade(t *testing.T) {
	resp := call("grade", map[string]interface{}{
		"expected": "(x+1)(x-1)",
		"answer":   "x^2-1",
		"mode":     "factored",
	})
	require.Empty(t, resp.Error)
	assert.Equal(t, "not_factored", resp.String)
	res, ok := resp.Result.(polygrade.Result)
	require.True(t, ok)
	assert.Equal(t, polygrade.NotFactored, res.Verdict)

	resp = call("grade", map[string]interface{}{"expected": "x", "answer": "x", "mode": "sideways"})
	assert.Contains(t, resp.Error, "unknown grading mode")
}

func TestHandleToolCall_BadParams(t *testing.T) {
	resp := call("parse_polynomial", map[string]interface{}{})
	assert.Equal(t, "missing param: text", resp.Error)

	resp = call("parse_polynomial", map[string]interface{}{"text": 12})
	assert.Contains(t, resp.Error, "invalid params")

	resp = call("parse_polynomial", map[string]interface{}{"text": "x", "extra": "y"})
	assert.Contains(t, resp.Error, "invalid params")

	resp = call("nope", nil)
	assert.Equal(t, "unknown tool: nope", resp.Error)
}

func TestToolSpec(t *testing.T) {
	var spec struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal([]byte(polygrade.ToolSpec()), &spec))

	names := make([]string, len(spec.Tools))
	for i, tool := range spec.Tools {
		names[i] = tool.Name
	}
	assert.ElementsMatch(t, polygrade.ToolNames(), names)

	resp := call("tool_spec", nil)
	assert.Equal(t, polygrade.ToolSpec(), resp.Result)
}

func TestToJSON(t *testing.T) {
	out, err := polygrade.ToJSON(polygrade.ParsePolynomial("x - 1"))
	require.NoError(t, err)
	assert.Contains(t, out, `"is_simplified": true`)
	assert.Contains(t, out, `"variable": "x"`)
}
