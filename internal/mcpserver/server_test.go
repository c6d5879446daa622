package mcpserver

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/polygrade"
	"github.com/njchilds90/polygrade/internal/grader"
	"github.com/njchilds90/polygrade/internal/logging"
)

func newTestServer() *Server {
	return NewServer(grader.New(), logging.NewNop(), "test")
}

func TestHandleParsePolynomial(t *testing.T) {
	s := newTestServer()
	p, err := s.handleParsePolynomial(context.Background(), mcp.CallToolRequest{}, TextArgs{Text: "2x - 2x"})
	require.NoError(t, err)
	assert.Empty(t, p.Terms)
	assert.False(t, p.IsSimplified)
}

func TestHandleParseFactored(t *testing.T) {
	s := newTestServer()
	resp, err := s.handleParseFactored(context.Background(), mcp.CallToolRequest{}, TextArgs{Text: "(x+1)(x+1)(x-2)"})
	require.NoError(t, err)
	assert.Len(t, resp.Factored.Factors, 3)
	assert.Equal(t, map[string]int{"1x^1+1x^0": 2, "1x^1+-2x^0": 1}, resp.FactorMap)

	_, err = s.handleParseFactored(context.Background(), mcp.CallToolRequest{}, TextArgs{Text: "(x+1))"})
	assert.ErrorIs(t, err, polygrade.ErrUnbalanced)
}

func TestHandleCheck(t *testing.T) {
	s := newTestServer()
	res, err := s.handleCheck(context.Background(), mcp.CallToolRequest{}, CheckArgs{
		Expected: "(x+1)^2",
		Answer:   "(x+1)(x+1)",
		Mode:     "factored",
	})
	require.NoError(t, err)
	assert.Equal(t, polygrade.Correct, res.Verdict)

	_, err = s.handleCheck(context.Background(), mcp.CallToolRequest{}, CheckArgs{Expected: "x", Answer: "x", Mode: "upside-down"})
	assert.ErrorIs(t, err, polygrade.ErrUnknownMode)
}

func TestStructuredHandler_BindsArguments(t *testing.T) {
	s := newTestServer()
	handler := mcp.NewStructuredToolHandler(s.handleCheck)

	req := mcp.CallToolRequest{}
	req.Params.Name = "check_answer"
	req.Params.Arguments = map[string]interface{}{
		"expected": "x^2-1",
		"answer":   "x^2-1",
	}
	result, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)

	req.Params.Arguments = map[string]interface{}{"expected": "x", "answer": "x", "mode": "nope"}
	result, err = handler(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
