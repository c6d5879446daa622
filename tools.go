package polygrade

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mitchellh/mapstructure"
)

// ============================================================
// Tool interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

type textParams struct {
	Text string `mapstructure:"text"`
}

type pairParams struct {
	A string `mapstructure:"a"`
	B string `mapstructure:"b"`
}

type gradeParams struct {
	Expected string `mapstructure:"expected"`
	Answer   string `mapstructure:"answer"`
	Mode     string `mapstructure:"mode"`
}

type toolHandler func(params map[string]interface{}) (ToolResponse, error)

var toolHandlers map[string]toolHandler

func init() {
	toolHandlers = map[string]toolHandler{
		"parse_polynomial": toolParsePolynomial,
		"polynomials_equal": func(params map[string]interface{}) (ToolResponse, error) {
			var p pairParams
			if err := decodeParams(params, &p, "a", "b"); err != nil {
				return ToolResponse{}, err
			}
			return ToolResponse{Result: PolynomialsEqual(ParsePolynomial(p.A), ParsePolynomial(p.B))}, nil
		},
		"parse_factored": toolParseFactored,
		"factored_equal": func(params map[string]interface{}) (ToolResponse, error) {
			var p pairParams
			if err := decodeParams(params, &p, "a", "b"); err != nil {
				return ToolResponse{}, err
			}
			a, err := ParseFactored(p.A)
			if err != nil {
				return ToolResponse{}, fmt.Errorf("a: %w", err)
			}
			b, err := ParseFactored(p.B)
			if err != nil {
				return ToolResponse{}, fmt.Errorf("b: %w", err)
			}
			return ToolResponse{Result: FactoredEqual(a, b)}, nil
		},
		"signature": func(params map[string]interface{}) (ToolResponse, error) {
			var p textParams
			if err := decodeParams(params, &p, "text"); err != nil {
				return ToolResponse{}, err
			}
			sig := Signature(ParsePolynomial(p.Text))
			return ToolResponse{Result: sig, String: sig}, nil
		},
		"expand":    toolExpand,
		"grade":     toolGrade,
		"tool_spec": func(map[string]interface{}) (ToolResponse, error) { return ToolResponse{Result: ToolSpec()}, nil },
	}
}

// HandleToolCall runs one tool. Failures come back in ToolResponse.Error.
func HandleToolCall(req ToolRequest) ToolResponse {
	h, ok := toolHandlers[req.Tool]
	if !ok {
		return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
	}
	resp, err := h(req.Params)
	if err != nil {
		return ToolResponse{Error: err.Error()}
	}
	return resp
}

// ToolNames lists the registered tools in sorted order.
func ToolNames() []string {
	names := make([]string, 0, len(toolHandlers))
	for name := range toolHandlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// decodeParams requires every key in required and decodes params into out.
func decodeParams(params map[string]interface{}, out interface{}, required ...string) error {
	for _, key := range required {
		if _, ok := params[key]; !ok {
			return fmt.Errorf("missing param: %s", key)
		}
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(params); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}
	return nil
}

func toolParsePolynomial(params map[string]interface{}) (ToolResponse, error) {
	var p textParams
	if err := decodeParams(params, &p, "text"); err != nil {
		return ToolResponse{}, err
	}
	poly := ParsePolynomial(p.Text)
	return ToolResponse{Result: poly, LaTeX: poly.LaTeX(), String: poly.String()}, nil
}

func toolParseFactored(params map[string]interface{}) (ToolResponse, error) {
	var p textParams
	if err := decodeParams(params, &p, "text"); err != nil {
		return ToolResponse{}, err
	}
	f, err := ParseFactored(p.Text)
	if err != nil {
		return ToolResponse{}, err
	}
	return ToolResponse{Result: f, LaTeX: f.LaTeX(), String: f.String()}, nil
}

func toolExpand(params map[string]interface{}) (ToolResponse, error) {
	var p textParams
	if err := decodeParams(params, &p, "text"); err != nil {
		return ToolResponse{}, err
	}
	f, err := ParseFactored(p.Text)
	if err != nil {
		return ToolResponse{}, err
	}
	poly, ok := Expand(f)
	if !ok {
		return ToolResponse{}, fmt.Errorf("cannot expand %s", f.String())
	}
	return ToolResponse{Result: poly, LaTeX: poly.LaTeX(), String: poly.String()}, nil
}

func toolGrade(params map[string]interface{}) (ToolResponse, error) {
	var p gradeParams
	if err := decodeParams(params, &p, "expected", "answer"); err != nil {
		return ToolResponse{}, err
	}
	mode, err := ParseMode(p.Mode)
	if err != nil {
		return ToolResponse{}, err
	}
	res, err := Grade(p.Expected, p.Answer, mode)
	if err != nil {
		return ToolResponse{}, err
	}
	return ToolResponse{Result: res, String: string(res.Verdict)}, nil
}

// ============================================================
// JSON and tool spec
// ============================================================

// ToJSON renders any polygrade value as indented JSON.
func ToJSON(v interface{}) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	return string(b), err
}

func ToolSpec() string {
	tools := []map[string]interface{}{
		ts("parse_polynomial", "Parse a single-variable polynomial and combine like terms", []string{"text"}, map[string]string{"text": "string"}),
		ts("polynomials_equal", "Compare two polynomials term by term after combining", []string{"a", "b"}, map[string]string{"a": "string", "b": "string"}),
		ts("parse_factored", "Split a factored expression into (base, power) factors", []string{"text"}, map[string]string{"text": "string"}),
		ts("factored_equal", "Compare two factored expressions as multisets of factors", []string{"a", "b"}, map[string]string{"a": "string", "b": "string"}),
		ts("signature", "Canonical signature of a polynomial", []string{"text"}, map[string]string{"text": "string"}),
		ts("expand", "Multiply a factored expression out", []string{"text"}, map[string]string{"text": "string"}),
		ts("grade", "Grade an answer. mode is simplified (default) or factored", []string{"expected", "answer"}, map[string]string{"expected": "string", "answer": "string", "mode": "string"}),
		ts("tool_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
