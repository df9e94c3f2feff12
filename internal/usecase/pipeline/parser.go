package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseError indicates the model's free-form text could not be coerced
// into the expected JSON shape.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse llm response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("parse llm response: %s", e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parser extracts a JSON object from a model's free-form text response.
// Models routinely wrap the payload in conversational text or partial
// markdown fencing, so the parser locates the outermost braces rather
// than assuming a clean document.
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes the JSON object embedded in raw into out.
// All failure modes return a *ParseError.
func (p *Parser) Parse(raw string, out any) error {
	candidate := extractCandidate(raw)

	start := strings.Index(candidate, "{")
	end := strings.LastIndex(candidate, "}")
	if start < 0 || end < 0 || end < start {
		return &ParseError{Reason: "no JSON object found in response"}
	}

	if err := json.Unmarshal([]byte(candidate[start:end+1]), out); err != nil {
		return &ParseError{Reason: "invalid JSON payload", Err: err}
	}
	return nil
}

// extractCandidate narrows raw down to the fenced code block interior when
// one is present. An unterminated opening fence yields everything after it.
func extractCandidate(raw string) string {
	open := strings.Index(raw, "```")
	if open < 0 {
		return raw
	}

	rest := raw[open+3:]
	if closing := strings.Index(rest, "```"); closing >= 0 {
		return rest[:closing]
	}
	return rest
}
