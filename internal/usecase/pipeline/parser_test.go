package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cleanupPayload struct {
	CleanedText string `json:"cleaned_text"`
	Summary     string `json:"summary"`
}

func TestParse_PlainJSON(t *testing.T) {
	p := NewParser()

	var out cleanupPayload
	err := p.Parse(`{"cleaned_text": "hello", "summary": "short"}`, &out)
	require.NoError(t, err)
	assert.Equal(t, "hello", out.CleanedText)
	assert.Equal(t, "short", out.Summary)
}

func TestParse_FencedAndUnfencedAgree(t *testing.T) {
	p := NewParser()
	payload := `{"cleaned_text": "agenda review", "summary": "we met"}`

	variants := []string{
		payload,
		"```json\n" + payload + "\n```",
		"```\n" + payload + "\n```",
		"Here is the result:\n```json\n" + payload + "\n```\nLet me know if you need changes.",
		"Sure! " + payload,
	}

	var first cleanupPayload
	require.NoError(t, p.Parse(variants[0], &first))

	for _, v := range variants[1:] {
		var out cleanupPayload
		require.NoError(t, p.Parse(v, &out), "variant: %q", v)
		assert.Equal(t, first, out, "variant: %q", v)
	}
}

func TestParse_UnterminatedFence(t *testing.T) {
	p := NewParser()

	var out cleanupPayload
	err := p.Parse("```json\n{\"cleaned_text\": \"x\", \"summary\": \"y\"}", &out)
	require.NoError(t, err)
	assert.Equal(t, "x", out.CleanedText)
}

func TestParse_NoBraces(t *testing.T) {
	p := NewParser()

	var out cleanupPayload
	err := p.Parse("I could not produce the requested format.", &out)
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "no JSON object found in response", parseErr.Reason)
}

func TestParse_InvalidJSON(t *testing.T) {
	p := NewParser()

	var out cleanupPayload
	err := p.Parse(`{"cleaned_text": "unterminated`, &out)
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "invalid JSON payload", parseErr.Reason)
	assert.Error(t, parseErr.Unwrap())
}

func TestParse_SurroundingProse(t *testing.T) {
	p := NewParser()

	raw := `The cleaned transcript is below.

{"cleaned_text": "discussion of rollout", "summary": "rollout planning"}

Hope this helps!`

	var out cleanupPayload
	require.NoError(t, p.Parse(raw, &out))
	assert.Equal(t, "discussion of rollout", out.CleanedText)
}

func TestExtractCandidate_FenceInterior(t *testing.T) {
	raw := "prefix ```json\n{\"a\":1}\n``` suffix"
	got := extractCandidate(raw)
	assert.Equal(t, "json\n{\"a\":1}\n", got)
}
