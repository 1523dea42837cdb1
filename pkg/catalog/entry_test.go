package catalog_test

import (
	"encoding/json"
	"testing"

	"github.com/germanamz/modelcards/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raws(t *testing.T, elems ...string) []json.RawMessage {
	t.Helper()

	out := make([]json.RawMessage, len(elems))
	for i, e := range elems {
		require.True(t, json.Valid([]byte(e)), "invalid fixture %q", e)
		out[i] = json.RawMessage(e)
	}

	return out
}

func TestNormalize_AllFields(t *testing.T) {
	raw := json.RawMessage(`{
		"model_name": "gpt-4o",
		"model_info": {
			"id": "abc",
			"key": "openai/gpt-4o",
			"litellm_provider": "openai",
			"supports_vision": true,
			"supports_function_calling": true,
			"supports_tool_choice": true,
			"supports_audio_input": true,
			"supports_audio_output": true,
			"supports_reasoning": true,
			"supports_web_search": true,
			"supports_computer_use": true,
			"supports_pdf_input": true,
			"supports_prompt_caching": true,
			"max_tokens": 16384,
			"max_output_tokens": 8192,
			"max_input_tokens": 128000,
			"input_cost_per_token": 0.0000025,
			"output_cost_per_token": 0.00001
		},
		"litellm_params": {"input_cost_per_token": 0.1, "output_cost_per_token": 0.2}
	}`)

	e := catalog.Normalize(raw)

	assert.Equal(t, "gpt-4o", e.Name)
	assert.Equal(t, "abc", e.ID)
	assert.Equal(t, "openai/gpt-4o", e.Key)
	assert.Equal(t, "openai", e.Provider)
	assert.True(t, e.Vision)
	assert.True(t, e.FunctionCalling)
	assert.True(t, e.ToolChoice)
	assert.True(t, e.AudioInput)
	assert.True(t, e.AudioOutput)
	assert.True(t, e.Reasoning)
	assert.True(t, e.WebSearch)
	assert.True(t, e.ComputerUse)
	assert.True(t, e.PDFInput)
	assert.True(t, e.PromptCaching)
	assert.Equal(t, int64(16384), e.MaxTokens)
	assert.Equal(t, int64(8192), e.MaxOutputTokens)
	assert.Equal(t, int64(128000), e.MaxInputTokens)
	assert.InDelta(t, 0.0000025, e.InputCost, 1e-15)
	assert.InDelta(t, 0.00001, e.OutputCost, 1e-15)
	assert.InDelta(t, 0.1, e.ParamsInputCost, 1e-15)
	assert.InDelta(t, 0.2, e.ParamsOutputCost, 1e-15)
	assert.JSONEq(t, string(raw), string(e.Raw))
}

func TestNormalize_Defaults(t *testing.T) {
	e := catalog.Normalize(json.RawMessage(`{}`))

	assert.Empty(t, e.Name)
	assert.Empty(t, e.ID)
	assert.False(t, e.Vision)
	assert.Zero(t, e.MaxTokens)
	assert.Zero(t, e.InputCost)
	assert.Zero(t, e.ParamsOutputCost)
}

func TestNormalize_WrongTypesFallBackToDefaults(t *testing.T) {
	e := catalog.Normalize(json.RawMessage(`{
		"model_name": 42,
		"model_info": {
			"id": "x",
			"supports_vision": "true",
			"supports_reasoning": 1,
			"max_tokens": "4096",
			"input_cost_per_token": "0.1"
		}
	}`))

	assert.Empty(t, e.Name)
	assert.False(t, e.Vision)
	assert.False(t, e.Reasoning)
	assert.Zero(t, e.MaxTokens)
	assert.Zero(t, e.InputCost)
}

func TestNormalize_NumericID(t *testing.T) {
	e := catalog.Normalize(json.RawMessage(`{"model_info":{"id":7}}`))
	assert.Equal(t, "7", e.ID)
	assert.True(t, e.NumericID)

	assert.Equal(t, "7", catalog.Normalize(json.RawMessage(`{"model_info":{"id":7.0}}`)).ID)
	assert.Empty(t, catalog.Normalize(json.RawMessage(`{"model_info":{"id":0}}`)).ID)
	assert.False(t, catalog.Normalize(json.RawMessage(`{"model_info":{"id":"7"}}`)).NumericID)
}

func TestIngest_NumericAndStringIDsAreDistinct(t *testing.T) {
	got := catalog.Ingest(raws(t,
		`{"model_name":"A","model_info":{"id":1}}`,
		`{"model_name":"B","model_info":{"id":"1"}}`,
		`{"model_name":"C","model_info":{"id":1.0}}`,
		`{"model_name":"D","model_info":{"id":"1"}}`,
	))

	assert.Equal(t, []string{"A", "B"}, names(got))
}

func TestNormalize_NonObject(t *testing.T) {
	e := catalog.Normalize(json.RawMessage(`"just a string"`))

	assert.Empty(t, e.ID)
	assert.Equal(t, `"just a string"`, string(e.Raw))
}

func TestNormalize_RawIsCopied(t *testing.T) {
	buf := []byte(`{"model_info":{"id":"a"}}`)
	e := catalog.Normalize(buf)
	buf[0] = 'X'

	assert.Equal(t, byte('{'), e.Raw[0])
}

func TestDedupe_FirstOccurrenceWins(t *testing.T) {
	entries := []catalog.Entry{
		{ID: "1", Name: "A"},
		{ID: "2", Name: "B"},
		{ID: "1", Name: "C"},
		{ID: "3", Name: "D"},
		{ID: "2", Name: "E"},
	}

	got := catalog.Dedupe(entries)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"A", "B", "D"}, names(got))
	assert.Len(t, entries, 5, "input must not be modified")
}

func TestDedupe_DropsMissingIDs(t *testing.T) {
	got := catalog.Dedupe([]catalog.Entry{
		{Name: "no id"},
		{ID: "1", Name: "A"},
		{Name: "also no id"},
	})

	assert.Equal(t, []string{"A"}, names(got))
}

func TestDedupe_EachIDExactlyOnce(t *testing.T) {
	var entries []catalog.Entry
	for i := range 50 {
		entries = append(entries, catalog.Entry{ID: string(rune('a' + i%7)), Name: string(rune('A' + i))})
	}

	got := catalog.Dedupe(entries)

	counts := make(map[string]int)
	for _, e := range got {
		counts[e.ID]++
	}
	assert.Len(t, counts, 7)
	for id, n := range counts {
		assert.Equal(t, 1, n, "id %s", id)
	}
	// The retained entry for id "a" is index 0, for "b" index 1, and so on.
	for i, e := range got {
		assert.Equal(t, string(rune('A'+i)), e.Name)
	}
}

func TestDedupe_Empty(t *testing.T) {
	assert.Empty(t, catalog.Dedupe(nil))
}

func TestIngest(t *testing.T) {
	got := catalog.Ingest(raws(t,
		`{"model_name":"A","model_info":{"id":"1","supports_vision":true}}`,
		`{"model_name":"B","model_info":{"id":"1"}}`,
		`{"model_name":"C"}`,
	))

	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Name)
	assert.True(t, got[0].Vision)
}

func names(entries []catalog.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}
