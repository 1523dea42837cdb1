package catalog

import (
	"encoding/json"
	"strconv"

	"github.com/tidwall/gjson"
)

// Entry is one normalized model descriptor. Absent or wrongly typed source
// fields take their zero value: flags false, limits and costs 0, strings "".
type Entry struct {
	Name     string // model_name
	Key      string // model_info.key, the secondary search field
	ID       string // model_info.id
	Provider string // model_info.litellm_provider

	// NumericID is set when model_info.id was a JSON number. The numbers 1
	// and the string "1" are different identifiers.
	NumericID bool

	Vision          bool
	FunctionCalling bool
	ToolChoice      bool
	AudioInput      bool
	AudioOutput     bool
	Reasoning       bool
	WebSearch       bool
	ComputerUse     bool
	PDFInput        bool
	PromptCaching   bool

	MaxTokens       int64
	MaxOutputTokens int64
	MaxInputTokens  int64

	InputCost        float64 // model_info.input_cost_per_token
	OutputCost       float64 // model_info.output_cost_per_token
	ParamsInputCost  float64 // litellm_params.input_cost_per_token
	ParamsOutputCost float64 // litellm_params.output_cost_per_token

	Raw json.RawMessage // verbatim source element
}

// Normalize converts one raw catalog element into an Entry. It never fails:
// elements that are not JSON objects produce an Entry with only Raw set.
func Normalize(raw json.RawMessage) Entry {
	doc := gjson.ParseBytes(raw)
	info := doc.Get("model_info")
	params := doc.Get("litellm_params")
	entryID, numeric := id(info.Get("id"))

	return Entry{
		Name:      str(doc.Get("model_name")),
		Key:       str(info.Get("key")),
		ID:        entryID,
		NumericID: numeric,
		Provider:  str(info.Get("litellm_provider")),

		Vision:          flag(info.Get("supports_vision")),
		FunctionCalling: flag(info.Get("supports_function_calling")),
		ToolChoice:      flag(info.Get("supports_tool_choice")),
		AudioInput:      flag(info.Get("supports_audio_input")),
		AudioOutput:     flag(info.Get("supports_audio_output")),
		Reasoning:       flag(info.Get("supports_reasoning")),
		WebSearch:       flag(info.Get("supports_web_search")),
		ComputerUse:     flag(info.Get("supports_computer_use")),
		PDFInput:        flag(info.Get("supports_pdf_input")),
		PromptCaching:   flag(info.Get("supports_prompt_caching")),

		MaxTokens:       integer(info.Get("max_tokens")),
		MaxOutputTokens: integer(info.Get("max_output_tokens")),
		MaxInputTokens:  integer(info.Get("max_input_tokens")),

		InputCost:        number(info.Get("input_cost_per_token")),
		OutputCost:       number(info.Get("output_cost_per_token")),
		ParamsInputCost:  number(params.Get("input_cost_per_token")),
		ParamsOutputCost: number(params.Get("output_cost_per_token")),

		Raw: append(json.RawMessage(nil), raw...),
	}
}

// Ingest normalizes every raw element and removes duplicate identifiers.
func Ingest(raws []json.RawMessage) []Entry {
	entries := make([]Entry, 0, len(raws))
	for _, raw := range raws {
		entries = append(entries, Normalize(raw))
	}

	return Dedupe(entries)
}

type dedupeKey struct {
	id      string
	numeric bool
}

// Dedupe keeps the first entry seen for each identifier and drops entries
// without one. Input order is preserved and the input slice is not modified.
func Dedupe(entries []Entry) []Entry {
	seen := make(map[dedupeKey]struct{}, len(entries))
	out := make([]Entry, 0, len(entries))

	for _, e := range entries {
		if e.ID == "" {
			continue
		}
		k := dedupeKey{id: e.ID, numeric: e.NumericID}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, e)
	}

	return out
}

func str(r gjson.Result) string {
	if r.Type != gjson.String {
		return ""
	}
	return r.Str
}

// id accepts string and numeric identifiers; zero and "" count as missing.
// Numbers are keyed by value, so 1 and 1.0 are the same identifier.
func id(r gjson.Result) (string, bool) {
	switch r.Type {
	case gjson.String:
		return r.Str, false
	case gjson.Number:
		if r.Num == 0 {
			return "", false
		}
		return strconv.FormatFloat(r.Num, 'f', -1, 64), true
	default:
		return "", false
	}
}

// flag reports true only for a JSON true literal.
func flag(r gjson.Result) bool {
	return r.Type == gjson.True
}

func number(r gjson.Result) float64 {
	if r.Type != gjson.Number {
		return 0
	}
	return r.Num
}

func integer(r gjson.Result) int64 {
	if r.Type != gjson.Number {
		return 0
	}
	return r.Int()
}
