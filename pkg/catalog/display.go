package catalog

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Placeholder texts used when a display field has no source value.
const (
	UnnamedModel = "Unnamed Model"
	NotAvailable = "N/A"
	StandardChat = "Standard Chat"
	GenericModel = "LLM Model"
	FreeCost     = "Free"
)

const tokensPerMillion = 1_000_000

// DisplayName returns the model name or a placeholder.
func (e Entry) DisplayName() string {
	if e.Name == "" {
		return UnnamedModel
	}
	return e.Name
}

// DisplayID returns the identifier or "N/A".
func (e Entry) DisplayID() string {
	if e.ID == "" {
		return NotAvailable
	}
	return e.ID
}

// Description names the serving provider when known.
func (e Entry) Description() string {
	if e.Provider != "" {
		return "Provider: " + e.Provider
	}
	return GenericModel
}

// HasToolUsage reports whether the model supports function calling or tool
// choice.
func (e Entry) HasToolUsage() bool {
	return e.FunctionCalling || e.ToolChoice
}

// HasAudio reports whether the model accepts or produces audio.
func (e Entry) HasAudio() bool {
	return e.AudioInput || e.AudioOutput
}

// Capabilities lists the supported features in a fixed display order.
func (e Entry) Capabilities() []string {
	flags := []struct {
		on    bool
		label string
	}{
		{e.Vision, "Vision"},
		{e.FunctionCalling, "Function Calling"},
		{e.ToolChoice, "Tool Choice"},
		{e.AudioInput, "Audio Input"},
		{e.AudioOutput, "Audio Output"},
		{e.Reasoning, "Reasoning"},
		{e.WebSearch, "Web Search"},
		{e.ComputerUse, "Computer Use"},
		{e.PDFInput, "PDF Input"},
		{e.PromptCaching, "Prompt Caching"},
	}

	var caps []string
	for _, f := range flags {
		if f.on {
			caps = append(caps, f.label)
		}
	}

	return caps
}

// CapabilitySummary joins Capabilities, or returns "Standard Chat" when the
// model declares none.
func (e Entry) CapabilitySummary() string {
	caps := e.Capabilities()
	if len(caps) == 0 {
		return StandardChat
	}
	return strings.Join(caps, ", ")
}

// EffectiveInputCost is the per-token input price: the model_info value,
// then the litellm_params value, then 0. A zero value counts as absent.
func (e Entry) EffectiveInputCost() float64 {
	return firstNonZero(e.InputCost, e.ParamsInputCost)
}

// EffectiveOutputCost is the per-token output price, resolved like
// EffectiveInputCost.
func (e Entry) EffectiveOutputCost() float64 {
	return firstNonZero(e.OutputCost, e.ParamsOutputCost)
}

// TotalCost sums the effective input and output per-token prices. It is the
// key used by cost sorting.
func (e Entry) TotalCost() float64 {
	return e.EffectiveInputCost() + e.EffectiveOutputCost()
}

// CostSummary formats prices per million tokens, or "Free" when both are 0.
func (e Entry) CostSummary() string {
	in, out := e.EffectiveInputCost(), e.EffectiveOutputCost()
	if in == 0 && out == 0 {
		return FreeCost
	}

	return fmt.Sprintf("Input: $%s / Output: $%s", perMillion(in), perMillion(out))
}

// OutputLimit is max_tokens, falling back to max_output_tokens.
func (e Entry) OutputLimit() int64 {
	if e.MaxTokens != 0 {
		return e.MaxTokens
	}
	return e.MaxOutputTokens
}

// TokenLimits renders the context limits, e.g. "128,000 in / 4,096 out".
func (e Entry) TokenLimits() string {
	out := e.OutputLimit()

	switch {
	case out != 0 && e.MaxInputTokens != 0:
		return humanize.Comma(e.MaxInputTokens) + " in / " + humanize.Comma(out) + " out"
	case out != 0:
		return humanize.Comma(out)
	default:
		return NotAvailable
	}
}

// perMillion scales before rounding so sub-micro prices keep their digits.
func perMillion(perToken float64) string {
	return humanize.FtoaWithDigits(perToken*tokensPerMillion, 4)
}

func firstNonZero(vals ...float64) float64 {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}

// Summary renders the card fields on a single plain-text line.
func (e Entry) Summary() string {
	return fmt.Sprintf("%s [%s] | %s | %s | max tokens: %s | cost per 10^6 tokens: %s",
		e.DisplayName(), e.DisplayID(), e.Description(), e.CapabilitySummary(), e.TokenLimits(), e.CostSummary())
}
