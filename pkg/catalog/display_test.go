package catalog_test

import (
	"testing"

	"github.com/germanamz/modelcards/pkg/catalog"
	"github.com/stretchr/testify/assert"
)

func TestDisplayNameAndID(t *testing.T) {
	assert.Equal(t, "Unnamed Model", catalog.Entry{}.DisplayName())
	assert.Equal(t, "N/A", catalog.Entry{}.DisplayID())
	assert.Equal(t, "m", catalog.Entry{Name: "m"}.DisplayName())
	assert.Equal(t, "7", catalog.Entry{ID: "7"}.DisplayID())
}

func TestDescription(t *testing.T) {
	assert.Equal(t, "LLM Model", catalog.Entry{}.Description())
	assert.Equal(t, "Provider: anthropic", catalog.Entry{Provider: "anthropic"}.Description())
}

func TestCapabilitySummary(t *testing.T) {
	assert.Equal(t, "Standard Chat", catalog.Entry{}.CapabilitySummary())
	assert.Equal(t, "Vision, Tool Choice, Prompt Caching",
		catalog.Entry{PromptCaching: true, Vision: true, ToolChoice: true}.CapabilitySummary())
}

func TestHasToolUsage(t *testing.T) {
	assert.False(t, catalog.Entry{}.HasToolUsage())
	assert.True(t, catalog.Entry{FunctionCalling: true}.HasToolUsage())
	assert.True(t, catalog.Entry{ToolChoice: true}.HasToolUsage())
}

func TestEffectiveCost(t *testing.T) {
	tests := []struct {
		name    string
		entry   catalog.Entry
		wantIn  float64
		wantOut float64
	}{
		{"info only", catalog.Entry{InputCost: 1, OutputCost: 2}, 1, 2},
		{"params fallback", catalog.Entry{ParamsInputCost: 3, ParamsOutputCost: 4}, 3, 4},
		{"info wins over params", catalog.Entry{InputCost: 1, ParamsInputCost: 3, ParamsOutputCost: 4}, 1, 4},
		{"neither", catalog.Entry{}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.wantIn, tt.entry.EffectiveInputCost(), 1e-12)
			assert.InDelta(t, tt.wantOut, tt.entry.EffectiveOutputCost(), 1e-12)
			assert.InDelta(t, tt.wantIn+tt.wantOut, tt.entry.TotalCost(), 1e-12)
		})
	}
}

func TestCostSummary(t *testing.T) {
	assert.Equal(t, "Free", catalog.Entry{}.CostSummary())
	assert.Equal(t, "Input: $3 / Output: $15",
		catalog.Entry{InputCost: 0.000003, OutputCost: 0.000015}.CostSummary())
	assert.Equal(t, "Input: $0.15 / Output: $0.6",
		catalog.Entry{ParamsInputCost: 0.00000015, ParamsOutputCost: 0.0000006}.CostSummary())
	assert.Equal(t, "Input: $0 / Output: $2.5",
		catalog.Entry{OutputCost: 0.0000025}.CostSummary())
}

func TestTokenLimits(t *testing.T) {
	tests := []struct {
		name  string
		entry catalog.Entry
		want  string
	}{
		{"both", catalog.Entry{MaxTokens: 4096, MaxInputTokens: 128000}, "128,000 in / 4,096 out"},
		{"output fallback", catalog.Entry{MaxOutputTokens: 8192, MaxInputTokens: 200000}, "200,000 in / 8,192 out"},
		{"output only", catalog.Entry{MaxTokens: 1000000}, "1,000,000"},
		{"input only", catalog.Entry{MaxInputTokens: 1000}, "N/A"},
		{"none", catalog.Entry{}, "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.TokenLimits())
		})
	}
}

func TestSummary(t *testing.T) {
	e := catalog.Entry{
		Name:           "claude",
		ID:             "c1",
		Provider:       "anthropic",
		Vision:         true,
		MaxTokens:      8192,
		MaxInputTokens: 200000,
		InputCost:      0.000003,
		OutputCost:     0.000015,
	}

	assert.Equal(t,
		"claude [c1] | Provider: anthropic | Vision | max tokens: 200,000 in / 8,192 out | cost per 10^6 tokens: Input: $3 / Output: $15",
		e.Summary())
	assert.Equal(t,
		"Unnamed Model [N/A] | LLM Model | Standard Chat | max tokens: N/A | cost per 10^6 tokens: Free",
		catalog.Entry{}.Summary())
}
