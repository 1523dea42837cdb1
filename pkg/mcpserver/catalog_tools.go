package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/germanamz/modelcards/pkg/catalog"
	"github.com/germanamz/modelcards/pkg/detail"
	"github.com/germanamz/modelcards/pkg/view"
)

const listModelsSchema = `{
  "type": "object",
  "properties": {
    "search": {"type": "string", "description": "Case-insensitive substring of the model name or key"},
    "capability": {"type": "string", "enum": ["all", "tools", "vision", "audio", "reasoning"]},
    "sort": {"type": "string", "enum": ["name-asc", "name-desc", "cost-asc", "cost-desc"]},
    "limit": {"type": "integer", "minimum": 0, "description": "Maximum number of models to return; 0 means all"}
  }
}`

const getModelSchema = `{
  "type": "object",
  "properties": {
    "id": {"type": "string", "description": "model_info.id of the model"}
  },
  "required": ["id"]
}`

type listModelsInput struct {
	Search     string `json:"search"`
	Capability string `json:"capability"`
	Sort       string `json:"sort"`
	Limit      int    `json:"limit"`
}

type getModelInput struct {
	ID string `json:"id"`
}

// CatalogTools exposes a fixed catalog snapshot as list_models and get_model.
// list_models starts from defaults; the search term is always taken from the
// call.
func CatalogTools(entries []catalog.Entry, b view.Builder, defaults view.Query) []Tool {
	return []Tool{
		{
			Name:        "list_models",
			Description: "Search, filter and sort the model catalog. Returns one line per model with capabilities, token limits and cost per 10^6 tokens.",
			InputSchema: json.RawMessage(listModelsSchema),
			Handler: func(_ context.Context, input json.RawMessage) (string, error) {
				return listModels(entries, b, defaults, input)
			},
		},
		{
			Name:        "get_model",
			Description: "Return the full raw catalog record of one model by id.",
			InputSchema: json.RawMessage(getModelSchema),
			Handler: func(_ context.Context, input json.RawMessage) (string, error) {
				return getModel(entries, input)
			},
		},
	}
}

func listModels(entries []catalog.Entry, b view.Builder, defaults view.Query, input json.RawMessage) (string, error) {
	var in listModelsInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", fmt.Errorf("list_models: invalid input: %w", err)
	}

	q := defaults
	q.Search = in.Search

	if in.Capability != "" {
		c, err := view.ParseCapability(in.Capability)
		if err != nil {
			return "", fmt.Errorf("list_models: %w", err)
		}
		q.Capability = c
	}

	if in.Sort != "" {
		s, err := view.ParseSort(in.Sort)
		if err != nil {
			return "", fmt.Errorf("list_models: %w", err)
		}
		q.Sort = s
	}

	visible := b.Build(entries, q)
	if in.Limit > 0 && in.Limit < len(visible) {
		visible = visible[:in.Limit]
	}

	if len(visible) == 0 {
		return "No models found matching your criteria", nil
	}

	var sb strings.Builder
	for _, e := range visible {
		sb.WriteString(e.Summary())
		sb.WriteByte('\n')
	}

	return strings.TrimRight(sb.String(), "\n"), nil
}

func getModel(entries []catalog.Entry, input json.RawMessage) (string, error) {
	var in getModelInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", fmt.Errorf("get_model: invalid input: %w", err)
	}
	if in.ID == "" {
		return "", fmt.Errorf("get_model: id is required")
	}

	for i := range entries {
		if entries[i].ID == in.ID {
			return detail.Present(&entries[i]).Body, nil
		}
	}

	return "", fmt.Errorf("get_model: no model with id %q", in.ID)
}
