// Package detail presents the full raw structure of a selected catalog entry.
package detail

import (
	"bytes"
	"encoding/json"

	"github.com/germanamz/modelcards/pkg/catalog"
)

const defaultTitle = "Model Details"

// Detail is what a front end shows in its detail overlay.
type Detail struct {
	Open  bool
	Title string
	Body  string // the entry's source JSON, indented two spaces
}

// Present builds the detail for e. A nil entry yields a closed Detail.
func Present(e *catalog.Entry) Detail {
	if e == nil {
		return Detail{}
	}

	title := e.Name
	if title == "" {
		title = defaultTitle
	}

	return Detail{Open: true, Title: title, Body: Indent(e.Raw)}
}

// Indent pretty-prints raw without reordering or transforming any field.
// Input that is not valid JSON is returned unchanged.
func Indent(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "null"
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}

	return buf.String()
}
