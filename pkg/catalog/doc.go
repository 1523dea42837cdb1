// Package catalog turns the gateway's loosely typed model descriptors into a
// normalized [Entry] schema.
//
// Normalization runs once at ingestion ([Normalize], [Ingest]); every display
// field a front end needs ([Entry.CapabilitySummary], [Entry.CostSummary],
// [Entry.TokenLimits], ...) is derived from the normalized fields, never from
// the raw JSON. The raw element is kept verbatim on [Entry.Raw] for the detail
// view.
package catalog
