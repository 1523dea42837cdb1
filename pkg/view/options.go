package view

import "fmt"

// Option pairs a selector value with its label.
type Option[T ~string] struct {
	Value T
	Label string
}

var capabilityOptions = []Option[Capability]{
	{CapabilityAll, "All Models"},
	{CapabilityTools, "Tool/Function Usage"},
	{CapabilityVision, "Vision"},
	{CapabilityAudio, "Audio"},
	{CapabilityReasoning, "Reasoning"},
}

var sortOptions = []Option[Sort]{
	{SortNameAsc, "Name (A-Z)"},
	{SortNameDesc, "Name (Z-A)"},
	{SortCostAsc, "Cost (Low to High)"},
	{SortCostDesc, "Cost (High to Low)"},
}

// Capabilities returns the capability filters in selector order.
func Capabilities() []Option[Capability] {
	return append([]Option[Capability](nil), capabilityOptions...)
}

// Sorts returns the sort keys in selector order.
func Sorts() []Option[Sort] {
	return append([]Option[Sort](nil), sortOptions...)
}

// ParseCapability validates s against the known filters.
func ParseCapability(s string) (Capability, error) {
	for _, o := range capabilityOptions {
		if string(o.Value) == s {
			return o.Value, nil
		}
	}
	return "", fmt.Errorf("view: unknown capability %q", s)
}

// ParseSort validates s against the known sort keys.
func ParseSort(s string) (Sort, error) {
	for _, o := range sortOptions {
		if string(o.Value) == s {
			return o.Value, nil
		}
	}
	return "", fmt.Errorf("view: unknown sort %q", s)
}

// Label returns the selector label for c, or the raw value when unknown.
func (c Capability) Label() string {
	return label(capabilityOptions, c)
}

// Label returns the selector label for s, or the raw value when unknown.
func (s Sort) Label() string {
	return label(sortOptions, s)
}

// Next cycles to the following capability filter.
func (c Capability) Next() Capability {
	return next(capabilityOptions, c)
}

// Next cycles to the following sort key.
func (s Sort) Next() Sort {
	return next(sortOptions, s)
}

func label[T ~string](opts []Option[T], v T) string {
	for _, o := range opts {
		if o.Value == v {
			return o.Label
		}
	}
	return string(v)
}

func next[T ~string](opts []Option[T], v T) T {
	for i, o := range opts {
		if o.Value == v {
			return opts[(i+1)%len(opts)].Value
		}
	}
	return opts[0].Value
}
