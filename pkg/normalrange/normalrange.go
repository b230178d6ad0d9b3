// Package normalrange evaluates measured lab values against the normal-range
// specification strings used by the test catalog. Three grammars are
// recognized: "min-max" (inclusive both ends), "<max" (strict), and ">min"
// (strict). Anything else is unrecognized and never evaluates as normal.
package normalrange

import (
	"strconv"
	"strings"
)

// Kind identifies which grammar a range specification uses.
type Kind int

const (
	Unrecognized Kind = iota
	Between
	LessThan
	GreaterThan
)

// Spec is the parsed form of a normal-range specification string.
type Spec struct {
	Kind Kind
	Min  float64
	Max  float64
}

// Parse interprets a range specification string. Precedence mirrors the
// entry form behavior: a hyphen wins over a comparison symbol, so
// "0.1-1.2" is a two-sided range even though it contains digits with dots.
func Parse(raw string) Spec {
	raw = strings.TrimSpace(raw)
	switch {
	case strings.Contains(raw, "-"):
		parts := strings.SplitN(raw, "-", 2)
		min, errMin := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		max, errMax := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errMin != nil || errMax != nil {
			return Spec{Kind: Unrecognized}
		}
		return Spec{Kind: Between, Min: min, Max: max}
	case strings.Contains(raw, "<"):
		max, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(raw, "<", "")), 64)
		if err != nil {
			return Spec{Kind: Unrecognized}
		}
		return Spec{Kind: LessThan, Max: max}
	case strings.Contains(raw, ">"):
		min, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(raw, ">", "")), 64)
		if err != nil {
			return Spec{Kind: Unrecognized}
		}
		return Spec{Kind: GreaterThan, Min: min}
	default:
		return Spec{Kind: Unrecognized}
	}
}

// Contains reports whether the value falls inside the spec. Two-sided
// ranges are inclusive at both bounds; one-sided bounds are strict.
// Unrecognized specs never contain anything.
func (s Spec) Contains(value float64) bool {
	switch s.Kind {
	case Between:
		return value >= s.Min && value <= s.Max
	case LessThan:
		return value < s.Max
	case GreaterThan:
		return value > s.Min
	default:
		return false
	}
}

// Evaluate parses rawValue and reports whether it is within rangeSpec.
// A rawValue that does not parse as a number is never normal. Evaluate
// has no side effects and never panics.
func Evaluate(rawValue, rangeSpec string) bool {
	value, err := strconv.ParseFloat(strings.TrimSpace(rawValue), 64)
	if err != nil {
		return false
	}
	return Parse(rangeSpec).Contains(value)
}
