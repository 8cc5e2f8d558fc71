// ABOUTME: Result set decoding, legacy shape migration, and metric merging
// ABOUTME: Converts the old roas/cpa/revenue/conversion shape to metric1..metric4
package models

import "encoding/json"

// legacyMetric mirrors the old fixed-name result shape.
type legacyMetric struct {
	Name        string  `json:"name"`
	Before      float64 `json:"before"`
	After       float64 `json:"after"`
	Improvement float64 `json:"improvement"`
}

type legacyResultSet struct {
	ROAS       legacyMetric `json:"roas"`
	CPA        legacyMetric `json:"cpa"`
	Revenue    legacyMetric `json:"revenue"`
	Conversion legacyMetric `json:"conversion"`
}

// TemplateResultSet returns the default four-slot result set used when a
// record carries no results at all.
func TemplateResultSet() ResultSet {
	return ResultSet{
		Metric1: ResultMetric{Name: "ROAS", Format: FormatNumber},
		Metric2: ResultMetric{Name: "CPA", Format: FormatCurrency},
		Metric3: ResultMetric{Name: "Revenue", Format: FormatCurrency},
		Metric4: ResultMetric{Name: "Conversion Rate", Format: FormatPercentage},
	}
}

// DecodeResults decodes a raw results document, migrating the legacy
// roas/cpa/revenue/conversion shape to the canonical metric1..metric4 shape.
// The migration is idempotent: the detector matches only the legacy key
// names, which no longer exist once converted. A document carrying both
// shapes is treated as canonical; detection is by key presence only.
func DecodeResults(raw []byte) ResultSet {
	if len(raw) == 0 {
		return TemplateResultSet()
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return TemplateResultSet()
	}

	if hasAnyKey(probe, "metric1", "metric2", "metric3", "metric4") {
		var rs ResultSet
		if err := json.Unmarshal(raw, &rs); err != nil {
			return TemplateResultSet()
		}
		return rs
	}

	if hasAllKeys(probe, "roas", "cpa", "revenue", "conversion") {
		var legacy legacyResultSet
		if err := json.Unmarshal(raw, &legacy); err != nil {
			return TemplateResultSet()
		}
		return migrateLegacyResults(legacy)
	}

	return TemplateResultSet()
}

// migrateLegacyResults maps the four fixed legacy metrics onto the generic
// slots, assigning each slot its canonical display format.
func migrateLegacyResults(legacy legacyResultSet) ResultSet {
	return ResultSet{
		Metric1: legacyToMetric(legacy.ROAS, "ROAS", FormatNumber),
		Metric2: legacyToMetric(legacy.CPA, "CPA", FormatCurrency),
		Metric3: legacyToMetric(legacy.Revenue, "Revenue", FormatCurrency),
		Metric4: legacyToMetric(legacy.Conversion, "Conversion Rate", FormatPercentage),
	}
}

func legacyToMetric(m legacyMetric, fallbackName, format string) ResultMetric {
	name := m.Name
	if name == "" {
		name = fallbackName
	}
	return ResultMetric{
		Name:        name,
		Before:      m.Before,
		After:       m.After,
		Improvement: m.Improvement,
		Format:      format,
	}
}

func hasAnyKey(m map[string]json.RawMessage, keys ...string) bool {
	for _, k := range keys {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}

func hasAllKeys(m map[string]json.RawMessage, keys ...string) bool {
	for _, k := range keys {
		if _, ok := m[k]; !ok {
			return false
		}
	}
	return true
}

// MetricPatch is a partial update to a single metric slot. Nil fields keep
// the existing values.
type MetricPatch struct {
	Name        *string  `json:"name,omitempty"`
	Before      *float64 `json:"before,omitempty"`
	After       *float64 `json:"after,omitempty"`
	Improvement *float64 `json:"improvement,omitempty"`
	Format      *string  `json:"format,omitempty"`
}

// ResultSetPatch is a partial update to a result set. Nil slots keep the
// existing metric untouched.
type ResultSetPatch struct {
	Metric1 *MetricPatch `json:"metric1,omitempty"`
	Metric2 *MetricPatch `json:"metric2,omitempty"`
	Metric3 *MetricPatch `json:"metric3,omitempty"`
	Metric4 *MetricPatch `json:"metric4,omitempty"`
}

// MergeResults deep-merges a patch into a result set per metric slot, so
// that updating one field of one slot never clobbers its siblings.
func MergeResults(base ResultSet, patch ResultSetPatch) ResultSet {
	base.Metric1 = mergeMetric(base.Metric1, patch.Metric1)
	base.Metric2 = mergeMetric(base.Metric2, patch.Metric2)
	base.Metric3 = mergeMetric(base.Metric3, patch.Metric3)
	base.Metric4 = mergeMetric(base.Metric4, patch.Metric4)
	return base
}

func mergeMetric(base ResultMetric, patch *MetricPatch) ResultMetric {
	if patch == nil {
		return base
	}
	if patch.Name != nil {
		base.Name = *patch.Name
	}
	if patch.Before != nil {
		base.Before = *patch.Before
	}
	if patch.After != nil {
		base.After = *patch.After
	}
	if patch.Improvement != nil {
		base.Improvement = *patch.Improvement
	}
	if patch.Format != nil {
		base.Format = *patch.Format
	}
	return base
}
