package models

import "time"

// Observation is a single dated reading of an indicator series.
type Observation struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Series is a time-ordered sequence of observations with unique dates.
// It is owned by the collector and passed by reference into the scoring core.
type Series []Observation

// Last returns the most recent observation, or false when empty.
func (s Series) Last() (Observation, bool) {
	if len(s) == 0 {
		return Observation{}, false
	}
	return s[len(s)-1], true
}

// IsChronological reports whether dates are strictly ascending.
func (s Series) IsChronological() bool {
	for i := 1; i < len(s); i++ {
		if !s[i-1].Date.Before(s[i].Date) {
			return false
		}
	}
	return true
}

// LatestAtOrBefore returns the most recent observation dated at or before t.
// When another observation shares t's calendar month, the latest observation
// within that month wins over a strictly earlier cross-month one; this keeps
// monthly releases reported mid-month attached to their month.
func (s Series) LatestAtOrBefore(t time.Time) (Observation, bool) {
	idx := -1
	sameMonth := -1
	for i := range s {
		if s[i].Date.After(t) {
			break
		}
		idx = i
		if s[i].Date.Year() == t.Year() && s[i].Date.Month() == t.Month() {
			sameMonth = i
		}
	}
	if sameMonth >= 0 {
		return s[sameMonth], true
	}
	if idx >= 0 {
		return s[idx], true
	}
	return Observation{}, false
}

// AsOf returns the most recent observation dated at or before t, with no
// calendar-month preference. Trailing-12-month lookups use this directly.
func (s Series) AsOf(t time.Time) (Observation, bool) {
	idx := -1
	for i := range s {
		if s[i].Date.After(t) {
			break
		}
		idx = i
	}
	if idx < 0 {
		return Observation{}, false
	}
	return s[idx], true
}

// Snapshot is one indicator's state at evaluation time. Optional fields are
// nil when the collector could not derive them.
type Snapshot struct {
	ID          string   `json:"id"`
	Description string   `json:"description,omitempty"`
	LatestValue *float64 `json:"latest_value"`
	LatestDate  string   `json:"latest_date,omitempty"`
	PrevValue   *float64 `json:"prev_value,omitempty"`
	ChangePct   *float64 `json:"change_pct,omitempty"`
	YoY         *float64 `json:"yoy,omitempty"`
	QoQ         *float64 `json:"qoq,omitempty"`
	MoM         *float64 `json:"mom,omitempty"`
	Series      Series   `json:"series,omitempty"`
	DataPoints  int      `json:"data_points,omitempty"`
}

// Float returns a pointer to v; snapshot builders use it for optional fields.
func Float(v float64) *float64 { return &v }
