package models

// Requests for the outlook HTTP endpoints. Defined in domain for consistency
// and reuse. UseCache is a string because a bare bool cannot distinguish an
// explicit false from an absent parameter when defaults are applied.

type OutlookRequest struct {
	UseCache string `query:"use_cache" json:"use_cache" default:"true" validate:"oneof=true false"`
}

// Cached reports whether the cached snapshot set may be reused.
func (r *OutlookRequest) Cached() bool { return r.UseCache != "false" }

type AllocationRequest struct {
	Score *float64 `query:"score" json:"score" validate:"required,gte=0,lte=100"`
}

type HistoryRequest struct {
	Days     int    `query:"days" json:"days" default:"1825" validate:"gte=30,lte=7300"`
	UseCache string `query:"use_cache" json:"use_cache" default:"true" validate:"oneof=true false"`
}

func (r *HistoryRequest) Cached() bool { return r.UseCache != "false" }

type SignalsRequest struct {
	Days     int    `query:"days" json:"days" default:"1825" validate:"gte=30,lte=7300"`
	UseCache string `query:"use_cache" json:"use_cache" default:"true" validate:"oneof=true false"`
}

func (r *SignalsRequest) Cached() bool { return r.UseCache != "false" }

type CorrelationRequest struct {
	Days     int    `query:"days" json:"days" default:"1825" validate:"gte=30,lte=7300"`
	UseCache string `query:"use_cache" json:"use_cache" default:"true" validate:"oneof=true false"`
}

func (r *CorrelationRequest) Cached() bool { return r.UseCache != "false" }
