package dto

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"hsetrack_backend/internals/features/kpi/model"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type AddYearRequest struct {
	Year int `json:"year" validate:"required,min=2000,max=2100"`
}

func (r *AddYearRequest) Validate() error { return validate.Struct(r) }

type MetricInput struct {
	ID     string  `json:"id" validate:"required,max=50"`
	Name   string  `json:"name" validate:"required,max=120"`
	Icon   string  `json:"icon" validate:"omitempty,max=16"`
	Target float64 `json:"target" validate:"min=0"`
	Result float64 `json:"result" validate:"min=0"`
}

// SaveYearRequest: isi penuh satu tahun (replace).
type SaveYearRequest struct {
	ManHours int64         `json:"man_hours" validate:"min=0"`
	Metrics  []MetricInput `json:"metrics" validate:"max=50,dive"`
}

func (r *SaveYearRequest) Normalize() {
	for i := range r.Metrics {
		m := &r.Metrics[i]
		m.ID = strings.ToLower(strings.TrimSpace(m.ID))
		m.Name = strings.TrimSpace(m.Name)
		m.Icon = strings.TrimSpace(m.Icon)
	}
}

func (r *SaveYearRequest) Validate() error { return validate.Struct(r) }

func (r SaveYearRequest) ToModel(year int) model.YearData {
	out := model.YearData{Year: year, ManHours: r.ManHours, Metrics: make([]model.Metric, 0, len(r.Metrics))}
	for _, m := range r.Metrics {
		out.Metrics = append(out.Metrics, model.Metric{ID: m.ID, Name: m.Name, Icon: m.Icon, Target: m.Target, Result: m.Result})
	}
	return out
}

type MetricResponse struct {
	model.Metric
	Status      model.Status `json:"status"`
	StatusLabel string       `json:"status_label"`
}

type YearResponse struct {
	Year     int              `json:"year"`
	ManHours int64            `json:"man_hours"`
	Metrics  []MetricResponse `json:"metrics"`
	Achieved int              `json:"achieved"`
	OnTrack  int              `json:"on_track"`
	AtRisk   int              `json:"at_risk"`
}

func ToYearResponse(d model.YearData) YearResponse {
	out := YearResponse{Year: d.Year, ManHours: d.ManHours, Metrics: make([]MetricResponse, 0, len(d.Metrics))}
	for _, m := range d.Metrics {
		st := model.CalculateStatus(m.Target, m.Result)
		switch st {
		case model.StatusAchieved:
			out.Achieved++
		case model.StatusOnTrack:
			out.OnTrack++
		default:
			out.AtRisk++
		}
		out.Metrics = append(out.Metrics, MetricResponse{Metric: m, Status: st, StatusLabel: st.Label()})
	}
	return out
}
