package dto

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"hsetrack_backend/internals/features/indicators/model"
	"hsetrack_backend/internals/features/indicators/service"
	helper "hsetrack_backend/internals/helpers"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type AddYearRequest struct {
	Year int `json:"year" validate:"required,min=2000,max=2100"`
}

func (r *AddYearRequest) Validate() error { return validate.Struct(r) }

type IndicatorInput struct {
	Name   string `json:"name" validate:"required,min=2,max=200"`
	Icon   string `json:"icon" validate:"omitempty,max=16"`
	Target string `json:"target" validate:"max=50"`
	Actual string `json:"actual" validate:"max=50"`
	Intent string `json:"intent" validate:"max=500"`
}

func (r *IndicatorInput) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Icon = strings.TrimSpace(r.Icon)
	r.Target = strings.TrimSpace(r.Target)
	r.Actual = strings.TrimSpace(r.Actual)
	r.Intent = strings.TrimSpace(r.Intent)
}

func (r *IndicatorInput) Validate() error { return validate.Struct(r) }

func (r IndicatorInput) ToModel() model.Indicator {
	return model.Indicator{Name: r.Name, Icon: r.Icon, Target: r.Target, Actual: r.Actual, Intent: r.Intent}
}

// SaveYearRequest: id tiap baris dinomori ulang 1..n sesuai urutan.
type SaveYearRequest struct {
	Lagging []IndicatorInput `json:"lagging" validate:"max=100,dive"`
	Leading []IndicatorInput `json:"leading" validate:"max=100,dive"`
}

func (r *SaveYearRequest) Normalize() {
	for i := range r.Lagging {
		r.Lagging[i].Normalize()
	}
	for i := range r.Leading {
		r.Leading[i].Normalize()
	}
}

func (r *SaveYearRequest) Validate() error { return validate.Struct(r) }

func (r SaveYearRequest) ToModel(year int) model.YearData {
	conv := func(in []IndicatorInput) []model.Indicator {
		out := make([]model.Indicator, 0, len(in))
		for i, it := range in {
			m := it.ToModel()
			m.ID = i + 1
			out = append(out, m)
		}
		return out
	}
	return model.YearData{Year: year, Lagging: conv(r.Lagging), Leading: conv(r.Leading)}
}

type PatchIndicatorRequest struct {
	Name   helper.PatchField[string] `json:"name"`
	Icon   helper.PatchField[string] `json:"icon"`
	Target helper.PatchField[string] `json:"target"`
	Actual helper.PatchField[string] `json:"actual"`
	Intent helper.PatchField[string] `json:"intent"`
}

func (p *PatchIndicatorRequest) Normalize() {
	for _, f := range []*helper.PatchField[string]{&p.Name, &p.Icon, &p.Target, &p.Actual, &p.Intent} {
		if f.Value != nil {
			v := strings.TrimSpace(*f.Value)
			f.Value = &v
		}
	}
}

type patchRules struct {
	Name   *string `validate:"omitnil,min=2,max=200"`
	Target *string `validate:"omitnil,max=50"`
	Actual *string `validate:"omitnil,max=50"`
}

// Validate: name yang dikirim (termasuk null) tidak boleh kosong.
func (p *PatchIndicatorRequest) Validate() error {
	return validate.Struct(patchRules{Name: p.Name.Ptr(), Target: p.Target.Value, Actual: p.Actual.Value})
}

func (p PatchIndicatorRequest) ToPatch() service.Patch {
	return service.Patch{
		Name:   p.Name.Ptr(),
		Icon:   p.Icon.Ptr(),
		Target: p.Target.Ptr(),
		Actual: p.Actual.Ptr(),
		Intent: p.Intent.Ptr(),
	}
}

type IndicatorResponse struct {
	model.Indicator
	Status model.Status `json:"status"`
}

func ToIndicatorResponse(it model.Indicator) IndicatorResponse {
	return IndicatorResponse{Indicator: it, Status: model.CalculateStatus(it.Target, it.Actual)}
}

type YearResponse struct {
	Year    int                 `json:"year"`
	Lagging []IndicatorResponse `json:"lagging"`
	Leading []IndicatorResponse `json:"leading"`
}

func ToYearResponse(d model.YearData) YearResponse {
	conv := func(in []model.Indicator) []IndicatorResponse {
		out := make([]IndicatorResponse, 0, len(in))
		for _, it := range in {
			out = append(out, ToIndicatorResponse(it))
		}
		return out
	}
	return YearResponse{Year: d.Year, Lagging: conv(d.Lagging), Leading: conv(d.Leading)}
}
