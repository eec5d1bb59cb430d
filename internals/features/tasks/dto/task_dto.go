// file: internals/features/tasks/dto/task_dto.go
package dto

import (
	"strings"

	"github.com/go-playground/validator/v10"

	programModel "hsetrack_backend/internals/features/programs/model"
	"hsetrack_backend/internals/features/tasks/model"
	"hsetrack_backend/internals/features/tasks/service"
	helper "hsetrack_backend/internals/helpers"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

/* =======================================================
   CREATE
   ======================================================= */

type CreateTaskRequest struct {
	ProgramID          string `json:"program_id" validate:"omitempty,max=120"`
	ProgramName        string `json:"program_name" validate:"omitempty,max=200"`
	Code               string `json:"code" validate:"required,max=50"`
	Title              string `json:"title" validate:"required,min=3,max=200"`
	ImplementationDate string `json:"implementation_date" validate:"required,datetime=2006-01-02"`
	Frequency          string `json:"frequency" validate:"omitempty,oneof=once monthly quarterly semi-annual annual"`
	PicName            string `json:"pic_name" validate:"omitempty,max=120"`
	PicEmail           string `json:"pic_email" validate:"omitempty,email"`
	Status             string `json:"status" validate:"omitempty"`
	Region             string `json:"region" validate:"omitempty,oneof=indonesia asia"`
	Base               string `json:"base" validate:"omitempty,oneof=narogong balikpapan duri asia-hq"`
	Year               int    `json:"year" validate:"omitempty,min=2000,max=2100"`
	WptsID             string `json:"wpts_id" validate:"omitempty,max=100"`
}

func (r *CreateTaskRequest) Normalize() {
	r.ProgramID = strings.TrimSpace(r.ProgramID)
	r.ProgramName = strings.TrimSpace(r.ProgramName)
	r.Code = strings.TrimSpace(r.Code)
	r.Title = strings.TrimSpace(r.Title)
	r.ImplementationDate = strings.TrimSpace(r.ImplementationDate)
	r.Frequency = strings.ToLower(strings.TrimSpace(r.Frequency))
	if r.Frequency == "" {
		r.Frequency = string(model.FrequencyOnce)
	}
	r.PicName = strings.TrimSpace(r.PicName)
	r.PicEmail = strings.ToLower(strings.TrimSpace(r.PicEmail))
	r.Region = strings.ToLower(strings.TrimSpace(r.Region))
	r.Base = strings.ToLower(strings.TrimSpace(r.Base))
	r.WptsID = strings.TrimSpace(r.WptsID)
}

func (r *CreateTaskRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	return validStatus(r.Status)
}

func (r CreateTaskRequest) ToModel() model.Task {
	t := model.Task{
		ProgramID:          r.ProgramID,
		ProgramName:        r.ProgramName,
		Code:               r.Code,
		Title:              r.Title,
		ImplementationDate: r.ImplementationDate,
		Frequency:          model.Frequency(r.Frequency),
		PicName:            r.PicName,
		PicEmail:           r.PicEmail,
		Region:             r.Region,
		Base:               r.Base,
		Year:               r.Year,
		WptsID:             r.WptsID,
	}
	if st, ok := programModel.ParseStatus(r.Status); ok {
		t.Status = st
	}
	return t
}

/* =======================================================
   PATCH (tri-state)
   ======================================================= */

type PatchTaskRequest struct {
	ProgramID          helper.PatchField[string] `json:"program_id"`
	ProgramName        helper.PatchField[string] `json:"program_name"`
	Code               helper.PatchField[string] `json:"code"`
	Title              helper.PatchField[string] `json:"title"`
	ImplementationDate helper.PatchField[string] `json:"implementation_date"`
	Frequency          helper.PatchField[string] `json:"frequency"`
	PicName            helper.PatchField[string] `json:"pic_name"`
	PicEmail           helper.PatchField[string] `json:"pic_email"`
	Status             helper.PatchField[string] `json:"status"`
	Region             helper.PatchField[string] `json:"region"`
	Base               helper.PatchField[string] `json:"base"`
	Year               helper.PatchField[int]    `json:"year"`
	WptsID             helper.PatchField[string] `json:"wpts_id"`
}

func trimField(f *helper.PatchField[string], lower bool) {
	if f.Value == nil {
		return
	}
	v := strings.TrimSpace(*f.Value)
	if lower {
		v = strings.ToLower(v)
	}
	f.Value = &v
}

func (p *PatchTaskRequest) Normalize() {
	for _, f := range []*helper.PatchField[string]{
		&p.ProgramID, &p.ProgramName, &p.Code, &p.Title, &p.ImplementationDate, &p.PicName, &p.WptsID, &p.Status,
	} {
		trimField(f, false)
	}
	for _, f := range []*helper.PatchField[string]{&p.Frequency, &p.PicEmail, &p.Region, &p.Base} {
		trimField(f, true)
	}
}

type patchRules struct {
	Title              *string `validate:"omitempty,min=3,max=200"`
	ImplementationDate *string `validate:"omitempty,datetime=2006-01-02"`
	Frequency          *string `validate:"omitempty,oneof=once monthly quarterly semi-annual annual"`
	PicEmail           *string `validate:"omitempty,email"`
	Region             *string `validate:"omitempty,oneof=indonesia asia"`
	Base               *string `validate:"omitempty,oneof=narogong balikpapan duri asia-hq"`
	Year               *int    `validate:"omitempty,min=2000,max=2100"`
}

func (p *PatchTaskRequest) Validate() error {
	rules := patchRules{
		Title:              p.Title.Value,
		ImplementationDate: p.ImplementationDate.Value,
		Frequency:          p.Frequency.Value,
		PicEmail:           p.PicEmail.Value,
		Region:             p.Region.Value,
		Base:               p.Base.Value,
		Year:               p.Year.Value,
	}
	if err := validate.Struct(rules); err != nil {
		return err
	}
	if p.Status.Value != nil {
		return validStatus(*p.Status.Value)
	}
	return nil
}

func (p PatchTaskRequest) ToPatch() service.Patch {
	out := service.Patch{
		ProgramID:          p.ProgramID.Ptr(),
		ProgramName:        p.ProgramName.Ptr(),
		Code:               p.Code.Ptr(),
		Title:              p.Title.Ptr(),
		ImplementationDate: p.ImplementationDate.Ptr(),
		PicName:            p.PicName.Ptr(),
		PicEmail:           p.PicEmail.Ptr(),
		Region:             p.Region.Ptr(),
		Base:               p.Base.Ptr(),
		Year:               p.Year.Ptr(),
		WptsID:             p.WptsID.Ptr(),
	}
	if p.Frequency.Value != nil {
		f := model.Frequency(*p.Frequency.Value)
		out.Frequency = &f
	}
	if p.Status.Value != nil {
		if st, ok := programModel.ParseStatus(*p.Status.Value); ok {
			out.Status = &st
		}
	}
	return out
}

func validStatus(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, ok := programModel.ParseStatus(s); !ok {
		return &StatusError{Value: s}
	}
	return nil
}

type StatusError struct{ Value string }

func (e *StatusError) Error() string {
	return "status tidak valid: " + e.Value + " (Upcoming|In Progress|Completed)"
}

/* =======================================================
   RESPONSE
   ======================================================= */

type TaskResponse struct {
	model.Task
	FrequencyLabel string `json:"frequency_label"`
}

func ToTaskResponse(t model.Task) TaskResponse {
	return TaskResponse{Task: t, FrequencyLabel: t.Frequency.Label()}
}

func ToTaskResponses(ts []model.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, ToTaskResponse(t))
	}
	return out
}
