// file: internals/features/programs/dto/program_dto.go
package dto

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"hsetrack_backend/internals/features/programs/model"
	"hsetrack_backend/internals/features/programs/service"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

/* =======================================================
   PATCH progress (update engine)
   ======================================================= */

type UpdateProgressRequest struct {
	Status          *string `json:"status" validate:"omitempty,max=20"`
	Month           *string `json:"month" validate:"omitempty,max=10"`
	Plan            *int    `json:"plan" validate:"omitempty,min=0,max=1000"`
	WptsID          *string `json:"wpts_id" validate:"omitempty,max=100"`
	PlanDate        *string `json:"plan_date" validate:"omitempty,max=40"`
	ImplDate        *string `json:"impl_date" validate:"omitempty,max=40"`
	PicName         *string `json:"pic_name" validate:"omitempty,max=120"`
	PicEmail        *string `json:"pic_email" validate:"omitempty,email"`
	PicManagerName  *string `json:"pic_manager" validate:"omitempty,max=120"`
	PicManagerEmail *string `json:"pic_manager_email" validate:"omitempty,email"`
}

func trimPtr(p **string, lower bool) {
	if *p == nil {
		return
	}
	v := strings.TrimSpace(**p)
	if lower {
		v = strings.ToLower(v)
	}
	*p = &v
}

func (r *UpdateProgressRequest) Normalize() {
	trimPtr(&r.Status, false)
	trimPtr(&r.Month, true)
	trimPtr(&r.WptsID, false)
	trimPtr(&r.PlanDate, false)
	trimPtr(&r.ImplDate, false)
	trimPtr(&r.PicName, false)
	trimPtr(&r.PicEmail, true)
	trimPtr(&r.PicManagerName, false)
	trimPtr(&r.PicManagerEmail, true)

	// string kosong untuk email = hapus nilai, tidak perlu divalidasi sebagai email
	for _, p := range []**string{&r.PicEmail, &r.PicManagerEmail} {
		if *p != nil && **p == "" {
			empty := ""
			*p = &empty
		}
	}
}

func (r *UpdateProgressRequest) Validate() error {
	check := *r
	if check.PicEmail != nil && *check.PicEmail == "" {
		check.PicEmail = nil
	}
	if check.PicManagerEmail != nil && *check.PicManagerEmail == "" {
		check.PicManagerEmail = nil
	}
	if err := validate.Struct(check); err != nil {
		return err
	}
	if r.Month != nil && *r.Month != "" {
		if _, err := model.ParseMonth(*r.Month); err != nil {
			return fmt.Errorf("month: %w", err)
		}
	}
	return nil
}

func (r UpdateProgressRequest) ToPatch() service.Patch {
	return service.Patch{
		Status:          r.Status,
		Month:           r.Month,
		Plan:            r.Plan,
		WptsID:          r.WptsID,
		PlanDate:        r.PlanDate,
		ImplDate:        r.ImplDate,
		PicName:         r.PicName,
		PicEmail:        r.PicEmail,
		PicManagerName:  r.PicManagerName,
		PicManagerEmail: r.PicManagerEmail,
	}
}

/* =======================================================
   CREATE program (catalog)
   ======================================================= */

type CreateProgramRequest struct {
	Name      string `json:"name" validate:"required,min=3,max=200"`
	PlanType  string `json:"plan_type" validate:"required,max=100"`
	Reference string `json:"reference" validate:"omitempty,max=200"`
	DueDate   string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

func (r *CreateProgramRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.PlanType = strings.TrimSpace(r.PlanType)
	r.Reference = strings.TrimSpace(r.Reference)
	r.DueDate = strings.TrimSpace(r.DueDate)
}

func (r *CreateProgramRequest) Validate() error { return validate.Struct(r) }

func (r CreateProgramRequest) ToInput() service.NewProgramInput {
	return service.NewProgramInput{Name: r.Name, PlanType: r.PlanType, Reference: r.Reference, DueDate: r.DueDate}
}

/* =======================================================
   RESPONSE
   ======================================================= */

type UnifiedListResponse struct {
	Programs []model.UnifiedProgram `json:"programs"`
	Stats    service.Stats          `json:"stats"`
}
