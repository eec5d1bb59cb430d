package dto

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"hsetrack_backend/internals/features/documents/model"
	"hsetrack_backend/internals/features/documents/service"
	helper "hsetrack_backend/internals/helpers"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type CreateDocumentRequest struct {
	Name   string `json:"name" validate:"required,min=2,max=200"`
	Type   string `json:"type" validate:"required,oneof=policy manual procedure guideline template report form training other"`
	WptsID string `json:"wpts_id" validate:"omitempty,max=100"`
	Size   string `json:"size" validate:"omitempty,max=20"`
}

func (r *CreateDocumentRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	if r.Type == "" {
		r.Type = string(model.TypeOther)
	}
	r.WptsID = strings.TrimSpace(r.WptsID)
	r.Size = strings.TrimSpace(r.Size)
}

func (r *CreateDocumentRequest) Validate() error { return validate.Struct(r) }

func (r CreateDocumentRequest) ToModel() model.Document {
	return model.Document{Name: r.Name, Type: model.DocType(r.Type), WptsID: r.WptsID, Size: r.Size}
}

type PatchDocumentRequest struct {
	Name   helper.PatchField[string] `json:"name"`
	Type   helper.PatchField[string] `json:"type"`
	WptsID helper.PatchField[string] `json:"wpts_id"`
	Size   helper.PatchField[string] `json:"size"`
}

func (p *PatchDocumentRequest) Normalize() {
	trim := func(f *helper.PatchField[string], lower bool) {
		if f.Value == nil {
			return
		}
		v := strings.TrimSpace(*f.Value)
		if lower {
			v = strings.ToLower(v)
		}
		f.Value = &v
	}
	trim(&p.Name, false)
	trim(&p.Type, true)
	trim(&p.WptsID, false)
	trim(&p.Size, false)
}

type patchRules struct {
	Name *string `validate:"omitempty,min=2,max=200"`
	Type *string `validate:"omitempty,oneof=policy manual procedure guideline template report form training other"`
}

func (p *PatchDocumentRequest) Validate() error {
	return validate.Struct(patchRules{Name: p.Name.Value, Type: p.Type.Value})
}

func (p PatchDocumentRequest) ToPatch() service.Patch {
	out := service.Patch{Name: p.Name.Ptr(), WptsID: p.WptsID.Ptr(), Size: p.Size.Ptr()}
	if p.Type.Value != nil {
		t := model.DocType(*p.Type.Value)
		out.Type = &t
	}
	return out
}

type DocumentResponse struct {
	model.Document
	TypeLabel string `json:"type_label"`
}

func ToDocumentResponse(d model.Document) DocumentResponse {
	return DocumentResponse{Document: d, TypeLabel: d.Type.Label()}
}

func ToDocumentResponses(docs []model.Document) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, ToDocumentResponse(d))
	}
	return out
}

type DocTypeOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func DocTypeOptions() []DocTypeOption {
	out := make([]DocTypeOption, 0, len(model.DocTypes))
	for _, t := range model.DocTypes {
		out = append(out, DocTypeOption{Value: string(t), Label: t.Label()})
	}
	return out
}
