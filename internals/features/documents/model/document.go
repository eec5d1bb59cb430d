package model

import (
	"strings"
	"time"
)

type DocType string

const (
	TypePolicy    DocType = "policy"
	TypeManual    DocType = "manual"
	TypeProcedure DocType = "procedure"
	TypeGuideline DocType = "guideline"
	TypeTemplate  DocType = "template"
	TypeReport    DocType = "report"
	TypeForm      DocType = "form"
	TypeTraining  DocType = "training"
	TypeOther     DocType = "other"
)

// DocTypes: urutan tampil di dropdown.
var DocTypes = []DocType{
	TypePolicy, TypeManual, TypeProcedure, TypeGuideline, TypeTemplate,
	TypeReport, TypeForm, TypeTraining, TypeOther,
}

var docTypeLabels = map[DocType]string{
	TypePolicy:    "Policy",
	TypeManual:    "Manual",
	TypeProcedure: "Procedure",
	TypeGuideline: "Guideline",
	TypeTemplate:  "Template",
	TypeReport:    "Report",
	TypeForm:      "Form",
	TypeTraining:  "Training Material",
	TypeOther:     "Other",
}

// Label: tipe tak dikenal ditampilkan uppercase.
func (t DocType) Label() string {
	if l, ok := docTypeLabels[t]; ok {
		return l
	}
	return strings.ToUpper(string(t))
}

type Attachment struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	Key         string    `json:"key"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

type Document struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Type       DocType     `json:"type"`
	WptsID     string      `json:"wpts_id"`
	Size       string      `json:"size"`
	CreatedAt  string      `json:"created_at"`
	Attachment *Attachment `json:"attachment,omitempty"`
}
