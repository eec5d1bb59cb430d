package model

import (
	"time"

	programModel "hsetrack_backend/internals/features/programs/model"
)

type Frequency string

const (
	FrequencyOnce       Frequency = "once"
	FrequencyMonthly    Frequency = "monthly"
	FrequencyQuarterly  Frequency = "quarterly"
	FrequencySemiAnnual Frequency = "semi-annual"
	FrequencyAnnual     Frequency = "annual"
)

var FrequencyLabels = map[Frequency]string{
	FrequencyOnce:       "Once (Ad-hoc)",
	FrequencyMonthly:    "Monthly",
	FrequencyQuarterly:  "Quarterly (Every 3 Months)",
	FrequencySemiAnnual: "Semi-Annual (Every 6 Months)",
	FrequencyAnnual:     "Annual (Yearly)",
}

func (f Frequency) Label() string {
	if l, ok := FrequencyLabels[f]; ok {
		return l
	}
	return string(f)
}

const (
	RegionIndonesia = "indonesia"
	RegionAsia      = "asia"
	BaseAsiaHQ      = "asia-hq"
)

// Attachment: objek di blob store yang ditempel ke task/dokumen.
type Attachment struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	Key         string    `json:"key"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type,omitempty"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// Task: aktivitas independen, relasi ke program hanya soft reference.
type Task struct {
	ID                 string              `json:"id"`
	ProgramID          string              `json:"program_id"`
	ProgramName        string              `json:"program_name"`
	Code               string              `json:"code"`
	Title              string              `json:"title"`
	ImplementationDate string              `json:"implementation_date"`
	Frequency          Frequency           `json:"frequency"`
	PicName            string              `json:"pic_name"`
	PicEmail           string              `json:"pic_email"`
	Status             programModel.Status `json:"status"`
	Region             string              `json:"region"`
	Base               string              `json:"base"`
	Year               int                 `json:"year"`
	WptsID             string              `json:"wpts_id,omitempty"`
	Attachments        []Attachment        `json:"attachments,omitempty"`
	HasAttachment      bool                `json:"has_attachment"`
	CreatedAt          string              `json:"created_at"`
}

// Filters: "all" atau kosong = tanpa filter.
type Filters struct {
	Region string `query:"region"`
	Base   string `query:"base"`
	Year   string `query:"year"`
	Status string `query:"status"`
}
