package model

const (
	SourceOTP    = "otp"
	SourceMatrix = "matrix"
	SourceTask   = "task"
)

// Event: satu baris kalender, hasil proyeksi program-bulan atau task.
type Event struct {
	ID          string `json:"id"`
	RefID       string `json:"ref_id"`
	Source      string `json:"source"`
	Category    string `json:"category"`
	Region      string `json:"region"`
	Base        string `json:"base"`
	Title       string `json:"title"`
	ProgramName string `json:"program_name"`
	Code        string `json:"code,omitempty"`
	Month       string `json:"month,omitempty"`
	PlanDate    string `json:"plan_date"`
	ImplDate    string `json:"impl_date"`
	PicName     string `json:"pic_name"`
	PlanType    string `json:"plan_type,omitempty"`
	PlanValue   int    `json:"plan_value"`
	ActualValue int    `json:"actual_value"`
	Status      string `json:"status"`
}

// Date: tanggal utama event (impl kalau ada, selain itu plan).
func (e Event) Date() string {
	if e.ImplDate != "" {
		return e.ImplDate
	}
	return e.PlanDate
}
