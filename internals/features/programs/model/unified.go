package model

type Status string

const (
	StatusUpcoming   Status = "Upcoming"
	StatusInProgress Status = "InProgress"
	StatusCompleted  Status = "Completed"
)

// ParseStatus menerima juga bentuk "In Progress" dari form lama.
func ParseStatus(s string) (Status, bool) {
	switch s {
	case "Upcoming", "upcoming":
		return StatusUpcoming, true
	case "InProgress", "In Progress", "in_progress", "inprogress":
		return StatusInProgress, true
	case "Completed", "completed":
		return StatusCompleted, true
	}
	return "", false
}

// UnifiedProgram adalah read-model gabungan OTP + Matrix.
// Selalu dihitung ulang dari Program; tidak pernah di-mutate langsung.
type UnifiedProgram struct {
	ID          string `json:"id"`
	ProgramID   int    `json:"program_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Source      Source `json:"source"`
	Region      string `json:"region"`
	Base        string `json:"base"`
	Category    string `json:"category"`
	Status      Status `json:"status"`
	PlanType    string `json:"plan_type"`
	Reference   string `json:"reference,omitempty"`
	Progress    int    `json:"progress"`
	TotalPlan   int    `json:"total_plan"`
	TotalActual int    `json:"total_actual"`
	PlanDate    string `json:"plan_date,omitempty"`
	ImplDate    string `json:"impl_date,omitempty"`
	PicName     string `json:"pic_name,omitempty"`
	PicEmail    string `json:"pic_email,omitempty"`
	WptsID      string `json:"wpts_id,omitempty"`
	TargetDate  string `json:"target_date,omitempty"`
	AssignedTo  string `json:"assigned_to"`
}
