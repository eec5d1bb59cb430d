package model

import "time"

// ProgramProgressModel: mirror remote per (program_id, month, year).
type ProgramProgressModel struct {
	ID              uint      `gorm:"column:id;primaryKey" json:"id"`
	ProgramID       int       `gorm:"column:program_id;not null;uniqueIndex:uq_program_progress_coord" json:"program_id"`
	Month           string    `gorm:"column:month;type:varchar(3);not null;uniqueIndex:uq_program_progress_coord" json:"month"`
	Year            int       `gorm:"column:year;not null;uniqueIndex:uq_program_progress_coord" json:"year"`
	PlanValue       *int      `gorm:"column:plan_value" json:"plan_value,omitempty"`
	ActualValue     int       `gorm:"column:actual_value;not null;default:0" json:"actual_value"`
	PlanDate        *string   `gorm:"column:plan_date;type:varchar(32)" json:"plan_date,omitempty"`
	ImplDate        *string   `gorm:"column:impl_date;type:varchar(32)" json:"impl_date,omitempty"`
	PicName         *string   `gorm:"column:pic_name;type:varchar(160)" json:"pic_name,omitempty"`
	PicEmail        *string   `gorm:"column:pic_email;type:varchar(160)" json:"pic_email,omitempty"`
	PicManagerName  *string   `gorm:"column:pic_manager_name;type:varchar(160)" json:"pic_manager_name,omitempty"`
	PicManagerEmail *string   `gorm:"column:pic_manager_email;type:varchar(160)" json:"pic_manager_email,omitempty"`
	WptsID          *string   `gorm:"column:wpts_id;type:varchar(80)" json:"wpts_id,omitempty"`
	ProgramType     *string   `gorm:"column:program_type;type:varchar(32)" json:"program_type,omitempty"`
	UpdatedAt       time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (ProgramProgressModel) TableName() string { return "program_progress" }

// MasterProgramModel: katalog program di remote (diisi dari seed).
type MasterProgramModel struct {
	ID           uint      `gorm:"column:id;primaryKey" json:"id"`
	Title        string    `gorm:"column:title;type:varchar(255);not null;uniqueIndex:uq_master_programs_key" json:"title"`
	ProgramType  string    `gorm:"column:program_type;type:varchar(32);not null;uniqueIndex:uq_master_programs_key" json:"program_type"`
	Region       string    `gorm:"column:region;type:varchar(32);not null;uniqueIndex:uq_master_programs_key" json:"region"`
	Base         string    `gorm:"column:base;type:varchar(32);not null;uniqueIndex:uq_master_programs_key" json:"base"`
	PlanType     string    `gorm:"column:plan_type;type:varchar(64)" json:"plan_type"`
	ReferenceDoc *string   `gorm:"column:reference_doc;type:varchar(255)" json:"reference_doc,omitempty"`
	DueDate      *string   `gorm:"column:due_date;type:varchar(32)" json:"due_date,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (MasterProgramModel) TableName() string { return "master_programs" }

// ProgressUpsert adalah payload sinkronisasi satu (program, bulan, tahun) ke remote.
// Field pointer nil = tidak ikut di-update.
type ProgressUpsert struct {
	ProgramID       int
	Month           Month
	Year            int
	ActualValue     int
	PlanValue       *int
	PlanDate        *string
	ImplDate        *string
	PicName         *string
	PicEmail        *string
	PicManagerName  *string
	PicManagerEmail *string
	WptsID          *string
	ProgramType     *string
	UpdatedAt       time.Time
}
