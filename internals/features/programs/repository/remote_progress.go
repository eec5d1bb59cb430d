package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hsetrack_backend/internals/features/programs/model"
)

// RemoteProgress: upsert ke tabel program_progress / master_programs via GORM.
type RemoteProgress struct {
	DB *gorm.DB
}

func NewRemoteProgress(db *gorm.DB) *RemoteProgress {
	return &RemoteProgress{DB: db}
}

func (r *RemoteProgress) Migrate() error {
	return r.DB.AutoMigrate(&model.ProgramProgressModel{}, &model.MasterProgramModel{})
}

// UpsertProgress: ON CONFLICT (program_id, month, year) hanya kolom yang ikut di payload yang di-update.
func (r *RemoteProgress) UpsertProgress(ctx context.Context, row model.ProgressUpsert) error {
	rec := model.ProgramProgressModel{
		ProgramID:       row.ProgramID,
		Month:           string(row.Month),
		Year:            row.Year,
		ActualValue:     row.ActualValue,
		PlanValue:       row.PlanValue,
		PlanDate:        row.PlanDate,
		ImplDate:        row.ImplDate,
		PicName:         row.PicName,
		PicEmail:        row.PicEmail,
		PicManagerName:  row.PicManagerName,
		PicManagerEmail: row.PicManagerEmail,
		WptsID:          row.WptsID,
		ProgramType:     row.ProgramType,
		UpdatedAt:       row.UpdatedAt,
	}

	cols := []string{"actual_value", "updated_at"}
	optional := []struct {
		col string
		set bool
	}{
		{"plan_value", row.PlanValue != nil},
		{"plan_date", row.PlanDate != nil},
		{"impl_date", row.ImplDate != nil},
		{"pic_name", row.PicName != nil},
		{"pic_email", row.PicEmail != nil},
		{"pic_manager_name", row.PicManagerName != nil},
		{"pic_manager_email", row.PicManagerEmail != nil},
		{"wpts_id", row.WptsID != nil},
		{"program_type", row.ProgramType != nil},
	}
	for _, o := range optional {
		if o.set {
			cols = append(cols, o.col)
		}
	}

	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "program_id"}, {Name: "month"}, {Name: "year"}},
			DoUpdates: clause.AssignmentColumns(cols),
		}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("upsert program_progress %d/%s/%d [%s]: %w", row.ProgramID, row.Month, row.Year, Classify(err), err)
	}
	return nil
}

// UpsertMaster: kunci natural (title, program_type, region, base).
func (r *RemoteProgress) UpsertMaster(ctx context.Context, row model.MasterProgramModel) error {
	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "title"}, {Name: "program_type"}, {Name: "region"}, {Name: "base"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"plan_type", "reference_doc", "due_date", "updated_at",
			}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert master_programs %q [%s]: %w", row.Title, Classify(err), err)
	}
	return nil
}

// Classify memberi label singkat untuk log sync berdasarkan SQLSTATE Postgres.
func Classify(err error) string {
	if err == nil {
		return "ok"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return "unique_violation"
		case "23502", "23503", "23514":
			return "constraint_violation"
		case "57014":
			return "statement_timeout"
		case "42P01", "42703":
			return "schema_mismatch"
		case "40001", "40P01":
			return "serialization"
		}
		return "pg_" + pgErr.Code
	}
	if pgconn.Timeout(err) {
		return "timeout"
	}
	return "unknown"
}
