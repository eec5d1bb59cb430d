package service

import (
	"strings"
	"time"

	programModel "hsetrack_backend/internals/features/programs/model"
	programService "hsetrack_backend/internals/features/programs/service"
	taskModel "hsetrack_backend/internals/features/tasks/model"
)

type ItemType string

const (
	ItemTask   ItemType = "task"
	ItemOTP    ItemType = "otp"
	ItemMatrix ItemType = "matrix"
)

// Alert: satu pengingat yang siap dikirim ke PIC.
type Alert struct {
	ItemType    ItemType `json:"item_type"`
	ItemName    string   `json:"item_name"`
	ProgramName string   `json:"program_name,omitempty"`
	TaskID      string   `json:"task_id,omitempty"`
	PicName     string   `json:"pic_name"`
	PicEmail    string   `json:"pic_email"`
	PlanDate    string   `json:"plan_date"`
	Frequency   string   `json:"frequency"`
	Base        string   `json:"base,omitempty"`
	Region      string   `json:"region,omitempty"`
	DaysUntil   int      `json:"days_until_due"`
}

func due(date, email, frequency string, now time.Time) (int, bool) {
	if strings.TrimSpace(date) == "" || !strings.Contains(email, "@") {
		return 0, false
	}
	days, ok := DaysUntilDue(date, now)
	if !ok || days < 0 || days > MaxLeadDays {
		return 0, false
	}
	return days, ShouldSendReminder(days, frequency)
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}

// Collect memindai task yang belum selesai dan bulan program yang belum terlaksana.
func Collect(collections []programService.Loaded, tasks []taskModel.Task, now time.Time) []Alert {
	var out []Alert

	for _, t := range tasks {
		if t.Status == programModel.StatusCompleted {
			continue
		}
		freq := orDefault(string(t.Frequency), string(taskModel.FrequencyMonthly))
		days, ok := due(t.ImplementationDate, t.PicEmail, freq, now)
		if !ok {
			continue
		}
		out = append(out, Alert{
			ItemType:    ItemTask,
			ItemName:    t.Title,
			ProgramName: t.ProgramName,
			TaskID:      t.ID,
			PicName:     orDefault(t.PicName, "Team Member"),
			PicEmail:    t.PicEmail,
			PlanDate:    t.ImplementationDate,
			Frequency:   freq,
			Base:        t.Base,
			Region:      t.Region,
			DaysUntil:   days,
		})
	}

	for _, l := range collections {
		kind := ItemOTP
		if l.Partition.Source == programModel.SourceMatrix {
			kind = ItemMatrix
		}
		for _, prog := range l.Collection.Programs {
			freq := orDefault(prog.PlanType, "Monthly")
			for _, m := range programModel.Months {
				rec := prog.Month(m)
				// bulan yang sudah ada implDate tidak perlu diingatkan
				if strings.TrimSpace(rec.ImplDate) != "" {
					continue
				}
				days, ok := due(rec.PlanDate, rec.PicEmail, freq, now)
				if !ok {
					continue
				}
				out = append(out, Alert{
					ItemType:  kind,
					ItemName:  prog.Name,
					PicName:   orDefault(rec.PicName, "HSE Team"),
					PicEmail:  rec.PicEmail,
					PlanDate:  rec.PlanDate,
					Frequency: freq,
					Base:      l.Partition.Base,
					Region:    l.Partition.Region(),
					DaysUntil: days,
				})
			}
		}
	}
	return out
}
