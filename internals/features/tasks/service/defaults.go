package service

import (
	programModel "hsetrack_backend/internals/features/programs/model"
	"hsetrack_backend/internals/features/tasks/model"
)

// DefaultTasks: data awal saat tasks/all belum pernah disimpan.
func DefaultTasks() []model.Task {
	return []model.Task{
		{
			ID: "1", ProgramID: "1", ProgramName: "HSE Training Q1", Code: "HSE-001",
			Title: "Conduct Safety Induction Training", ImplementationDate: "2026-01-20",
			Frequency: model.FrequencyOnce, PicName: "John Doe", PicEmail: "john.doe@company.com",
			Status: programModel.StatusCompleted, Region: model.RegionIndonesia, Base: programModel.BaseNarogong,
			Year: 2026, HasAttachment: true, CreatedAt: "2026-01-01",
		},
		{
			ID: "2", ProgramID: "2", ProgramName: "Fire Drill Exercise", Code: "HSE-002",
			Title: "Fire Extinguisher Inspection", ImplementationDate: "2026-06-15",
			Frequency: model.FrequencyMonthly, PicName: "Jane Smith", PicEmail: "jane.smith@company.com",
			Status: programModel.StatusInProgress, Region: model.RegionIndonesia, Base: programModel.BaseBalikpapan,
			Year: 2026, CreatedAt: "2026-06-01",
		},
		{
			ID: "3", ProgramID: "3", ProgramName: "RADAR Card Campaign", Code: "HSE-003",
			Title: "Hazard Identification Walk-through", ImplementationDate: "2026-07-05",
			Frequency: model.FrequencyQuarterly, PicName: "Mike Chen", PicEmail: "mike.chen@company.com",
			Status: programModel.StatusUpcoming, Region: model.RegionIndonesia, Base: programModel.BaseDuri,
			Year: 2026, CreatedAt: "2026-06-15",
		},
		{
			ID: "4", ProgramID: "1", ProgramName: "HSE Training Q1", Code: "HSE-004",
			Title: "PPE Distribution & Training", ImplementationDate: "2026-02-10",
			Frequency: model.FrequencyAnnual, PicName: "Lisa Park", PicEmail: "lisa.park@company.com",
			Status: programModel.StatusCompleted, Region: model.RegionAsia, Base: model.BaseAsiaHQ,
			Year: 2026, HasAttachment: true, CreatedAt: "2026-01-15",
		},
		{
			ID: "5", ProgramID: "2", ProgramName: "Fire Drill Exercise", Code: "HSE-005",
			Title: "Emergency Evacuation Drill", ImplementationDate: "2026-06-28",
			Frequency: model.FrequencySemiAnnual, PicName: "Alex Wong", PicEmail: "alex.wong@company.com",
			Status: programModel.StatusUpcoming, Region: model.RegionIndonesia, Base: programModel.BaseNarogong,
			Year: 2026, CreatedAt: "2026-06-01",
		},
	}
}
