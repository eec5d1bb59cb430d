package export

import (
	"fmt"
	"strings"

	programModel "hsetrack_backend/internals/features/programs/model"
	programService "hsetrack_backend/internals/features/programs/service"
	taskModel "hsetrack_backend/internals/features/tasks/model"
)

var UnifiedHeader = []string{
	"ID", "Name", "Description", "Source", "Region", "Base", "Category", "Status",
	"Plan Type", "Reference", "Progress", "Plan Date", "Impl Date", "PIC Name", "PIC Email",
}

func UnifiedTable(programs []programModel.UnifiedProgram) Table {
	t := Table{Sheet: "Programs", Header: UnifiedHeader}
	for _, p := range programs {
		t.Append(p.ID, p.Name, p.Description, string(p.Source), p.Region, p.Base, p.Category,
			string(p.Status), p.PlanType, p.Reference, fmt.Sprintf("%d%%", p.Progress),
			p.PlanDate, p.ImplDate, p.PicName, p.PicEmail)
	}
	return t
}

// PartitionTable: grid mentah per partisi, kolom Reference hanya untuk matrix.
func PartitionTable(part programModel.Partition, c programModel.Collection) Table {
	withRef := part.Source == programModel.SourceMatrix

	header := []string{"No", "Program Name"}
	if withRef {
		header = append(header, "Reference")
	}
	header = append(header, "Plan Type")
	for _, m := range programModel.Months {
		up := strings.ToUpper(string(m))
		header = append(header, up+"_Plan", up+"_Actual", up+"_WPTS")
	}
	header = append(header, "Progress")

	t := Table{Sheet: sheetName(part), Header: header}
	for i, prog := range c.Programs {
		row := []any{i + 1, prog.Name}
		if withRef {
			row = append(row, prog.Reference)
		}
		row = append(row, prog.PlanType)
		for _, m := range programModel.Months {
			rec := prog.Month(m)
			row = append(row, rec.Plan, rec.Actual, rec.WptsID)
		}
		row = append(row, fmt.Sprintf("%d%%", programService.Aggregate(prog).Progress))
		t.Rows = append(t.Rows, row)
	}
	return t
}

// nama sheet excel max 31 karakter & tanpa "/"
func sheetName(p programModel.Partition) string {
	name := strings.ReplaceAll(p.StorageKey(), "/", "_")
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}

var TaskHeader = []string{
	"Code", "Title", "Program", "Region", "Base", "Year", "Implementation Date",
	"Frequency", "PIC Name", "PIC Email", "Status",
}

func TasksTable(tasks []taskModel.Task) Table {
	t := Table{Sheet: "Tasks", Header: TaskHeader}
	for _, task := range tasks {
		t.Append(task.Code, task.Title, task.ProgramName, task.Region, task.Base, task.Year,
			task.ImplementationDate, task.Frequency.Label(), task.PicName, task.PicEmail, string(task.Status))
	}
	return t
}
