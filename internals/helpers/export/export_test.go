package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	programModel "hsetrack_backend/internals/features/programs/model"
	taskModel "hsetrack_backend/internals/features/tasks/model"
)

func TestWriteCSV_DoublesEmbeddedQuotes(t *testing.T) {
	tbl := UnifiedTable([]programModel.UnifiedProgram{{
		ID: "otp_indonesia_duri_1", Name: `Safety "Stand Down" Week`, Source: programModel.SourceOTP,
		Status: programModel.StatusInProgress, Progress: 50,
	}})

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tbl))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(UnifiedHeader, ","), lines[0])
	assert.Contains(t, lines[1], `"Safety ""Stand Down"" Week"`)
	assert.Contains(t, lines[1], ",50%,")
}

func TestPartitionTable_MatrixHasReferenceColumn(t *testing.T) {
	prog := programModel.NewProgram(1, "Audit K3", "Quarterly")
	prog.Reference = "PP 50/2012"
	prog.SetMonth(programModel.Jan, programModel.MonthRecord{Plan: 2, Actual: 1, WptsID: "W-9"})

	matrix := PartitionTable(
		programModel.Partition{Source: programModel.SourceMatrix, Dimension: programModel.CategoryAudit, Base: programModel.BaseDuri},
		programModel.Collection{Programs: []programModel.Program{prog}},
	)
	assert.Equal(t, []string{"No", "Program Name", "Reference", "Plan Type", "JAN_Plan", "JAN_Actual", "JAN_WPTS"}, matrix.Header[:7])
	assert.Equal(t, "Progress", matrix.Header[len(matrix.Header)-1])
	assert.Len(t, matrix.Header, 4+36+1)
	assert.Equal(t, []any{1, "Audit K3", "PP 50/2012", "Quarterly", 2, 1, "W-9"}, matrix.Rows[0][:7])
	assert.Equal(t, "50%", matrix.Rows[0][len(matrix.Rows[0])-1])
	assert.Equal(t, "matrix_audit_duri", matrix.Sheet)

	otp := PartitionTable(
		programModel.Partition{Source: programModel.SourceOTP, Dimension: programModel.RegionAsia, Base: programModel.BaseAll},
		programModel.Collection{Programs: []programModel.Program{prog}},
	)
	assert.Equal(t, "Plan Type", otp.Header[2])
	assert.Len(t, otp.Header, 3+36+1)
}

func TestWriteXLSX_OneSheetPerTable(t *testing.T) {
	tasks := TasksTable([]taskModel.Task{{Code: "HSE-1", Title: "Drill", Year: 2026, Frequency: taskModel.FrequencyAnnual}})
	programs := UnifiedTable(nil)

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, tasks, programs))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Tasks", "Programs"}, f.GetSheetList())
	v, err := f.GetCellValue("Tasks", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Drill", v)
	v, err = f.GetCellValue("Tasks", "H2")
	require.NoError(t, err)
	assert.Equal(t, "Annual (Yearly)", v)
}

func TestPreambleShiftsHeader(t *testing.T) {
	tbl := Table{
		Sheet:    "KPI 2026",
		Preamble: [][]string{{"KPI Report for 2026"}, {"Man Hours", "1200"}},
		Header:   []string{"Metric", "Target"},
	}
	tbl.Append("Fatality", 0)

	var csvBuf bytes.Buffer
	require.NoError(t, WriteCSV(&csvBuf, tbl))
	assert.Equal(t, "KPI Report for 2026\nMan Hours,1200\n\nMetric,Target\nFatality,0\n", csvBuf.String())

	var xlsxBuf bytes.Buffer
	require.NoError(t, WriteXLSX(&xlsxBuf, tbl))
	f, err := excelize.OpenReader(&xlsxBuf)
	require.NoError(t, err)
	defer f.Close()

	v, _ := f.GetCellValue("KPI 2026", "B2")
	assert.Equal(t, "1200", v)
	v, _ = f.GetCellValue("KPI 2026", "A4")
	assert.Equal(t, "Metric", v)
	v, _ = f.GetCellValue("KPI 2026", "A5")
	assert.Equal(t, "Fatality", v)
}
