package model

type Status string

const (
	StatusAchieved Status = "achieved"
	StatusOnTrack  Status = "on-track"
	StatusAtRisk   Status = "at-risk"
)

var statusLabels = map[Status]string{
	StatusAchieved: "Achieved",
	StatusOnTrack:  "On Track",
	StatusAtRisk:   "At Risk",
}

func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Metric: target & result berupa angka (rate atau jumlah kasus), makin kecil makin baik.
type Metric struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Icon   string  `json:"icon"`
	Target float64 `json:"target"`
	Result float64 `json:"result"`
}

type YearData struct {
	Year     int      `json:"year"`
	ManHours int64    `json:"man_hours"`
	Metrics  []Metric `json:"metrics"`
}

// Store: satu dokumen untuk semua tahun. Years selalu urut menurun.
type Store struct {
	Years []int            `json:"years"`
	Data  map[int]YearData `json:"data"`
}

type Definition struct {
	ID   string
	Name string
	Icon string
}

// Definitions: urutan baris di laporan KPI.
var Definitions = []Definition{
	{ID: "fatality", Name: "Fatality", Icon: "💀"},
	{ID: "trir", Name: "Total Recordable Injury Rate (TRIR)", Icon: "🏥"},
	{ID: "pvir", Name: "Preventable Vehicle Incident Rate (PVIR)", Icon: "🚗"},
	{ID: "environment", Name: "Environment Incidents", Icon: "🌿"},
	{ID: "fire", Name: "Fire Case", Icon: "🔥"},
	{ID: "firstaid", Name: "First Aid Case", Icon: "🩹"},
	{ID: "occupational", Name: "Occupational Health Incident", Icon: "⚕️"},
}

// EmptyYear: semua metrik standar dengan target & result 0.
func EmptyYear(year int) YearData {
	out := YearData{Year: year, Metrics: make([]Metric, 0, len(Definitions))}
	for _, d := range Definitions {
		out.Metrics = append(out.Metrics, Metric{ID: d.ID, Name: d.Name, Icon: d.Icon})
	}
	return out
}

// CalculateStatus:
//   - target 0: achieved hanya jika result juga 0
//   - result <= target: achieved
//   - result <= 120% target: on-track
//   - selebihnya at-risk
func CalculateStatus(target, result float64) Status {
	if target == 0 {
		if result == 0 {
			return StatusAchieved
		}
		return StatusAtRisk
	}
	switch {
	case result <= target:
		return StatusAchieved
	case result <= target*1.2:
		return StatusOnTrack
	default:
		return StatusAtRisk
	}
}
