package model

// MonthRecord adalah fakta plan/actual satu program di satu bulan.
// Actual boleh melebihi Plan; clamp hanya dilakukan saat hitung persen.
type MonthRecord struct {
	Plan            int    `json:"plan"`
	Actual          int    `json:"actual"`
	WptsID          string `json:"wpts_id,omitempty"`
	PlanDate        string `json:"plan_date,omitempty"`
	ImplDate        string `json:"impl_date,omitempty"`
	PicName         string `json:"pic_name,omitempty"`
	PicEmail        string `json:"pic_email,omitempty"`
	PicManagerName  string `json:"pic_manager,omitempty"`
	PicManagerEmail string `json:"pic_manager_email,omitempty"`
}

type Program struct {
	ID        int                   `json:"id"`
	Name      string                `json:"name"`
	PlanType  string                `json:"plan_type"`
	DueDate   string                `json:"due_date,omitempty"`
	Reference string                `json:"reference,omitempty"`
	Months    map[Month]MonthRecord `json:"months"`
}

// NewProgram membuat program dengan 12 bulan bernilai nol.
func NewProgram(id int, name, planType string) Program {
	p := Program{ID: id, Name: name, PlanType: planType, Months: make(map[Month]MonthRecord, len(Months))}
	for _, m := range Months {
		p.Months[m] = MonthRecord{}
	}
	return p
}

// Month: key yang tidak ada dianggap MonthRecord nol, bukan error.
func (p Program) Month(m Month) MonthRecord {
	if p.Months == nil {
		return MonthRecord{}
	}
	return p.Months[m]
}

func (p *Program) SetMonth(m Month, rec MonthRecord) {
	if p.Months == nil {
		p.Months = make(map[Month]MonthRecord, len(Months))
	}
	p.Months[m] = rec
}

// Collection adalah dokumen utuh satu partisi di local store.
type Collection struct {
	Year     int       `json:"year"`
	Category string    `json:"category,omitempty"`
	Region   string    `json:"region,omitempty"`
	Programs []Program `json:"programs"`
}

// IndexOf mengembalikan posisi program dengan id tersebut, -1 kalau tidak ada.
func (c *Collection) IndexOf(id int) int {
	for i := range c.Programs {
		if c.Programs[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Collection) NextID() int {
	max := 0
	for _, p := range c.Programs {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}

// Clone: deep copy supaya cache tidak ikut berubah saat di-mutate.
func (c Collection) Clone() Collection {
	out := c
	out.Programs = make([]Program, len(c.Programs))
	for i, p := range c.Programs {
		cp := p
		cp.Months = make(map[Month]MonthRecord, len(p.Months))
		for k, v := range p.Months {
			cp.Months[k] = v
		}
		out.Programs[i] = cp
	}
	return out
}
