package domain

const (
	FirstWeekday = 1
	LastWeekday  = 7
)

type BreakInterval struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type DaySchedule struct {
	StartTime string          `json:"start_time"`
	EndTime   string          `json:"end_time"`
	IsOffDay  bool            `json:"is_off_day"`
	Breaks    []BreakInterval `json:"breaks"`
}

func OffDay() DaySchedule {
	return DaySchedule{IsOffDay: true, Breaks: []BreakInterval{}}
}

// HasHours reports whether both opening and closing time are set.
func (d DaySchedule) HasHours() bool {
	return d.StartTime != "" && d.EndTime != ""
}

// IsEmpty is true for a day without hours, unless it is an open day that still carries breaks.
func (d DaySchedule) IsEmpty() bool {
	if d.HasHours() {
		return false
	}
	return d.IsOffDay || len(d.Breaks) == 0
}

// WeeklySchedule maps a Monday-based weekday (1..7) to its hours.
type WeeklySchedule map[int]DaySchedule

func NewWeeklySchedule() WeeklySchedule {
	s := make(WeeklySchedule, LastWeekday)
	for day := FirstWeekday; day <= LastWeekday; day++ {
		s[day] = OffDay()
	}
	return s
}

func (s WeeklySchedule) Day(day int) DaySchedule {
	if d, ok := s[day]; ok {
		return d
	}
	return OffDay()
}

func (s WeeklySchedule) IsEmpty() bool {
	for day := FirstWeekday; day <= LastWeekday; day++ {
		if d, ok := s[day]; ok && !d.IsEmpty() {
			return false
		}
	}
	return true
}

func IsValidWeekday(day int) bool {
	return day >= FirstWeekday && day <= LastWeekday
}
