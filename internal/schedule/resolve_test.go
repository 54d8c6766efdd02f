package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bookadmin/internal/domain"
)

func mondayHours(start, end string) domain.WeeklySchedule {
	s := domain.NewWeeklySchedule()
	s[1] = domain.DaySchedule{StartTime: start, EndTime: end, Breaks: []domain.BreakInterval{}}
	return s
}

func TestResolveDefaultFallsBackToLocationHours(t *testing.T) {
	entity := Normalize(map[string]any{})

	got := ResolveDefault(entity, nil, map[int64]domain.WeeklySchedule{
		3: mondayHours("09:00", "17:00"),
	})

	assert.False(t, got[1].IsOffDay)
	assert.Equal(t, "09:00", got[1].StartTime)
	assert.Equal(t, "17:00", got[1].EndTime)
	for day := 2; day <= 7; day++ {
		assert.True(t, got[day].IsOffDay)
	}
}

func TestResolveDefaultPrefersFirstCandidate(t *testing.T) {
	locations := map[int64]domain.WeeklySchedule{
		1: mondayHours("08:00", "12:00"),
		2: mondayHours("10:00", "20:00"),
	}

	got := ResolveDefault(domain.NewWeeklySchedule(), []int64{2, 1}, locations)

	assert.Equal(t, "10:00", got[1].StartTime)
}

func TestResolveDefaultLowestLocationIDWithoutCandidates(t *testing.T) {
	locations := map[int64]domain.WeeklySchedule{
		7: mondayHours("10:00", "20:00"),
		4: mondayHours("08:00", "12:00"),
		9: mondayHours("11:00", "13:00"),
	}

	for i := 0; i < 20; i++ {
		got := ResolveDefault(domain.NewWeeklySchedule(), nil, locations)
		assert.Equal(t, "08:00", got[1].StartTime)
	}
}

func TestResolveDefaultCandidateWithoutHoursKeepsEmpty(t *testing.T) {
	locations := map[int64]domain.WeeklySchedule{
		1: mondayHours("08:00", "12:00"),
	}

	got := ResolveDefault(domain.NewWeeklySchedule(), []int64{5}, locations)

	assert.True(t, got.IsEmpty())
	assert.Len(t, got, 7)
}

func TestResolveDefaultKeepsOwnSchedule(t *testing.T) {
	own := mondayHours("07:00", "15:00")

	got := ResolveDefault(own, []int64{1}, map[int64]domain.WeeklySchedule{
		1: mondayHours("09:00", "17:00"),
	})

	assert.Equal(t, "07:00", got[1].StartTime)
}

func TestResolveDefaultKeepsBreakOnlyInput(t *testing.T) {
	own := domain.WeeklySchedule{
		2: {IsOffDay: false, Breaks: []domain.BreakInterval{{StartTime: "12:00", EndTime: "13:00"}}},
	}

	got := ResolveDefault(own, []int64{1}, map[int64]domain.WeeklySchedule{
		1: mondayHours("09:00", "17:00"),
	})

	assert.Len(t, got[2].Breaks, 1)
	assert.True(t, got[1].IsOffDay)
	assert.Len(t, got, 7)
}

func TestResolveDefaultSanitizesOwnSchedule(t *testing.T) {
	own := domain.WeeklySchedule{
		1: {StartTime: "09:00:00", EndTime: "18:00", Breaks: []domain.BreakInterval{
			{StartTime: "13:00", EndTime: "14:00"},
			{StartTime: "1pm", EndTime: "14:00"},
		}},
		2: {StartTime: "9:00", EndTime: "17:00"},
		3: {StartTime: "10:00", EndTime: "16:00"},
	}

	got := ResolveDefault(own, []int64{1}, map[int64]domain.WeeklySchedule{
		1: mondayHours("08:00", "20:00"),
	})

	assert.Equal(t, "09:00", got[1].StartTime)
	assert.Equal(t, []domain.BreakInterval{{StartTime: "13:00", EndTime: "14:00"}}, got[1].Breaks)
	assert.Equal(t, domain.OffDay(), got[2])
	assert.Equal(t, "10:00", got[3].StartTime)
	assert.Len(t, got, 7)
}

func TestResolveDefaultNoLocations(t *testing.T) {
	got := ResolveDefault(nil, nil, nil)

	assert.Len(t, got, 7)
	assert.True(t, got.IsEmpty())
}
