package schedule

import (
	"sort"

	"bookadmin/internal/domain"
)

// ResolveDefault picks the schedule shown on the employee form. An employee without any hours
// inherits the business hours of its first location, or of the lowest location id when it has none.
func ResolveDefault(
	entity domain.WeeklySchedule,
	candidateLocationIDs []int64,
	locationSchedules map[int64]domain.WeeklySchedule,
) domain.WeeklySchedule {
	if !entity.IsEmpty() {
		return withAllDays(entity)
	}

	locationID, ok := fallbackLocation(candidateLocationIDs, locationSchedules)
	if !ok {
		return withAllDays(entity)
	}

	hours, ok := locationSchedules[locationID]
	if !ok {
		return withAllDays(entity)
	}

	return NormalizeWeek(hours)
}

func fallbackLocation(candidates []int64, locationSchedules map[int64]domain.WeeklySchedule) (int64, bool) {
	if len(candidates) > 0 {
		return candidates[0], true
	}
	if len(locationSchedules) == 0 {
		return 0, false
	}

	ids := make([]int64, 0, len(locationSchedules))
	for id := range locationSchedules {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids[0], true
}

// withAllDays pads s to a full week and re-applies the time rule to every stored day.
// Unlike NormalizeWeek it keeps open days that only carry breaks.
func withAllDays(s domain.WeeklySchedule) domain.WeeklySchedule {
	result := domain.NewWeeklySchedule()
	for day, d := range s {
		if !domain.IsValidWeekday(day) || d.IsOffDay {
			continue
		}
		result[day] = sanitizeDay(d)
	}
	return result
}

func sanitizeDay(d domain.DaySchedule) domain.DaySchedule {
	breaks := make([]domain.BreakInterval, 0, len(d.Breaks))
	for _, b := range d.Breaks {
		start := SanitizeTime(b.StartTime)
		end := SanitizeTime(b.EndTime)
		if start == "" || end == "" {
			continue
		}
		breaks = append(breaks, domain.BreakInterval{StartTime: start, EndTime: end})
	}

	start := SanitizeTime(d.StartTime)
	end := SanitizeTime(d.EndTime)
	if start != "" && end != "" {
		return domain.DaySchedule{StartTime: start, EndTime: end, Breaks: breaks}
	}
	if len(breaks) > 0 {
		return domain.DaySchedule{Breaks: breaks}
	}
	return domain.OffDay()
}
