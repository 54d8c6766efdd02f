package schedule

import (
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"bookadmin/internal/domain"
)

var (
	timePattern        = regexp.MustCompile(`^(0\d|1\d|2[0-3]):[0-5]\d$`)
	timeSecondsPattern = regexp.MustCompile(`^\d\d:\d\d:\d\d$`)
)

// Accepted field names, first present wins.
var (
	offDayAliases = []string{"is_off_day", "is_off"}
	startAliases  = []string{"start_time", "start"}
	endAliases    = []string{"end_time", "end"}
)

const breaksField = "breaks"

type entry struct {
	key   string
	value any
}

// Normalize turns raw weekly schedule input (decoded JSON or form data) into a full 7-day schedule.
// Malformed input never fails: unknown days are ignored and bad times close the day.
func Normalize(raw any) domain.WeeklySchedule {
	schedule := domain.NewWeeklySchedule()

	for _, e := range entries(raw) {
		day := toInt(e.key)
		if !domain.IsValidWeekday(day) {
			continue
		}

		fields, ok := e.value.(map[string]any)
		if !ok {
			schedule[day] = domain.OffDay()
			continue
		}

		schedule[day] = normalizeDay(fields)
	}

	return schedule
}

// NormalizeWeek applies the Normalize rules to an already typed schedule.
func NormalizeWeek(s domain.WeeklySchedule) domain.WeeklySchedule {
	schedule := domain.NewWeeklySchedule()

	for day, d := range s {
		if !domain.IsValidWeekday(day) || d.IsOffDay {
			continue
		}

		start := SanitizeTime(d.StartTime)
		end := SanitizeTime(d.EndTime)
		if start == "" || end == "" {
			continue
		}

		breaks := make([]domain.BreakInterval, 0, len(d.Breaks))
		for _, b := range d.Breaks {
			bStart := SanitizeTime(b.StartTime)
			bEnd := SanitizeTime(b.EndTime)
			if bStart == "" || bEnd == "" {
				continue
			}
			breaks = append(breaks, domain.BreakInterval{StartTime: bStart, EndTime: bEnd})
		}

		schedule[day] = domain.DaySchedule{
			StartTime: start,
			EndTime:   end,
			Breaks:    breaks,
		}
	}

	return schedule
}

func normalizeDay(fields map[string]any) domain.DaySchedule {
	if off, ok := lookup(fields, offDayAliases); ok && truthy(off) {
		return domain.OffDay()
	}

	start := timeField(fields, startAliases)
	end := timeField(fields, endAliases)
	if start == "" || end == "" {
		return domain.OffDay()
	}

	breaks := make([]domain.BreakInterval, 0)
	for _, item := range list(fields[breaksField]) {
		breakFields, ok := item.(map[string]any)
		if !ok {
			continue
		}

		bStart := timeField(breakFields, startAliases)
		bEnd := timeField(breakFields, endAliases)
		if bStart == "" || bEnd == "" {
			continue
		}

		breaks = append(breaks, domain.BreakInterval{StartTime: bStart, EndTime: bEnd})
	}

	return domain.DaySchedule{
		StartTime: start,
		EndTime:   end,
		IsOffDay:  false,
		Breaks:    breaks,
	}
}

// SanitizeTime returns value as HH:MM, or "" when it is not a valid 24h time.
// A trailing seconds part (HH:MM:SS, as stored by TIME columns) is cut off.
func SanitizeTime(value string) string {
	value = strings.TrimSpace(value)
	if timeSecondsPattern.MatchString(value) {
		value = value[:5]
	}
	if !timePattern.MatchString(value) {
		return ""
	}
	return value
}

func timeField(fields map[string]any, aliases []string) string {
	value, ok := lookup(fields, aliases)
	if !ok {
		return ""
	}
	s, ok := value.(string)
	if !ok {
		return ""
	}
	return SanitizeTime(s)
}

func lookup(fields map[string]any, aliases []string) (any, bool) {
	for _, alias := range aliases {
		if value, ok := fields[alias]; ok && value != nil {
			return value, true
		}
	}
	return nil, false
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "0", "false":
			return false
		}
		return true
	case float64:
		return v != 0
	case float32:
		return v != 0
	case int:
		return v != 0
	case int64:
		return v != 0
	case json.Number:
		f, err := v.Float64()
		return err == nil && f != 0
	default:
		return true
	}
}

// toInt mimics an integer cast: leading digits are parsed, anything else is 0.
func toInt(key string) int {
	key = strings.TrimSpace(key)
	end := 0
	for end < len(key) && key[end] >= '0' && key[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(key[:end])
	if err != nil {
		return 0
	}
	return n
}

func entries(raw any) []entry {
	switch v := raw.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		result := make([]entry, 0, len(keys))
		for _, k := range keys {
			result = append(result, entry{key: k, value: v[k]})
		}
		return result
	case map[int]any:
		keys := make([]int, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Ints(keys)

		result := make([]entry, 0, len(keys))
		for _, k := range keys {
			result = append(result, entry{key: strconv.Itoa(k), value: v[k]})
		}
		return result
	case []any:
		result := make([]entry, 0, len(v))
		for i, item := range v {
			result = append(result, entry{key: strconv.Itoa(i), value: item})
		}
		return result
	default:
		return nil
	}
}

func list(raw any) []any {
	switch v := raw.(type) {
	case []any:
		return v
	case map[string]any:
		items := entries(v)
		sort.SliceStable(items, func(i, j int) bool {
			return toInt(items[i].key) < toInt(items[j].key)
		})

		result := make([]any, 0, len(items))
		for _, item := range items {
			result = append(result, item.value)
		}
		return result
	default:
		return nil
	}
}
