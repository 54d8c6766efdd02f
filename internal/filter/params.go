package filter

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Params is a read-only view of request parameters.
type Params interface {
	Get(key string) string
}

// Values adapts a plain map, e.g. gin's c.Request.URL.Query() flattened or test fixtures.
type Values map[string]string

func (v Values) Get(key string) string {
	return v[key]
}

var _ Params = url.Values{}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	// MaxPage keeps (page-1)*MaxPageSize inside int32, so the OFFSET stays valid on any platform.
	MaxPage = math.MaxInt32 / MaxPageSize
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	time.RFC3339,
	"02.01.2006",
	"01/02/2006",
}

func str(params Params, key string) string {
	return strings.TrimSpace(params.Get(key))
}

func optionalString(params Params, key string) *string {
	value := str(params, key)
	if value == "" {
		return nil
	}
	return &value
}

func positiveID(params Params, key string) *int64 {
	id, err := strconv.ParseInt(str(params, key), 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}

func page(params Params, key string) int {
	n, err := strconv.Atoi(str(params, key))
	if err != nil || n < 1 {
		return 1
	}
	if n > MaxPage {
		return MaxPage
	}
	return n
}

func pageSize(params Params, key string, fallback int) int {
	if fallback < 1 || fallback > MaxPageSize {
		fallback = DefaultPageSize
	}
	n, err := strconv.Atoi(str(params, key))
	if err != nil || n < 1 {
		return fallback
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

func parseDate(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t.In(loc), true
		}
	}
	return time.Time{}, false
}

// StartOfDay parses value and pins it to 00:00:00 of that date. Unparseable input gives nil.
func StartOfDay(value string, loc *time.Location) *time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t, ok := parseDate(value, loc)
	if !ok {
		return nil
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return &start
}

// EndOfDay parses value and pins it to 23:59:59 of that date. Unparseable input gives nil.
func EndOfDay(value string, loc *time.Location) *time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t, ok := parseDate(value, loc)
	if !ok {
		return nil
	}
	end := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, loc)
	return &end
}
