package notification

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholdersSortedAndUnique(t *testing.T) {
	list := Placeholders()

	require.GreaterOrEqual(t, len(list), 50)
	assert.True(t, sort.SliceIsSorted(list, func(i, j int) bool {
		return strings.Trim(list[i].Token, "{}") < strings.Trim(list[j].Token, "{}")
	}))

	seen := make(map[string]bool, len(list))
	for _, p := range list {
		assert.False(t, seen[p.Token], "duplicate %s", p.Token)
		seen[p.Token] = true
		assert.True(t, tokenPattern.MatchString(p.Token), p.Token)
		assert.NotEmpty(t, p.Description)
	}
}

func TestPlaceholdersReturnsCopy(t *testing.T) {
	list := Placeholders()
	list[0].Description = "changed"

	assert.NotEqual(t, "changed", Placeholders()[0].Description)
}

func TestDescribe(t *testing.T) {
	desc, ok := Describe("{client_name}")
	assert.True(t, ok)
	assert.Equal(t, "Full name of the customer", desc)

	_, ok = Describe("service_price")
	assert.True(t, ok)

	_, ok = Describe("{coupon_code}")
	assert.False(t, ok)
}

func TestUnknown(t *testing.T) {
	body := "Hi {client_name}, use {coupon_code} on {appointment_date}. {coupon_code} {Bad} {}"

	assert.Equal(t, []string{"{coupon_code}"}, Unknown(body))
	assert.Empty(t, Unknown("Hello {client_first_name}"))
	assert.Empty(t, Unknown(""))
}

func TestRender(t *testing.T) {
	body := "Dear {client_name}, see you on {appointment_date} at {appointment_start_time}. {coupon_code}"

	got := Render(body, map[string]string{
		"client_name":        "Anna",
		"{appointment_date}": "2024-03-10",
	})

	assert.Equal(t, "Dear Anna, see you on 2024-03-10 at . {coupon_code}", got)
}

func TestRenderWithoutTokens(t *testing.T) {
	body := strings.Repeat("plain ", 3)

	assert.Equal(t, body, Render(body, nil))
}
