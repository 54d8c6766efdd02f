package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookadmin/internal/domain"
)

func TestBuildCustomerFilter(t *testing.T) {
	f := BuildCustomerFilter(Values{}, 20)

	assert.Equal(t, domain.CustomerSortName, f.SortKey)
	assert.Equal(t, domain.SortAsc, f.SortDirection)
	assert.Nil(t, f.Search)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.PageSize)
}

func TestBuildCustomerFilterOverrides(t *testing.T) {
	f := BuildCustomerFilter(Values{
		"orderby":  "created_at",
		"order":    "desc",
		"search":   "smith",
		"paged":    "4",
		"per_page": "25",
	}, 20)

	assert.Equal(t, domain.CustomerSortCreatedAt, f.SortKey)
	assert.Equal(t, domain.SortDesc, f.SortDirection)
	require.NotNil(t, f.Search)
	assert.Equal(t, "smith", *f.Search)
	assert.Equal(t, 75, f.Offset())
	assert.Equal(t, 25, f.Limit())
}

func TestBuildCustomerFilterRejectsUnknownSort(t *testing.T) {
	f := BuildCustomerFilter(Values{"orderby": "password", "order": "up"}, 20)

	assert.Equal(t, domain.CustomerSortName, f.SortKey)
	assert.Equal(t, domain.SortAsc, f.SortDirection)
}

func TestBuildCustomerFilterCapsHugePage(t *testing.T) {
	f := BuildCustomerFilter(Values{"paged": "461168601842738791", "per_page": "100"}, 20)

	assert.Equal(t, MaxPage, f.Page)
	assert.Equal(t, (MaxPage-1)*MaxPageSize, f.Offset())
	assert.Positive(t, f.Offset())
}
