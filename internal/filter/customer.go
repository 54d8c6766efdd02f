package filter

import (
	"strings"

	"bookadmin/internal/domain"
)

var customerSortKeys = map[string]domain.CustomerSortKey{
	"id":         domain.CustomerSortID,
	"name":       domain.CustomerSortName,
	"email":      domain.CustomerSortEmail,
	"created_at": domain.CustomerSortCreatedAt,
}

func BuildCustomerFilter(params Params, defaultPageSize int) domain.CustomerFilter {
	sortKey, ok := customerSortKeys[strings.ToLower(str(params, "orderby"))]
	if !ok {
		sortKey = domain.CustomerSortName
	}

	return domain.CustomerFilter{
		Search:        optionalString(params, "search"),
		SortKey:       sortKey,
		SortDirection: Direction(params.Get("order"), domain.SortAsc),
		Page:          page(params, "paged"),
		PageSize:      pageSize(params, "per_page", defaultPageSize),
	}
}
