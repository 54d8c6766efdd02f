package catalog

import (
	"bookadmin/internal/domain"
)

// Group buckets services by category for the service picker.
//
// Known categories keep their input order, categories only reachable through a service are
// appended as they are discovered, and a service with several categories appears in each of them.
// Services without a category go to a trailing group with a nil Category, emitted only when it is
// not empty.
func Group(categories []domain.Category, services []domain.Service) []domain.ServiceGroup {
	groups := make([]domain.ServiceGroup, 0, len(categories)+1)
	index := make(map[int64]int, len(categories))

	add := func(category domain.Category) int {
		if i, ok := index[category.ID]; ok {
			return i
		}
		c := category
		groups = append(groups, domain.ServiceGroup{Category: &c, Services: []domain.Service{}})
		index[category.ID] = len(groups) - 1
		return len(groups) - 1
	}

	for _, category := range categories {
		add(category)
	}

	uncategorized := make([]domain.Service, 0)
	for _, service := range services {
		if len(service.Categories) == 0 {
			uncategorized = append(uncategorized, service)
			continue
		}

		seen := make(map[int64]struct{}, len(service.Categories))
		for _, category := range service.Categories {
			if _, dup := seen[category.ID]; dup {
				continue
			}
			seen[category.ID] = struct{}{}

			i := add(category)
			groups[i].Services = append(groups[i].Services, service)
		}
	}

	if len(uncategorized) > 0 {
		groups = append(groups, domain.ServiceGroup{Services: uncategorized})
	}

	return groups
}

// AllSelected reports whether every service of a non-empty group is in assigned.
func AllSelected(group domain.ServiceGroup, assigned []int64) bool {
	if len(group.Services) == 0 {
		return false
	}

	set := make(map[int64]struct{}, len(assigned))
	for _, id := range assigned {
		set[id] = struct{}{}
	}

	for _, service := range group.Services {
		if _, ok := set[service.ID]; !ok {
			return false
		}
	}
	return true
}

// States decorates groups with their select-all state for the given assignment.
func States(groups []domain.ServiceGroup, assigned []int64) []domain.ServiceGroupState {
	states := make([]domain.ServiceGroupState, 0, len(groups))
	for _, group := range groups {
		states = append(states, domain.ServiceGroupState{
			ServiceGroup: group,
			AllSelected:  AllSelected(group, assigned),
		})
	}
	return states
}
