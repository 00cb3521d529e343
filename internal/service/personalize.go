package service

import (
	"placepilot/internal/model"
)

// Personalizer removes venues the user has already visited. Matching is
// by venue name: upstream sources do not always supply a stable id
// before enrichment, but the name is always present.
type Personalizer struct{}

// NewPersonalizer creates a new personalizer
func NewPersonalizer() *Personalizer {
	return &Personalizer{}
}

// Filter returns the venues not present in visitedNames, preserving
// input order. An empty or nil visited set is a no-op.
func (p *Personalizer) Filter(venues []*model.Venue, visitedNames []string) []*model.Venue {
	if len(visitedNames) == 0 {
		return venues
	}

	visited := make(map[string]bool, len(visitedNames))
	for _, name := range visitedNames {
		visited[name] = true
	}

	filtered := make([]*model.Venue, 0, len(venues))
	for _, v := range venues {
		if visited[v.Name] {
			continue
		}
		filtered = append(filtered, v)
	}

	return filtered
}
