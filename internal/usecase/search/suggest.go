package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lorehub/relevance/internal/domain"
)

// minSuggestChars is the shortest partial query worth completing.
const minSuggestChars = 2

// Suggest returns title completions for a partial query. It is independent
// of the ranking pipeline: plain case-insensitive title matching, prefix hits
// first.
func (s *Service) Suggest(ctx context.Context, partial string, limit int) ([]string, error) {
	partial = strings.TrimSpace(partial)
	if len(partial) < minSuggestChars {
		return []string{}, nil
	}
	if limit <= 0 || limit > domain.MaxSuggestionLimit {
		limit = domain.MaxSuggestionLimit
	}

	items, err := s.store.List(ctx, domain.QueryFilters{})
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}

	lowered := strings.ToLower(partial)
	var prefix, infix []string
	seen := make(map[string]struct{})
	for i := range items {
		title := strings.TrimSpace(items[i].Title)
		key := strings.ToLower(title)
		if _, dup := seen[key]; dup {
			continue
		}
		switch {
		case strings.HasPrefix(key, lowered):
			seen[key] = struct{}{}
			prefix = append(prefix, title)
		case strings.Contains(key, lowered):
			seen[key] = struct{}{}
			infix = append(infix, title)
		}
	}

	sort.Strings(prefix)
	sort.Strings(infix)
	out := append(prefix, infix...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Filters enumerates the values a caller can filter on.
type Filters struct {
	ContentTypes      []string
	PhilosophyDomains []string
	Sources           []string
}

// AvailableFilters collects the distinct content types, philosophy domains,
// and sources present in the catalog.
func (s *Service) AvailableFilters(ctx context.Context) (Filters, error) {
	items, err := s.store.List(ctx, domain.QueryFilters{})
	if err != nil {
		return Filters{}, fmt.Errorf("list content: %w", err)
	}

	types := make(map[string]struct{})
	domains := make(map[string]struct{})
	sources := make(map[string]struct{})
	for i := range items {
		if t := string(items[i].Type); t != "" {
			types[t] = struct{}{}
		}
		if d := items[i].PhilosophyDomain; d != "" {
			domains[d] = struct{}{}
		}
		if src := items[i].Source; src != "" {
			sources[src] = struct{}{}
		}
	}

	return Filters{
		ContentTypes:      sortedKeys(types),
		PhilosophyDomains: sortedKeys(domains),
		Sources:           sortedKeys(sources),
	}, nil
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
