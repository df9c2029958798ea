package store

import (
	"sort"
	"strings"
)

// Sort keys accepted by FilterOptions. Anything else sorts by updatedAt.
const (
	SortByTitle     = "title"
	SortByURL       = "url"
	SortByCreatedAt = "createdAt"
	SortByUpdatedAt = "updatedAt"
)

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// FilterOptions narrows and orders the link list. Nil boolean fields mean
// "don't care". Tags match any-of, not all-of.
type FilterOptions struct {
	Search    string
	Tags      []string
	Folder    string
	Favorite  *bool
	Archived  *bool
	SortBy    string
	SortOrder string
}

// SearchLinks returns links whose title, URL, description or any tag
// contains the query, case-insensitively.
func (s *Store) SearchLinks(query string) []Link {
	return searchIn(s.Links(), query)
}

func searchIn(links []Link, query string) []Link {
	term := strings.ToLower(query)

	var result []Link
	for _, link := range links {
		if strings.Contains(strings.ToLower(link.Title), term) ||
			strings.Contains(strings.ToLower(link.URL), term) ||
			strings.Contains(strings.ToLower(link.Description), term) ||
			anyTagContains(link.Tags, term) {
			result = append(result, link)
		}
	}
	return result
}

func anyTagContains(tags []string, term string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// FilterLinks applies search, tag, folder, favorite and archived filters
// in that order, then sorts the result. The sort is stable so equal keys
// keep their relative order.
func (s *Store) FilterLinks(options FilterOptions) []Link {
	filtered := s.Links()

	if options.Search != "" {
		filtered = searchIn(filtered, options.Search)
	}

	if len(options.Tags) > 0 {
		filtered = keepLinks(filtered, func(l Link) bool {
			for _, tag := range options.Tags {
				if hasTag(l, tag) {
					return true
				}
			}
			return false
		})
	}

	if options.Folder != "" {
		filtered = keepLinks(filtered, func(l Link) bool { return l.Folder == options.Folder })
	}

	if options.Favorite != nil {
		filtered = keepLinks(filtered, func(l Link) bool { return l.Favorite == *options.Favorite })
	}

	if options.Archived != nil {
		filtered = keepLinks(filtered, func(l Link) bool { return l.Archived == *options.Archived })
	}

	sortLinks(filtered, options.SortBy, options.SortOrder)
	return filtered
}

func keepLinks(links []Link, keep func(Link) bool) []Link {
	var result []Link
	for _, link := range links {
		if keep(link) {
			result = append(result, link)
		}
	}
	return result
}

func sortLinks(links []Link, sortBy, sortOrder string) {
	less := func(a, b Link) bool {
		switch sortBy {
		case SortByTitle:
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		case SortByURL:
			return strings.ToLower(a.URL) < strings.ToLower(b.URL)
		case SortByCreatedAt:
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			return a.UpdatedAt.Before(b.UpdatedAt)
		}
	}

	sort.SliceStable(links, func(i, j int) bool {
		if sortOrder == SortAsc {
			return less(links[i], links[j])
		}
		return less(links[j], links[i])
	})
}
