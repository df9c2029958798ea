package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedQueryStore(t *testing.T) *Store {
	t.Helper()
	s := newTestStore(t)
	s.AddFolder("Development", "", "")
	s.AddFolder("Design", "", "")

	s.AddLink(LinkInput{
		URL:         "https://go.dev/doc",
		Title:       "Go Documentation",
		Description: "Official Go documentation",
		Tags:        []string{"go", "documentation"},
		Folder:      "Development",
		Favorite:    true,
	})
	time.Sleep(2 * time.Millisecond)
	s.AddLink(LinkInput{
		URL:         "https://tailwindcss.com/docs",
		Title:       "Tailwind CSS Documentation",
		Description: "Utility-first CSS framework",
		Tags:        []string{"css", "webdev"},
		Folder:      "Design",
	})
	time.Sleep(2 * time.Millisecond)
	s.AddLink(LinkInput{
		URL:      "https://old.example.com",
		Title:    "Old Reference",
		Tags:     []string{"go"},
		Archived: true,
	})
	return s
}

func TestSearchLinks(t *testing.T) {
	s := seedQueryStore(t)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"matches title", "tailwind", []string{"Tailwind CSS Documentation"}},
		{"matches url", "go.dev", []string{"Go Documentation"}},
		{"matches description", "utility-first", []string{"Tailwind CSS Documentation"}},
		{"matches tag", "webdev", []string{"Tailwind CSS Documentation"}},
		{"case insensitive", "GO DOC", []string{"Go Documentation"}},
		{"multiple results", "documentation", []string{"Go Documentation", "Tailwind CSS Documentation"}},
		{"no results", "zzzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.SearchLinks(tt.query)
			var titles []string
			for _, link := range got {
				titles = append(titles, link.Title)
			}
			assert.ElementsMatch(t, tt.want, titles)
		})
	}
}

func TestFilterLinks_ByTagAnyMatch(t *testing.T) {
	s := seedQueryStore(t)

	got := s.FilterLinks(FilterOptions{Tags: []string{"go", "css"}})
	assert.Len(t, got, 3, "any-of tag match")

	got = s.FilterLinks(FilterOptions{Tags: []string{"css"}})
	require.Len(t, got, 1)
	assert.Equal(t, "Tailwind CSS Documentation", got[0].Title)
}

func TestFilterLinks_ByFolder(t *testing.T) {
	s := seedQueryStore(t)

	got := s.FilterLinks(FilterOptions{Folder: "Development"})
	require.Len(t, got, 1)
	assert.Equal(t, "Go Documentation", got[0].Title)
}

func TestFilterLinks_ByFavoriteAndArchived(t *testing.T) {
	s := seedQueryStore(t)

	fav := true
	got := s.FilterLinks(FilterOptions{Favorite: &fav})
	require.Len(t, got, 1)
	assert.Equal(t, "Go Documentation", got[0].Title)

	notArchived := false
	got = s.FilterLinks(FilterOptions{Archived: &notArchived})
	assert.Len(t, got, 2)
}

func TestFilterLinks_CombinedPipeline(t *testing.T) {
	s := newTestStore(t)
	s.AddFolder("Fruit", "", "")

	fav := true
	s.AddLink(LinkInput{URL: "https://c.example", Title: "Cherry", Tags: []string{"red"}, Folder: "Fruit", Favorite: true})
	s.AddLink(LinkInput{URL: "https://b.example", Title: "Banana", Tags: []string{"yellow"}, Folder: "Fruit", Favorite: true})
	s.AddLink(LinkInput{URL: "https://a.example", Title: "Apple", Tags: []string{"red"}, Folder: "Fruit"})

	got := s.FilterLinks(FilterOptions{
		Tags:      []string{"red", "yellow"},
		Folder:    "Fruit",
		Favorite:  &fav,
		SortBy:    SortByTitle,
		SortOrder: SortAsc,
	})

	require.Len(t, got, 2)
	assert.Equal(t, "Banana", got[0].Title)
	assert.Equal(t, "Cherry", got[1].Title)
}

func TestFilterLinks_SortOrders(t *testing.T) {
	s := seedQueryStore(t)

	byTitleAsc := s.FilterLinks(FilterOptions{SortBy: SortByTitle, SortOrder: SortAsc})
	require.Len(t, byTitleAsc, 3)
	assert.Equal(t, "Go Documentation", byTitleAsc[0].Title)
	assert.Equal(t, "Old Reference", byTitleAsc[1].Title)
	assert.Equal(t, "Tailwind CSS Documentation", byTitleAsc[2].Title)

	byTitleDesc := s.FilterLinks(FilterOptions{SortBy: SortByTitle, SortOrder: SortDesc})
	assert.Equal(t, "Tailwind CSS Documentation", byTitleDesc[0].Title)

	byCreatedDesc := s.FilterLinks(FilterOptions{SortBy: SortByCreatedAt, SortOrder: SortDesc})
	assert.Equal(t, "Old Reference", byCreatedDesc[0].Title, "newest first")

	// Unrecognized sort key falls back to updatedAt.
	byDefault := s.FilterLinks(FilterOptions{SortBy: "bogus", SortOrder: SortAsc})
	assert.Equal(t, "Go Documentation", byDefault[0].Title)
}

func TestFilterLinks_StableSort(t *testing.T) {
	s := newTestStore(t)
	s.AddLink(LinkInput{URL: "https://first.example", Title: "Same"})
	s.AddLink(LinkInput{URL: "https://second.example", Title: "Same"})
	s.AddLink(LinkInput{URL: "https://third.example", Title: "Same"})

	got := s.FilterLinks(FilterOptions{SortBy: SortByTitle, SortOrder: SortAsc})
	require.Len(t, got, 3)
	assert.Equal(t, "https://first.example", got[0].URL)
	assert.Equal(t, "https://second.example", got[1].URL)
	assert.Equal(t, "https://third.example", got[2].URL)
}
