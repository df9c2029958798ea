package store

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	s, err := New(nil, logger)
	require.NoError(t, err)
	return s
}

func TestNew_NilLoggerAndRepo(t *testing.T) {
	s, err := New(nil, nil)
	require.NoError(t, err)

	link := s.AddLink(LinkInput{URL: "https://example.com", Title: "Example"})
	require.NotEmpty(t, link.ID)
}

func TestAddLink_CreatesTagsAndCountsFolder(t *testing.T) {
	s := newTestStore(t)
	s.AddFolder("Development", "code", "#3B82F6")

	link := s.AddLink(LinkInput{
		URL:    "https://go.dev/doc",
		Title:  "Go Documentation",
		Tags:   []string{"go", "documentation"},
		Folder: "Development",
	})

	require.NotEmpty(t, link.ID)
	assert.False(t, link.CreatedAt.IsZero())
	assert.Equal(t, link.CreatedAt, link.UpdatedAt)

	folders := s.Folders()
	require.Len(t, folders, 1)
	assert.Equal(t, 1, folders[0].LinkCount)

	tags := s.Tags()
	require.Len(t, tags, 2)
	for _, tag := range tags {
		assert.Equal(t, 1, tag.LinkCount)
		assert.NotEmpty(t, tag.Color)
	}
}

func TestAddLink_UnknownFolderKeptOnLink(t *testing.T) {
	s := newTestStore(t)

	link := s.AddLink(LinkInput{
		URL:    "https://example.com",
		Title:  "Example",
		Folder: "Nonexistent",
	})

	assert.Equal(t, "Nonexistent", link.Folder)
	assert.Empty(t, s.Folders())
}

func TestAddLink_ExistingTagIncremented(t *testing.T) {
	s := newTestStore(t)

	s.AddLink(LinkInput{URL: "https://a.example", Title: "A", Tags: []string{"go"}})
	s.AddLink(LinkInput{URL: "https://b.example", Title: "B", Tags: []string{"go"}})

	tags := s.Tags()
	require.Len(t, tags, 1)
	assert.Equal(t, 2, tags[0].LinkCount)
}

func TestUpdateLink_ReconcilesFolderCounts(t *testing.T) {
	s := newTestStore(t)
	s.AddFolder("Development", "", "")
	s.AddFolder("Design", "", "")

	link := s.AddLink(LinkInput{
		URL:    "https://example.com",
		Title:  "Example",
		Folder: "Development",
	})

	newFolder := "Design"
	_, err := s.UpdateLink(link.ID, LinkUpdate{Folder: &newFolder})
	require.NoError(t, err)

	for _, folder := range s.Folders() {
		switch folder.Name {
		case "Development":
			assert.Equal(t, 0, folder.LinkCount, "old folder count should drop")
		case "Design":
			assert.Equal(t, 1, folder.LinkCount, "new folder count should rise")
		}
	}
}

func TestUpdateLink_ReconcilesTagCounts(t *testing.T) {
	s := newTestStore(t)

	link := s.AddLink(LinkInput{
		URL:   "https://example.com",
		Title: "Example",
		Tags:  []string{"go", "docs"},
	})

	newTags := []string{"docs", "reference"}
	updated, err := s.UpdateLink(link.ID, LinkUpdate{Tags: &newTags})
	require.NoError(t, err)
	assert.Equal(t, newTags, updated.Tags)

	tags := s.Tags()
	names := make(map[string]int, len(tags))
	for _, tag := range tags {
		names[tag.Name] = tag.LinkCount
	}
	assert.NotContains(t, names, "go", "tag with zero links should be pruned")
	assert.Equal(t, 1, names["docs"])
	assert.Equal(t, 1, names["reference"])
}

func TestUpdateLink_TouchesUpdatedAt(t *testing.T) {
	s := newTestStore(t)

	link := s.AddLink(LinkInput{URL: "https://example.com", Title: "Example"})

	title := "Renamed"
	updated, err := s.UpdateLink(link.ID, LinkUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.True(t, updated.UpdatedAt.After(link.UpdatedAt) || updated.UpdatedAt.Equal(link.UpdatedAt))
	assert.Equal(t, link.CreatedAt, updated.CreatedAt)
}

func TestUpdateLink_NotFound(t *testing.T) {
	s := newTestStore(t)

	title := "x"
	_, err := s.UpdateLink("missing", LinkUpdate{Title: &title})
	assert.ErrorIs(t, err, ErrLinkNotFound)
}

func TestDeleteLink_DecrementsAndPrunes(t *testing.T) {
	s := newTestStore(t)
	s.AddFolder("Development", "", "")

	keep := s.AddLink(LinkInput{URL: "https://a.example", Title: "A", Tags: []string{"shared"}})
	gone := s.AddLink(LinkInput{
		URL:    "https://b.example",
		Title:  "B",
		Tags:   []string{"shared", "solo"},
		Folder: "Development",
	})

	require.NoError(t, s.DeleteLink(gone.ID))

	links := s.Links()
	require.Len(t, links, 1)
	assert.Equal(t, keep.ID, links[0].ID)

	folders := s.Folders()
	require.Len(t, folders, 1)
	assert.Equal(t, 0, folders[0].LinkCount)

	tags := s.Tags()
	require.Len(t, tags, 1, "solo tag should be pruned, shared tag kept")
	assert.Equal(t, "shared", tags[0].Name)
	assert.Equal(t, 1, tags[0].LinkCount)
}

func TestDeleteLink_NotFound(t *testing.T) {
	s := newTestStore(t)
	assert.ErrorIs(t, s.DeleteLink("missing"), ErrLinkNotFound)
}

func TestToggleFavoriteAndArchive(t *testing.T) {
	s := newTestStore(t)
	link := s.AddLink(LinkInput{URL: "https://example.com", Title: "Example"})

	fav, err := s.ToggleFavorite(link.ID)
	require.NoError(t, err)
	assert.True(t, fav.Favorite)

	fav, err = s.ToggleFavorite(link.ID)
	require.NoError(t, err)
	assert.False(t, fav.Favorite)

	arch, err := s.ToggleArchive(link.ID)
	require.NoError(t, err)
	assert.True(t, arch.Archived)
}

func TestDeleteFolder_RefusedWhenNonEmpty(t *testing.T) {
	s := newTestStore(t)
	folder := s.AddFolder("Development", "", "")
	s.AddLink(LinkInput{URL: "https://example.com", Title: "Example", Folder: "Development"})

	assert.ErrorIs(t, s.DeleteFolder(folder.ID), ErrFolderNotEmpty)
	require.Len(t, s.Folders(), 1)
}

func TestDeleteFolder_EmptyFolderRemoved(t *testing.T) {
	s := newTestStore(t)
	folder := s.AddFolder("Empty", "", "")

	require.NoError(t, s.DeleteFolder(folder.ID))
	assert.Empty(t, s.Folders())
}

func TestDeleteFolder_NotFound(t *testing.T) {
	s := newTestStore(t)
	assert.ErrorIs(t, s.DeleteFolder("missing"), ErrFolderNotFound)
}

func TestUpdateFolder(t *testing.T) {
	s := newTestStore(t)
	folder := s.AddFolder("Dev", "code", "#000000")

	name := "Development"
	color := "#3B82F6"
	updated, err := s.UpdateFolder(folder.ID, FolderUpdate{Name: &name, Color: &color})
	require.NoError(t, err)
	assert.Equal(t, "Development", updated.Name)
	assert.Equal(t, "#3B82F6", updated.Color)
	assert.Equal(t, "code", updated.Icon)
}

func TestAddFolder_RandomColorWhenUnset(t *testing.T) {
	s := newTestStore(t)
	folder := s.AddFolder("Anything", "", "")

	assert.Regexp(t, `^#[0-9a-f]{6}$`, folder.Color)
}

func TestClearAllLinks(t *testing.T) {
	s := newTestStore(t)
	s.AddFolder("Development", "", "")
	s.AddLink(LinkInput{URL: "https://example.com", Title: "Example", Tags: []string{"go"}, Folder: "Development"})

	s.ClearAllLinks()

	assert.Empty(t, s.Links())
	assert.Empty(t, s.Tags())
	folders := s.Folders()
	require.Len(t, folders, 1, "folders survive a clear")
	assert.Equal(t, 0, folders[0].LinkCount)
}

func TestExportImportRoundTrip(t *testing.T) {
	s := newTestStore(t)
	s.AddLink(LinkInput{URL: "https://a.example", Title: "A", Tags: []string{"go"}})
	s.AddLink(LinkInput{URL: "https://b.example", Title: "B"})

	exported := s.ExportLinks()
	require.Len(t, exported, 2)

	s.ClearAllLinks()
	require.Empty(t, s.Links())

	s.ImportLinks(exported)
	assert.Equal(t, exported, s.Links())
}

func TestImportLinks_LeavesFoldersAndTagsUntouched(t *testing.T) {
	s := newTestStore(t)
	s.AddFolder("Development", "", "")
	s.AddTag("go", "#00ADD8")

	s.ImportLinks([]Link{{ID: "imported", URL: "https://example.com", Title: "Example"}})

	assert.Len(t, s.Links(), 1)
	assert.Len(t, s.Folders(), 1)
	assert.Len(t, s.Tags(), 1)
}

func TestGetters(t *testing.T) {
	s := newTestStore(t)
	s.AddFolder("Development", "", "")

	a := s.AddLink(LinkInput{URL: "https://a.example", Title: "A", Folder: "Development", Favorite: true})
	b := s.AddLink(LinkInput{URL: "https://b.example", Title: "B", Tags: []string{"go"}, Archived: true})

	got, ok := s.GetLinkByID(a.ID)
	require.True(t, ok)
	assert.Equal(t, a.URL, got.URL)

	_, ok = s.GetLinkByID("missing")
	assert.False(t, ok)

	byFolder := s.GetLinksByFolder("Development")
	require.Len(t, byFolder, 1)
	assert.Equal(t, a.ID, byFolder[0].ID)

	byTag := s.GetLinksByTag("go")
	require.Len(t, byTag, 1)
	assert.Equal(t, b.ID, byTag[0].ID)

	favorites := s.GetFavoriteLinks()
	require.Len(t, favorites, 1)
	assert.Equal(t, a.ID, favorites[0].ID)

	archived := s.GetArchivedLinks()
	require.Len(t, archived, 1)
	assert.Equal(t, b.ID, archived[0].ID)
}
