// Package store implements the local bookmark store: links organized into
// folders and tags with derived counts, kept consistent on every mutation
// and persisted as a single snapshot.
package store

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Repository persists store snapshots.
type Repository interface {
	Save(snapshot *Snapshot) error
	Load() (*Snapshot, error)
}

// Store is the mutable aggregate of links, folders and tags. All access
// goes through its methods so the folder and tag counts stay correct.
type Store struct {
	mu      sync.RWMutex
	links   []Link
	folders []Folder
	tags    []Tag

	repo Repository
	log  logrus.FieldLogger
}

// New creates a store backed by the given repository, loading the previous
// snapshot if one exists. A nil repository keeps the store memory-only; a
// nil logger falls back to the standard logrus logger.
func New(repo Repository, logger logrus.FieldLogger) (*Store, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	s := &Store{
		repo: repo,
		log:  logger.WithField("component", "store"),
	}

	if repo != nil {
		snapshot, err := repo.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load snapshot: %w", err)
		}
		if snapshot != nil {
			s.links = snapshot.Links
			s.folders = snapshot.Folders
			s.tags = snapshot.Tags
			s.log.WithFields(logrus.Fields{
				"links":   len(s.links),
				"folders": len(s.folders),
				"tags":    len(s.tags),
			}).Info("Loaded snapshot")
		}
	}

	return s, nil
}

// persist writes the current state. Called with the write lock held.
// Persistence failures are logged but do not fail the mutation.
func (s *Store) persist() {
	if s.repo == nil {
		return
	}
	snapshot := &Snapshot{Links: s.links, Folders: s.folders, Tags: s.tags}
	if err := s.repo.Save(snapshot); err != nil {
		s.log.WithError(err).Error("Failed to persist snapshot")
	}
}

func randomColor() string {
	return fmt.Sprintf("#%06x", rand.Intn(0x1000000))
}

// AddLink appends a new link, bumping its folder's count and the count of
// each tag. Unknown tags are created with a random color; an unknown
// folder name is kept on the link but no folder record is created.
func (s *Store) AddLink(input LinkInput) *Link {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	link := Link{
		ID:          uuid.NewString(),
		URL:         input.URL,
		Title:       input.Title,
		Description: input.Description,
		Tags:        append([]string(nil), input.Tags...),
		Folder:      input.Folder,
		Favorite:    input.Favorite,
		Archived:    input.Archived,
		CreatedAt:   now,
		UpdatedAt:   now,
		Metadata:    input.Metadata,
	}

	s.links = append(s.links, link)
	s.adjustFolderCount(link.Folder, 1)
	for _, tag := range link.Tags {
		s.incrementTag(tag)
	}

	s.log.WithFields(logrus.Fields{"id": link.ID, "url": link.URL}).Info("Link added")
	s.persist()
	return &link
}

// UpdateLink merges updates into a link and refreshes its updatedAt. When
// the folder or tag set changes, the affected counts are reconciled:
// the old folder and tags are decremented and the new ones incremented,
// with tags reaching zero pruned.
func (s *Store) UpdateLink(id string, updates LinkUpdate) (*Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.linkIndex(id)
	if idx < 0 {
		return nil, ErrLinkNotFound
	}
	link := &s.links[idx]

	if updates.URL != nil {
		link.URL = *updates.URL
	}
	if updates.Title != nil {
		link.Title = *updates.Title
	}
	if updates.Description != nil {
		link.Description = *updates.Description
	}
	if updates.Folder != nil && *updates.Folder != link.Folder {
		s.adjustFolderCount(link.Folder, -1)
		s.adjustFolderCount(*updates.Folder, 1)
		link.Folder = *updates.Folder
	}
	if updates.Tags != nil {
		for _, tag := range link.Tags {
			s.decrementTag(tag)
		}
		link.Tags = append([]string(nil), (*updates.Tags)...)
		for _, tag := range link.Tags {
			s.incrementTag(tag)
		}
	}
	if updates.Favorite != nil {
		link.Favorite = *updates.Favorite
	}
	if updates.Archived != nil {
		link.Archived = *updates.Archived
	}
	if updates.Metadata != nil {
		link.Metadata = updates.Metadata
	}
	link.UpdatedAt = time.Now()

	s.persist()
	result := *link
	return &result, nil
}

// DeleteLink removes a link, decrementing its folder count and pruning any
// of its tags that no longer label other links.
func (s *Store) DeleteLink(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.linkIndex(id)
	if idx < 0 {
		return ErrLinkNotFound
	}
	link := s.links[idx]

	s.links = append(s.links[:idx], s.links[idx+1:]...)
	s.adjustFolderCount(link.Folder, -1)
	for _, tag := range link.Tags {
		s.decrementTag(tag)
	}

	s.log.WithFields(logrus.Fields{"id": id, "url": link.URL}).Info("Link deleted")
	s.persist()
	return nil
}

// ToggleFavorite flips a link's favorite flag.
func (s *Store) ToggleFavorite(id string) (*Link, error) {
	return s.toggle(id, func(l *Link) { l.Favorite = !l.Favorite })
}

// ToggleArchive flips a link's archived flag.
func (s *Store) ToggleArchive(id string) (*Link, error) {
	return s.toggle(id, func(l *Link) { l.Archived = !l.Archived })
}

func (s *Store) toggle(id string, flip func(*Link)) (*Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.linkIndex(id)
	if idx < 0 {
		return nil, ErrLinkNotFound
	}
	flip(&s.links[idx])
	s.links[idx].UpdatedAt = time.Now()

	s.persist()
	result := s.links[idx]
	return &result, nil
}

// AddFolder creates a folder with zero links. An empty color gets a random
// display color.
func (s *Store) AddFolder(name, icon, color string) *Folder {
	s.mu.Lock()
	defer s.mu.Unlock()

	if color == "" {
		color = randomColor()
	}
	folder := Folder{
		ID:        uuid.NewString(),
		Name:      name,
		Icon:      icon,
		Color:     color,
		CreatedAt: time.Now(),
	}
	s.folders = append(s.folders, folder)

	s.persist()
	return &folder
}

// UpdateFolder merges updates into a folder. Renaming does not move links;
// links keep the name they were filed under.
func (s *Store) UpdateFolder(id string, updates FolderUpdate) (*Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.folders {
		if s.folders[i].ID != id {
			continue
		}
		if updates.Name != nil {
			s.folders[i].Name = *updates.Name
		}
		if updates.Icon != nil {
			s.folders[i].Icon = *updates.Icon
		}
		if updates.Color != nil {
			s.folders[i].Color = *updates.Color
		}
		s.persist()
		result := s.folders[i]
		return &result, nil
	}
	return nil, ErrFolderNotFound
}

// DeleteFolder removes an empty folder. Folders still holding links are
// refused.
func (s *Store) DeleteFolder(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.folders {
		if s.folders[i].ID != id {
			continue
		}
		if s.folders[i].LinkCount > 0 {
			return ErrFolderNotEmpty
		}
		s.folders = append(s.folders[:i], s.folders[i+1:]...)
		s.persist()
		return nil
	}
	return ErrFolderNotFound
}

// AddTag creates a tag with zero links. Tags are normally created
// implicitly by AddLink; this exists for pre-creating a tag with a chosen
// color.
func (s *Store) AddTag(name, color string) *Tag {
	s.mu.Lock()
	defer s.mu.Unlock()

	if color == "" {
		color = randomColor()
	}
	tag := Tag{
		ID:    uuid.NewString(),
		Name:  name,
		Color: color,
	}
	s.tags = append(s.tags, tag)

	s.persist()
	return &tag
}

// GetLinkByID returns a copy of the link with the given id.
func (s *Store) GetLinkByID(id string) (*Link, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.linkIndex(id)
	if idx < 0 {
		return nil, false
	}
	result := s.links[idx]
	return &result, true
}

// GetLinksByFolder returns all links filed under the folder name.
func (s *Store) GetLinksByFolder(folderName string) []Link {
	return s.collect(func(l Link) bool { return l.Folder == folderName })
}

// GetLinksByTag returns all links carrying the tag.
func (s *Store) GetLinksByTag(tagName string) []Link {
	return s.collect(func(l Link) bool { return hasTag(l, tagName) })
}

// GetFavoriteLinks returns all favorite links.
func (s *Store) GetFavoriteLinks() []Link {
	return s.collect(func(l Link) bool { return l.Favorite })
}

// GetArchivedLinks returns all archived links.
func (s *Store) GetArchivedLinks() []Link {
	return s.collect(func(l Link) bool { return l.Archived })
}

// Links returns a copy of all links.
func (s *Store) Links() []Link {
	return s.collect(func(Link) bool { return true })
}

// Folders returns a copy of all folders.
func (s *Store) Folders() []Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Folder(nil), s.folders...)
}

// Tags returns a copy of all tags.
func (s *Store) Tags() []Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Tag(nil), s.tags...)
}

// ClearAllLinks removes every link and tag. Folders survive with their
// counts reset to zero.
func (s *Store) ClearAllLinks() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.links = nil
	s.tags = nil
	for i := range s.folders {
		s.folders[i].LinkCount = 0
	}

	s.log.Info("Cleared all links")
	s.persist()
}

// ExportLinks returns a copy of the link container for backup.
func (s *Store) ExportLinks() []Link {
	return s.Links()
}

// ImportLinks replaces the link container. Folders and tags are left
// untouched; counts are not rebuilt from the imported links.
func (s *Store) ImportLinks(links []Link) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.links = append([]Link(nil), links...)

	s.log.WithField("links", len(links)).Info("Imported links")
	s.persist()
}

// linkIndex returns the index of the link with the given id, or -1.
// Caller must hold the lock.
func (s *Store) linkIndex(id string) int {
	for i := range s.links {
		if s.links[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) collect(keep func(Link) bool) []Link {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []Link
	for _, link := range s.links {
		if keep(link) {
			result = append(result, link)
		}
	}
	return result
}

// adjustFolderCount shifts a folder's count by delta, flooring at zero.
// Unknown folder names are ignored. Caller must hold the lock.
func (s *Store) adjustFolderCount(folderName string, delta int) {
	if folderName == "" {
		return
	}
	for i := range s.folders {
		if s.folders[i].Name == folderName {
			s.folders[i].LinkCount += delta
			if s.folders[i].LinkCount < 0 {
				s.folders[i].LinkCount = 0
			}
			return
		}
	}
}

// incrementTag bumps an existing tag's count or creates the tag with
// count 1. Caller must hold the lock.
func (s *Store) incrementTag(name string) {
	for i := range s.tags {
		if s.tags[i].Name == name {
			s.tags[i].LinkCount++
			return
		}
	}
	s.tags = append(s.tags, Tag{
		ID:        uuid.NewString(),
		Name:      name,
		Color:     randomColor(),
		LinkCount: 1,
	})
}

// decrementTag lowers a tag's count, pruning it at zero. Caller must hold
// the lock.
func (s *Store) decrementTag(name string) {
	for i := range s.tags {
		if s.tags[i].Name != name {
			continue
		}
		s.tags[i].LinkCount--
		if s.tags[i].LinkCount <= 0 {
			s.tags = append(s.tags[:i], s.tags[i+1:]...)
		}
		return
	}
}

func hasTag(l Link, name string) bool {
	for _, t := range l.Tags {
		if t == name {
			return true
		}
	}
	return false
}
