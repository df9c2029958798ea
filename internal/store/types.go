package store

import "time"

// LinkMetadata carries optional page metadata captured when a link is saved.
type LinkMetadata struct {
	Image    string `json:"image,omitempty"`
	SiteName string `json:"siteName,omitempty"`
	ReadTime int    `json:"readTime,omitempty"`
}

// Link is a saved bookmark with organizational fields.
type Link struct {
	ID          string        `json:"id"`
	URL         string        `json:"url"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Tags        []string      `json:"tags"`
	Folder      string        `json:"folder,omitempty"`
	Favorite    bool          `json:"favorite"`
	Archived    bool          `json:"archived"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	Metadata    *LinkMetadata `json:"metadata,omitempty"`
}

// Folder groups links by name. LinkCount is maintained by the store and
// always reflects the number of links currently assigned to the folder.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon,omitempty"`
	Color     string    `json:"color"`
	LinkCount int       `json:"linkCount"`
	CreatedAt time.Time `json:"createdAt"`
}

// Tag labels links. Tags with no remaining links are removed automatically.
type Tag struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	LinkCount int    `json:"linkCount"`
}

// LinkInput is the caller-supplied part of a new link.
type LinkInput struct {
	URL         string
	Title       string
	Description string
	Tags        []string
	Folder      string
	Favorite    bool
	Archived    bool
	Metadata    *LinkMetadata
}

// LinkUpdate is a partial update; nil fields keep their current value.
type LinkUpdate struct {
	URL         *string
	Title       *string
	Description *string
	Tags        *[]string
	Folder      *string
	Favorite    *bool
	Archived    *bool
	Metadata    *LinkMetadata
}

// FolderUpdate is a partial folder update; nil fields keep their current value.
type FolderUpdate struct {
	Name  *string
	Icon  *string
	Color *string
}
