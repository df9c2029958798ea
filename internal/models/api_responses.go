package models

// Metadata is the result of extracting page metadata from a URL.
// Description and Favicon may be empty when the page offers no candidate.
type Metadata struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Favicon     string `json:"favicon,omitempty"`
}

// AddLinkInput is the payload for attaching a link to a collection. The
// caller normally supplies extractor output but may fill fields by hand.
type AddLinkInput struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Favicon     string `json:"favicon"`
	Status      string `json:"status"`
}

// CreateCollectionInput is the payload for creating a collection.
type CreateCollectionInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	IsPublic    *bool  `json:"is_public"`
}
