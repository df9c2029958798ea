package store

import "errors"

var (
	ErrLinkNotFound   = errors.New("link not found")
	ErrFolderNotFound = errors.New("folder not found")
	ErrFolderNotEmpty = errors.New("folder still contains links")
)
