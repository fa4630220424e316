package model

import "errors"

var (
	ErrDuplicateURL   = errors.New("a bookmark with this URL already exists")
	ErrNotFound       = errors.New("bookmark not found")
	ErrMalformedState = errors.New("stored bookmarks are malformed")
	ErrMissingTitle   = errors.New("title is required")
	ErrMissingURL     = errors.New("url is required")
)
