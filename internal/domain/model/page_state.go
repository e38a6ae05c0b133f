// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

// SearchState is the coarse state of a search session
type SearchState int

const (
	// StateIdle means no query has completed yet
	StateIdle SearchState = iota
	// StateLoaded means the current page holds at least one recipe
	StateLoaded
	// StateEmpty means the current page holds no recipes
	StateEmpty
)

func (s SearchState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoaded:
		return "loaded"
	case StateEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// PageState tracks where the user is within a paginated result set
type PageState struct {
	// Page is 1-based
	Page int `json:"page"`
	// Limit is the page size
	Limit int `json:"limit"`
	// HasPrev reports whether a previous page exists
	HasPrev bool `json:"has_prev"`
	// HasNext reports whether a next page exists
	HasNext bool `json:"has_next"`
	// TotalPages is nil while unknown
	TotalPages *int `json:"total_pages,omitempty"`
}

// NoticeKind separates informational messages from errors
type NoticeKind int

const (
	// NoticeInfo is an informational message, e.g. no recipes found
	NoticeInfo NoticeKind = iota
	// NoticeError reports a failed operation the user may retry
	NoticeError
)

// Notice is the single user-visible message slot of the search view
type Notice struct {
	Kind    NoticeKind
	Message string
}

// SearchView is a read-only snapshot of a search session
type SearchView struct {
	State      SearchState
	Query      SearchQuery
	Mode       QueryMode
	Page       PageState
	Notice     *Notice
	Generation uint64
}
