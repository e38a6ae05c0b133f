// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import "strings"

// SearchQuery is what the user submits from the search form
type SearchQuery struct {
	// Free text keyword; empty or whitespace-only means no keyword
	Keyword string `json:"keyword,omitempty"`
	// UseInventory restricts results to recipes makeable with the user's
	// inventory; when set the keyword is ignored
	UseInventory bool `json:"use_inventory"`
}

// Normalize trims the keyword and drops it entirely in inventory mode.
func (q SearchQuery) Normalize() SearchQuery {
	if q.UseInventory {
		return SearchQuery{UseInventory: true}
	}
	return SearchQuery{Keyword: strings.TrimSpace(q.Keyword)}
}

// QueryMode identifies which remote query operation is active
type QueryMode int

const (
	// ModeAll lists recipes without filtering
	ModeAll QueryMode = iota
	// ModeKeyword searches recipes by keyword
	ModeKeyword
	// ModeInventory lists recipes constrained by the user's inventory
	ModeInventory
)

func (m QueryMode) String() string {
	switch m {
	case ModeAll:
		return "all"
	case ModeKeyword:
		return "keyword"
	case ModeInventory:
		return "inventory"
	default:
		return "unknown"
	}
}

// ParseQueryMode is the inverse of QueryMode.String.
func ParseQueryMode(s string) (QueryMode, bool) {
	switch s {
	case "all":
		return ModeAll, true
	case "keyword":
		return ModeKeyword, true
	case "inventory":
		return ModeInventory, true
	default:
		return ModeAll, false
	}
}
