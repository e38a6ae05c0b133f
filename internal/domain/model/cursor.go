// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

// Cursor is a search position that can be handed to a later process to
// continue paging with the same query mode
type Cursor struct {
	Mode       string `json:"mode"`
	Keyword    string `json:"keyword,omitempty"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	HasPrev    bool   `json:"has_prev"`
	HasNext    bool   `json:"has_next"`
	TotalPages *int   `json:"total_pages,omitempty"`
	// Empty is set when the page held no recipes
	Empty      bool   `json:"empty,omitempty"`
}
