// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

const (
	// DefaultPageSize is the default number of recipes per page
	DefaultPageSize = 10
	// FirstPage is the page every new submission starts from
	FirstPage = 1
	// MaxPageSize caps the page size accepted from configuration
	MaxPageSize = 100
)
