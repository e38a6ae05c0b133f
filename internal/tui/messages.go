// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package tui

// pageLoadedMsg reports the end of a submit or page navigation
type pageLoadedMsg struct {
	err error
}

// scrollTopMsg asks the results viewport to scroll to the top
type scrollTopMsg struct{}

// selectedMsg reports the end of a recipe selection
type selectedMsg struct {
	recipeID string
	err      error
}

// signedInMsg reports the end of a sign-in attempt
type signedInMsg struct {
	err error
}
