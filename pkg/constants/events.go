// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

const (
	// EventSubjectPrefix is prepended to the event type to build the NATS subject
	EventSubjectPrefix = "recipes.search."
)
