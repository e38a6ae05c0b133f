// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// User facing messages.
const (
	MessageNoRecipes          = "Sorry, no recipes were found"
	MessageServiceUnavailable = "Service is currently unavailable, please try again later"
	MessageSignInRequired     = "Your session has expired or you are not signed in, please log in"
	MessageBadCredentials     = "Please verify that the email and password are correct"
	MessageStartSearching     = "Use the search tools above to find your next favorite recipe!"
	MessageNoFoodRecords      = "There are no records for this day"
)
