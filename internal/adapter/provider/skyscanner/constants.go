// Package skyscanner implements the Skyscanner partner API back-end using
// its two-phase create/poll live search protocol.
package skyscanner

import "time"

const (
	apiBaseURL        = "https://partners.api.skyscanner.net/apiservices/v3"
	sessionCreatePath = "/flights/live/search/create"
	pollPathPrefix    = "/flights/live/search/poll/"

	maxPollAttempts = 10
	pollInterval    = 2 * time.Second

	statusComplete   = "RESULT_STATUS_COMPLETE"
	statusInProgress = "RESULT_STATUS_IN_PROGRESS"
	statusFailed     = "RESULT_STATUS_FAILED"
)

// assumedChildAge fills childrenAges; the partner API requires an age per
// child but the search criteria only carry a count.
const assumedChildAge = 8
