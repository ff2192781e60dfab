package types

import "github.com/m-mizutani/goerr/v2"

// Error taxonomy tags. The HTTP layer maps these to response statuses,
// nothing in the core treats any of them as fatal.
var (
	TagValidation   = goerr.NewTag("validation")
	TagPolicyReject = goerr.NewTag("policy_reject")
	TagTransport    = goerr.NewTag("transport")
	TagNotFound     = goerr.NewTag("not_found")
)

var (
	// ErrRecordNotFound is returned when no sent-message record exists
	// for a given fingerprint.
	ErrRecordNotFound = goerr.New("sent message record not found", goerr.T(TagNotFound))
)
