// Package errorspkg provides common app errors.
package errorspkg

import "errors"

// ErrInternal indicates internal server error.
var ErrInternal = errors.New("internal")

// ErrPartnerUnavailable indicates that an external partner service call failed.
var ErrPartnerUnavailable = errors.New("partner service unavailable")
