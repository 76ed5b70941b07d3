package esim

import "errors"

// Sentinel errors surfaced by device service implementations. Bridges branch
// on these explicitly and absorb them into the closed output vocabularies;
// they never cross the public call surface.
var (
	// ErrServiceUnavailable means the underlying OS service is not present
	// on this device model or cannot be reached.
	ErrServiceUnavailable = errors.New("esim: management service unavailable")

	// ErrPermissionDenied means the caller lacks the sensitive telephony
	// permission required for the underlying OS call.
	ErrPermissionDenied = errors.New("esim: telephony permission denied")
)
