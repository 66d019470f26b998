package novatime

import "fmt"

// NotAuthorizedError means a timesheet response arrived without its
// expected top-level data key, which is how the portal signals a dead or
// unauthenticated session. Distinct from a per-field schema problem.
type NotAuthorizedError struct {
	Missing string
}

func (e *NotAuthorizedError) Error() string {
	return fmt.Sprintf("not authorized: response has no %q key; check credentials and session", e.Missing)
}

// VendorError is a non-success error code embedded in a JSON response
// body, carried verbatim. Transport-level HTTP failures are reported as
// plain errors instead.
type VendorError struct {
	Code        int
	Description string
}

func (e *VendorError) Error() string {
	return fmt.Sprintf("vendor error %d: %s", e.Code, e.Description)
}
