package main

import "github.com/google/uuid"

// newRunIDOrEmpty mints a run id for log correlation (pkg/logging); a
// uuid generation failure is not worth aborting a check over, so this
// degrades to an empty (unset) run id instead.
func newRunIDOrEmpty() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return ""
	}
	return id.String()
}
