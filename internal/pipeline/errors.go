// Copyright 2026 The Breachdash Authors
// SPDX-License-Identifier: MIT

package pipeline

import "fmt"

// InvalidSelectionError is returned by Compute when there is no data to select from.
type InvalidSelectionError struct {
	Reason string
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("invalid selection: %s", e.Reason)
}
