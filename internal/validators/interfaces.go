// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks sync inputs before they reach storage.
//
// A [Validator] accepts a value and, optionally, the names of the fields to
// check. Without field names every field of the value is checked.
package validators

import "context"

// Validator validates arbitrary input values.
type Validator interface {
	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
