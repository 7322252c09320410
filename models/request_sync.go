// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// PushRequest is the body of a conditional push. LocalTimestamp is the
// instant the device believes its copy was last modified.
type PushRequest struct {
	AppData        Payload    `json:"appData"`
	LocalTimestamp *time.Time `json:"localTimestamp,omitempty"`
}

// ForcePushRequest is the body of an unconditional push issued as the
// terminal step of a user-directed conflict resolution.
type ForcePushRequest struct {
	AppData Payload `json:"appData"`
}
