// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the sync client application and its command
// line.
//
// [App] wires local state, the server adapter, the sync client and the
// background workers. [NewRootCommand] exposes it as cobra commands: a
// long-running session (run) and one-shot operations (push, pull, status,
// resolve, pending, token).
package client
