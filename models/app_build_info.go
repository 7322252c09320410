// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// unknownBuildValue stands in for metadata the linker did not inject.
const unknownBuildValue = "N/A"

// AppBuildInfo is the linker-injected build metadata of a binary.
type AppBuildInfo struct {
	Version string
	Date    string
	Commit  string
}

// NewAppBuildInfo replaces empty values with "N/A".
func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{
		Version: orUnknown(version),
		Date:    orUnknown(date),
		Commit:  orUnknown(commit),
	}
}

// HasVersion reports whether a version was injected at build time.
func (a AppBuildInfo) HasVersion() bool {
	return a.Version != "" && a.Version != unknownBuildValue
}

func (a AppBuildInfo) String() string {
	return fmt.Sprintf("%s (built %s, commit %s)", a.Version, a.Date, a.Commit)
}

func orUnknown(v string) string {
	if v == "" {
		return unknownBuildValue
	}
	return v
}
