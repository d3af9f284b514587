// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package version reports the apkey build. Values are injected with -ldflags:
//
//	go build -ldflags "-X github.com/aplane-algo/apkeys/internal/version.Version=1.2.0" ./cmd/apkey
package version

import (
	"fmt"
	"runtime"
)

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// Info is the structured form of the build information.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`
	Platform  string `json:"platform"`
}

// Get returns the build information of the running binary.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns the one-line form printed by `apkey version`.
func String() string {
	i := Get()
	return fmt.Sprintf("apkey %s (commit: %s, built: %s, %s)", i.Version, i.GitCommit, i.BuildTime, i.Platform)
}
