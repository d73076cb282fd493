// Package main provides the entry point for the switchboard CLI tool.
package main

import (
	"github.com/installd/switchboard/cmd/switchboard/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
