// Package main provides the entry point for the fieldscope CLI tool.
package main

import "github.com/agristack/fieldscope/cmd/fieldscope/cmd"

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	cmd.Execute(version, commit, date, builtBy)
}
