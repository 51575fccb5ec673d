// Package main is the single-binary entrypoint for FitQuest.
package main

import "github.com/fitquest-app/fitquest/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
