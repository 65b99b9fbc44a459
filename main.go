// Package main is the entry point for the lycmetrics CLI tool, which imports
// Lycans game-log exports and computes role, death, meeting and voting
// statistics.
package main

import "github.com/ponche/go-lycans-metrics/cmd"

func main() {
	cmd.Execute()
}
