package main

import "github.com/codelancer/api/internal/cli"

// Set via ldflags at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// @title CODELANCER AI API
// @version 0.1.0
// @description Code analysis, generation and auto-correction.
// @host localhost:8000
// @BasePath /
// @schemes http
func main() {
	cli.SetVersionInfo(version, commit, date)
	cli.Execute()
}
