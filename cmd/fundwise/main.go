package main

import (
	"os"

	"github.com/wonny/fundwise/cmd/fundwise/commands"
)

// main is the entry point for the fundwise CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/fundwise [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
