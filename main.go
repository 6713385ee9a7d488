// =============================================================================
// csv2locale - Main Entry Point
// =============================================================================
//
// This is the main entry point for the csv2locale CLI application. It
// delegates command execution to the cmd package.
//
// USAGE:
//   csv2locale <input> <output> <lang1> [lang2 ...]  - Convert a table to XML
//   csv2locale check <input> <lang1> [lang2 ...]     - Validate without writing
//   csv2locale schema [output.xsd]                   - Print the XML Schema
//   csv2locale version                               - Display the version
//
// ARCHITECTURE:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"github.com/helio-fm/helio-sequencer/cmd"
)

func main() {
	cmd.Execute()
}
