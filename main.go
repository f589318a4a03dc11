// Package main is the entry point for the Organizer platform CLI.
package main

import (
	"organizer/cli/cmd"
)

func main() {
	cmd.Execute()
}
