// Package main is the entry point for the pagemark CLI.
package main

import (
	"os"

	"github.com/pagemark/pagemark/cmd/pagemark/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
