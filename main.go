package main

import (
	"os"

	"fjacquet/txtag/cmd/lookup"
	"fjacquet/txtag/cmd/root"
	"fjacquet/txtag/cmd/rules"
	"fjacquet/txtag/cmd/tag"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(tag.Cmd)
	root.Cmd.AddCommand(lookup.Cmd)
	root.Cmd.AddCommand(rules.Cmd)
}

func main() {
	// cobra already printed the error; the typed error was logged by the command.
	if err := root.Cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
