package main

import (
	"fmt"
	"os"

	"metronome/internal/cli"
	"metronome/internal/config"
)

func main() {
	os.Exit(run())
}

// run executes one command. The task store is released inside
// RootCommand.Execute before the exit code is returned
func run() int {
	factory := NewRepositoryFactory(getEnvironment())
	root := cli.NewRootCommand(config.NewLoader(), factory.Open)

	if err := root.Execute(); err != nil {
		handler := cli.NewErrorHandler()
		fmt.Fprintf(os.Stderr, "Error: %v\n", handler.HandleSimple(err))
		return handler.ExitCode(err)
	}
	return 0
}
