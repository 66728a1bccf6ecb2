package main

import (
	"context"
	"fmt"
	"os"

	"task-logger/internal/cli"
)

func main() {
	// The App is built per command, after flags are parsed
	root := cli.NewRootCommand(cli.NewApp)

	if err := root.Execute(context.Background()); err != nil {
		eh := cli.NewErrorHandler()
		fmt.Fprintf(os.Stderr, "Error: %v\n", eh.HandleSimple(err))
		os.Exit(eh.ExitCode(err))
	}
}
