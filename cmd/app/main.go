package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/akyairhashvil/mvno/cmd/app/commands"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string, setup ...func(*commands.CLI)) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli := commands.New()
	cli.SetArgs(args)
	for _, fn := range setup {
		fn(cli)
	}

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Alas, there's been an error: %v\n", err)
		return 1
	}
	return 0
}
