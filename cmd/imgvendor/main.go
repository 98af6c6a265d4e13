package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/imgvendor/cmd/imgvendor/commands"
	"git.home.luguber.info/inful/imgvendor/internal/config"
	"git.home.luguber.info/inful/imgvendor/internal/errors"
	"git.home.luguber.info/inful/imgvendor/internal/version"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// run parses args and executes the selected command, returning the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	config.LoadEnvFiles()

	var cli commands.CLI
	g := &commands.Global{Context: ctx, Stdout: stdout, Stderr: stderr}
	parser, err := kong.New(&cli,
		kong.Name("imgvendor"),
		kong.Description("Download remote images referenced by Markdown documents and rewrite the links to local copies."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Vars{"version": version.String()},
		kong.Bind(g),
	)
	if err != nil {
		slog.Error("Failed to build CLI", "error", err)
		return 1
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		parser.Errorf("%s", err)
		return 2
	}

	if err := kctx.Run(); err != nil {
		adapter := errors.NewCLIErrorAdapter(cli.Verbose, slog.Default())
		adapter.Report(err)
		return adapter.ExitCodeFor(err)
	}
	return 0
}
