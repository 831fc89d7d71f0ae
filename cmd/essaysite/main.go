package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/jamesxoliver/jamesxoliver.github.io/cmd/essaysite/commands"
	"github.com/jamesxoliver/jamesxoliver.github.io/internal/foundation/errors"
	"github.com/jamesxoliver/jamesxoliver.github.io/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Must(cli,
		kong.Name("essaysite"),
		kong.Description("Convert LaTeX essays into an SEO-enriched static site."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	global := &commands.Global{Logger: slog.Default()}
	err = ctx.Run(global, cli)
	if err == nil {
		return
	}

	adapter := errors.NewCLIErrorAdapter(cli.Verbose, slog.Default())
	adapter.Log(err)
	fmt.Fprintln(os.Stderr, adapter.FormatError(err))
	os.Exit(adapter.ExitCodeFor(err))
}
