package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/ekim5sg/plugforge/cmd/plugforge/commands"
	founderr "github.com/ekim5sg/plugforge/internal/foundation/errors"
	"github.com/ekim5sg/plugforge/internal/version"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("plugforge"),
		kong.Description("Scaffold, preview, and publish webhtml5 plug projects"),
		kong.Vars{
			"version": fmt.Sprintf("plugforge %s (commit %s, built %s)", version.Version, version.GitCommit, version.BuildTime),
		},
	)

	if err := ctx.Run(&commands.Global{}, cli); err != nil {
		adapter := founderr.NewCLIErrorAdapter(cli.Verbose, nil)
		adapter.HandleError(err)
	}
}
