package list

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/src-bin/adk/cmdutil"
	"github.com/src-bin/adk/features"
	"github.com/src-bin/adk/jsonutil"
	"github.com/src-bin/adk/settings"
	"github.com/src-bin/adk/table"
	"github.com/src-bin/adk/ui"
)

var (
	format   = cmdutil.FormatFlag(cmdutil.FormatText, []string{cmdutil.FormatText, cmdutil.FormatJSON})
	registry = features.Default
)

func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [--format <format>]",
		Short: "list every feature flag and whether it's enabled",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			Main(cmdutil.Main(cmd, args))
		},
		DisableFlagsInUseLine: true,
	}
	cmd.Flags().Var(format, "format", format.Usage())
	cmd.RegisterFlagCompletionFunc("format", format.CompletionFunc)
	return cmd
}

type Feature struct {
	ID        string `json:"id"`
	Stage     string `json:"stage"`
	DefaultOn bool   `json:"default_on"`
	Enabled   bool   `json:"enabled"`
}

func Main(ctx context.Context, _ *settings.Settings, _ *cobra.Command, _ []string, w io.Writer) {
	list := make([]Feature, 0)
	for _, id := range registry.IDs() {
		cfg, _ := registry.GetConfig(id)
		list = append(list, Feature{
			ID:        id,
			Stage:     cfg.Stage.String(),
			DefaultOn: cfg.DefaultOn,
			Enabled:   ui.Must2(registry.IsEnabled(id)),
		})
	}

	switch format.String() {
	case cmdutil.FormatJSON:
		ui.Must(jsonutil.PrettyPrint(w, list))
	case cmdutil.FormatText:
		cells := table.MakeCells(4, len(list)+1)
		cells[0][0], cells[0][1], cells[0][2], cells[0][3] = "Feature", "Stage", "Default", "Enabled"
		for i, f := range list {
			cells[i+1][0] = f.ID
			cells[i+1][1] = f.Stage
			cells[i+1][2] = strconv.FormatBool(f.DefaultOn)
			cells[i+1][3] = strconv.FormatBool(f.Enabled)
		}
		table.Ftable(w, cells)
	default:
		ui.Fatal(cmdutil.FormatFlagError(fmt.Sprint(format)))
	}
}
