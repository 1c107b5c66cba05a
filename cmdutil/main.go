package cmdutil

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/src-bin/adk/awscfg"
	"github.com/src-bin/adk/settings"
	"github.com/src-bin/adk/ui"
)

// Main returns the arguments necessary for a typical subcommand's Main
// function so that it can be called as Main(cmdutil.Main(cmd, args)).
func Main(cmd *cobra.Command, args []string) (context.Context, *settings.Settings, *cobra.Command, []string, io.Writer) {
	return MainRedirect(cmd, args, os.Stdout)
}

// MainRedirect returns the arguments necessary for a typical subcommand's
// Main function with its output io.Writer redirected to w.
func MainRedirect(cmd *cobra.Command, args []string, w io.Writer) (context.Context, *settings.Settings, *cobra.Command, []string, io.Writer) {
	return cmd.Context(), ui.Must2(settings.Load()), cmd, args, w
}

// Config loads AWS configuration in the region chosen by regionFlag, the
// environment, or the settings file, in that order, exiting if there's no
// region to be had.
func Config(ctx context.Context, s *settings.Settings, regionFlag string) *awscfg.Config {
	return awscfg.Must(awscfg.NewConfig(ctx, s.Region(regionFlag)))
}
