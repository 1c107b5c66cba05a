package cmdutil

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/src-bin/adk/ui"
)

const (
	FormatJSON = "json"
	FormatText = "text"
)

// FormatFlag returns a pflag.Value that accepts only the given formats; pass
// it to Flags().Var along with its Usage.
func FormatFlag(defaultFormat string, validFormats []string) *formatFlag {
	return &formatFlag{defaultFormat, validFormats}
}

type FormatFlagError string

func (err FormatFlagError) Error() string {
	return fmt.Sprintf("--format %q not supported", string(err))
}

func QuietFlag() *pflag.Flag {
	return &pflag.Flag{
		Name:        "quiet",
		Shorthand:   "q",
		Usage:       "suppress status and diagnostic output (feature flag warnings are still printed)",
		Value:       &quietFlag{},
		DefValue:    "false",
		NoOptDefVal: "true",
	}
}

type formatFlag struct {
	format       string
	validFormats []string
}

func (f *formatFlag) CompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return f.validFormats, cobra.ShellCompDirectiveNoFileComp
}

func (f *formatFlag) Set(format string) error {
	for _, v := range f.validFormats {
		if format == v {
			f.format = format
			return nil
		}
	}
	return FormatFlagError(format)
}

func (f *formatFlag) String() string {
	return f.format
}

func (*formatFlag) Type() string {
	return "<format>"
}

func (f *formatFlag) Usage() string {
	var ss []string
	for _, v := range f.validFormats {
		switch v {
		case FormatJSON:
			ss = append(ss, "json")
		case FormatText:
			ss = append(ss, "text (for human-readable plaintext)")
		}
	}
	return fmt.Sprint("output format - ", strings.Join(ss, ", "))
}

type quietFlag struct {
	quiet bool
}

func (q *quietFlag) Set(s string) error {
	old := q.quiet
	if q.quiet = s == "true"; q.quiet {
		ui.Quiet()
	} else if old {
		return fmt.Errorf("can't turn off quiet mode")
	}
	return nil
}

func (q *quietFlag) String() string {
	if q.quiet {
		return "true"
	}
	return "false"
}

func (*quietFlag) Type() string {
	return "bool"
}
