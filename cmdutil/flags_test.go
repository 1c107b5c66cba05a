package cmdutil

import (
	"errors"
	"testing"

	"github.com/spf13/pflag"
)

func TestFormatFlag(t *testing.T) {
	format := FormatFlag(FormatText, []string{FormatText, FormatJSON})
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Var(format, "format", format.Usage())

	if format.String() != FormatText {
		t.Fatal(format.String())
	}
	if err := flags.Parse([]string{"--format", "json"}); err != nil {
		t.Fatal(err)
	}
	if format.String() != FormatJSON {
		t.Fatal(format.String())
	}

	err := format.Set("yaml")
	var ffErr FormatFlagError
	if !errors.As(err, &ffErr) || ffErr != "yaml" {
		t.Fatalf("got %v but expected a FormatFlagError", err)
	}
	if format.String() != FormatJSON {
		t.Fatal(format.String())
	}

	if usage := format.Usage(); usage != "output format - text (for human-readable plaintext), json" {
		t.Fatal(usage)
	}
}
