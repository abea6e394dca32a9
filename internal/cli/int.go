package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// IntOptions holds flags for the int command.
type IntOptions struct {
	*RootOptions
	Min  string
	Max  string
	Wrap bool
}

// NewIntCommand creates the int command.
func NewIntCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &IntOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "int <value>",
		Short: "Show the width and bit pattern of a bit-vector",
		Long: `Construct a bit-vector and show its derived width, two's complement
pattern, and signed interpretation.

Example:
  hdlnum int 6 --min=-13 --max=7
  hdlnum int 9 --min=0 --max=8 --wrap
  hdlnum int 0b0101`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInt(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Min, "min", "", "inclusive lower bound")
	cmd.Flags().StringVar(&opts.Max, "max", "", "exclusive upper bound")
	cmd.Flags().BoolVar(&opts.Wrap, "wrap", false, "wrap out-of-range values around")

	return cmd
}

func runInt(opts *IntOptions, value string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	d := Decl{Name: "arg", Kind: KindInt, Value: value, Min: opts.Min, Max: opts.Max}
	if opts.Wrap {
		d.Kind = KindMod
	}
	x, err := d.BuildInt()
	if err != nil {
		return formatter.fail(errorCode(err), err)
	}
	slog.Debug("value constructed", "value", x.GoString())

	return formatter.Success(newIntReport(x))
}
