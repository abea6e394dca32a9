package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// FixOptions holds flags for the fix command.
type FixOptions struct {
	*RootOptions
	Shift int
	Min   string
	Max   string
	Lossy bool
	Real  bool
}

// NewFixCommand creates the fix command.
func NewFixCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FixOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "fix <value>",
		Short: "Place a real value on a binary fixed-point grid",
		Long: `Construct a fixed-point value stored * 2**shift and show its stored integer,
exact value, and bit pattern.

Off-grid values are rejected unless --lossy is set, then they are rounded
to the nearest grid point, ties away from zero. Bounds are logical values.

Example:
  hdlnum fix 0.75 --shift=-3 --min=-8 --max=8
  hdlnum fix 0.7 --shift=-3 --lossy
  hdlnum fix "6 * 2**-3"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Shift, "shift", 0, "base-2 exponent of the grid")
	cmd.Flags().StringVar(&opts.Min, "min", "", "inclusive logical lower bound")
	cmd.Flags().StringVar(&opts.Max, "max", "", "exclusive logical upper bound")
	cmd.Flags().BoolVar(&opts.Lossy, "lossy", false, "round off-grid values")
	cmd.Flags().BoolVar(&opts.Real, "real", false, "format the value as a decimal (requires --lossy)")

	return cmd
}

func runFix(opts *FixOptions, value string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	d := Decl{
		Name:  "arg",
		Kind:  KindFix,
		Value: value,
		Min:   opts.Min,
		Max:   opts.Max,
		Shift: opts.Shift,
		Lossy: opts.Lossy,
		Real:  opts.Real,
	}
	x, err := d.BuildFix()
	if err != nil {
		return formatter.fail(errorCode(err), err)
	}
	slog.Debug("value constructed", "value", x.GoString(), "snapped", x.Snapped())

	return formatter.Success(newFixReport(x))
}
