package cli

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avdva/hdlnum"
)

// SliceOptions holds flags for the slice command.
type SliceOptions struct {
	*RootOptions
	Min string
	Max string
}

// NewSliceCommand creates the slice command.
func NewSliceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SliceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "slice <value> <high:low>",
		Short: "Extract bits [low, high) of a bit-vector",
		Long: `Extract a half-open, downward range of bits of a bit-vector.

The range is written as high:low. An omitted low means 0, an omitted high
means all remaining bits. The result is always non-negative.

Example:
  hdlnum slice 24 5:1
  hdlnum slice --min=-8 --max=8 -- -3 4:
  hdlnum slice 0b1100 :2`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSlice(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Min, "min", "", "inclusive lower bound")
	cmd.Flags().StringVar(&opts.Max, "max", "", "exclusive upper bound")

	return cmd
}

// parseRange parses "high:low" where either side may be omitted.
// hasHigh is false if high is omitted. Negative indexes are passed through as is.
func parseRange(s string) (high, low int, hasHigh bool, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, false, &ParseError{Input: s, Err: fmt.Errorf("expected high:low")}
	}
	if parts[0] != "" {
		if high, err = strconv.Atoi(parts[0]); err != nil {
			return 0, 0, false, &ParseError{Input: s, Err: err}
		}
		hasHigh = true
	}
	if parts[1] != "" {
		if low, err = strconv.Atoi(parts[1]); err != nil {
			return 0, 0, false, &ParseError{Input: s, Err: err}
		}
	}
	return high, low, hasHigh, nil
}

func runSlice(opts *SliceOptions, value, rng string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	high, low, hasHigh, err := parseRange(rng)
	if err != nil {
		return formatter.fail(errorCode(err), err)
	}
	d := Decl{Name: "arg", Kind: KindInt, Value: value, Min: opts.Min, Max: opts.Max}
	x, err := d.BuildInt()
	if err != nil {
		return formatter.fail(errorCode(err), err)
	}
	var s *hdlnum.IntBV
	if hasHigh {
		s, err = x.Slice(high, low)
		rng = fmt.Sprintf("%d:%d", high, low)
	} else {
		s, err = x.SliceFrom(low)
		rng = fmt.Sprintf(":%d", low)
	}
	if err != nil {
		return formatter.fail(errorCode(err), err)
	}
	slog.Debug("slice extracted", "source", x.GoString(), "range", rng)

	return formatter.Success(SliceReport{Slice: rng, IntReport: newIntReport(s)})
}
