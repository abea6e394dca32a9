package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file.yaml>",
		Short: "Construct every value of a declarations file",
		Long: `Construct every value declared in a YAML file and report which ones fail.

File format:
  values:
    - name: counter
      kind: mod        # int | mod | fix
      value: "9"
      min: "0"
      max: "8"
    - name: gain
      kind: fix
      value: "0.7"
      shift: -3
      lossy: true

Exits with code 1 if any declaration fails.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runCheck(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	file, err := LoadDecls(path)
	if err != nil {
		return formatter.fail(errorCode(err), err)
	}
	formatter.VerboseLog("Found %d declaration(s) in %s", len(file.Values), path)

	report := CheckReport{Results: make([]CheckResult, 0, len(file.Values))}
	for _, d := range file.Values {
		res := CheckResult{Name: d.Name, Kind: d.Kind}
		desc, err := d.Describe()
		if err != nil {
			res.Code, res.Error = errorCode(err), err.Error()
			report.Failed++
		} else {
			res.OK, res.Value = true, desc
		}
		slog.Debug("declaration checked", "name", d.Name, "kind", d.Kind, "ok", res.OK)
		report.Results = append(report.Results, res)
	}

	if err := formatter.Success(report); err != nil {
		return err
	}
	if report.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d declarations failed", report.Failed, len(report.Results)))
	}
	return nil
}
