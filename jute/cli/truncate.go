package cli

import (
	"fmt"
	"strconv"

	"github.com/ZanzyTHEbar/jute-commons/jute/mathutil"

	"github.com/spf13/cobra"
)

func newTruncateCommand(a *app) *cobra.Command {
	var precision int

	cmd := &cobra.Command{
		Use:   "truncate <value>",
		Short: "Truncate a number to a fixed count of decimal places without rounding",
		Long: `Truncate a number to --precision decimal places. Digits past the cut are
dropped, so the magnitude never grows: 0.94253 becomes 0.94 and -99.8424
becomes -99.8 at precision 1.

Pass negative values after "--", e.g. jute truncate -p 1 -- -99.8424`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid number %q: %w", args[0], err)
			}

			if !cmd.Flags().Changed("precision") {
				precision = a.cfg.Math.DefaultPrecision
			}

			result, err := mathutil.TruncateDecimals(value, precision)
			if err != nil {
				return err
			}

			a.logger.Debug().
				Float64("value", value).
				Int("precision", precision).
				Float64("result", result).
				Msg("truncated")

			_, err = fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(result, 'f', -1, 64))
			return err
		},
	}

	cmd.Flags().IntVarP(&precision, "precision", "p", 0, "decimal places to keep (default from config)")

	return cmd
}
