package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	pkgerrors "github.com/matzehuels/pipreq/pkg/errors"
	"github.com/matzehuels/pipreq/pkg/requirement"
)

// lineCommand classifies a single requirements line.
func (c *CLI) lineCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "line <requirement>",
		Short: "Classify a single requirements line",
		Long: `Classify one requirements line and print what it declares. Arguments are
joined with spaces, so quoting is only needed for shell metacharacters.

Examples:
  pipreq line "Django>=1.8,<2.0"
  pipreq line 'requests[security] == 2.8.*'
  pipreq line -- -e git+https://github.com/pypa/pip.git#egg=pip`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			line := strings.Join(args, " ")
			r, ok := requirement.ParseLine(line)
			if !ok {
				return pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "not a requirement: %q", line)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, r)
			}
			printKeyValue(out, "Name", r.Name)
			if len(r.Extras) > 0 {
				printKeyValue(out, "Extras", strings.Join(r.Extras, ", "))
			}
			if len(r.Constraints) > 0 {
				printKeyValue(out, "Constraints", constraintsString(r.Constraints))
			}
			printKeyValue(out, "Source", string(r.Source))
			if len(r.InstallOptions) > 0 {
				printKeyValue(out, "Options", fmt.Sprintf("%q", r.InstallOptions))
			}
			if v, ok := r.Pinned(); ok {
				printDetail(out, "pinned to %s", v)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
