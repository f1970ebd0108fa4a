package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	pkgerrors "github.com/matzehuels/pipreq/pkg/errors"
	"github.com/matzehuels/pipreq/pkg/pep440"
)

type normalized struct {
	Input      string          `json:"input"`
	Canonical  string          `json:"canonical,omitempty"`
	Version    *pep440.Version `json:"version,omitempty"`
	PreRelease bool            `json:"prerelease,omitempty"`
	Valid      bool            `json:"valid"`
}

// normalizeCommand prints the canonical PEP 440 form of each argument.
func (c *CLI) normalizeCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "normalize <version>...",
		Short: "Normalize PEP 440 version strings",
		Long: `Print the canonical PEP 440 form of each version. The command fails if
any argument is not a version, after printing all of them.

Examples:
  pipreq normalize 1.0-1 v2.5-ALPHA_20
  pipreq normalize --json 1!01.2.dev`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]normalized, len(args))
			invalid := 0
			for i, arg := range args {
				results[i] = normalized{Input: arg}
				v, ok := pep440.Normalize(arg)
				if !ok {
					invalid++
					continue
				}
				results[i].Valid = true
				results[i].Canonical = v.String()
				results[i].Version = &v
				results[i].PreRelease = v.IsPreRelease()
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if err := writeJSON(out, results); err != nil {
					return err
				}
			} else {
				for _, r := range results {
					if !r.Valid {
						printWarning(out, "%s is not a PEP 440 version", r.Input)
						continue
					}
					line := StyleValue.Render(r.Input) + " " + StyleDim.Render(iconArrow) + " " + StyleNumber.Render(r.Canonical)
					if r.PreRelease {
						line += " " + StyleDim.Render("(pre-release)")
					}
					fmt.Fprintln(out, line)
				}
			}

			if invalid > 0 {
				return pkgerrors.New(pkgerrors.ErrCodeInvalidVersion, "%s not PEP 440", plural(invalid, "version"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
