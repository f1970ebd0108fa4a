package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pipreq/pkg/catalog"
	pkgerrors "github.com/matzehuels/pipreq/pkg/errors"
)

// catalogCommand manages the local release catalog.
func (c *CLI) catalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the local catalog of published releases",
		Long: `The catalog keeps the published versions of packages fetched from the
package index, so they can be looked up offline and served by the API.
It is stored in the configured cache backend.`,
	}

	cmd.AddCommand(c.catalogRefreshCommand())
	cmd.AddCommand(c.catalogShowCommand())
	cmd.AddCommand(c.catalogListCommand())

	return cmd
}

// catalogRefreshCommand creates the "catalog refresh" subcommand.
func (c *CLI) catalogRefreshCommand() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "refresh [package...]",
		Short: "Fetch release lists from the package index",
		Long: `Fetch the release lists of the named packages and store them in the
catalog. With --from, the packages declared by a manifest are fetched.
Without arguments, every package already in the catalog is refreshed.

Examples:
  pipreq catalog refresh django requests
  pipreq catalog refresh --from requirements.txt
  pipreq catalog refresh`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			names := args
			if from != "" {
				res, err := c.readManifest(ctx, cmd.InOrStdin(), from, "")
				if err != nil {
					return err
				}
				for _, r := range res.Requirements {
					names = append(names, r.Name)
				}
			}

			cat, backend, err := c.newCatalog(ctx)
			if err != nil {
				return err
			}
			defer backend.Close()

			if len(names) == 0 && cat.Len() == 0 {
				return pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "catalog is empty; name packages to fetch or use --from")
			}

			spin := newSpinner(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Fetching releases from %s", cat.Index()))
			spin.Start()
			err = cat.Reload(ctx, names...)
			spin.Stop()

			out := cmd.OutOrStdout()
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				printWarning(out, "Some packages could not be fetched")
				for _, line := range strings.Split(err.Error(), "\n") {
					printDetail(out, "%s", line)
				}
			}
			printSuccess(out, "Catalog holds %s", plural(cat.Len(), "package"))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "fetch the packages declared by this manifest")
	return cmd
}

// catalogShowCommand creates the "catalog show" subcommand.
func (c *CLI) catalogShowCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <package>",
		Short: "Show the catalogued releases of a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pkgerrors.ValidatePackageName(args[0]); err != nil {
				return err
			}
			cat, backend, err := c.newCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer backend.Close()

			e, err := cat.Lookup(args[0])
			if errors.Is(err, catalog.ErrUnknownPackage) {
				return pkgerrors.Wrap(pkgerrors.ErrCodePackageNotFound, err,
					"run \"pipreq catalog refresh %s\" first", args[0])
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, e)
			}
			printEntry(out, e)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

// catalogListCommand creates the "catalog list" subcommand.
func (c *CLI) catalogListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalogued packages",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, backend, err := c.newCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer backend.Close()

			out := cmd.OutOrStdout()
			if cat.Len() == 0 {
				printInfo(out, "Catalog is empty")
				return nil
			}

			var rows [][]string
			for _, name := range cat.Names() {
				e, _ := cat.Get(name)
				rows = append(rows, []string{e.Name, e.Latest, fmt.Sprint(len(e.Versions))})
			}
			fmt.Fprintln(out, table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("Package", "Latest", "Releases").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == -1 {
						return styleHeader.Padding(0, 1)
					}
					return lipgloss.NewStyle().Padding(0, 1)
				}).
				Render())
			printStats(out, plural(cat.Len(), "package"), "updated "+cat.UpdatedAt().Local().Format(time.DateTime))
			return nil
		},
	}
}

func printEntry(w io.Writer, e catalog.Entry) {
	fmt.Fprintln(w, StyleTitle.Render(e.Name))
	if e.Latest != "" {
		printKeyValue(w, "Latest", e.Latest)
	}
	printKeyValue(w, "Releases", fmt.Sprint(len(e.Versions)))
	printKeyValue(w, "Fetched", e.FetchedAt.Local().Format(time.DateTime))
	for _, raw := range e.Versions {
		v, ok := e.Normalized[raw]
		switch {
		case !ok:
			printDetail(w, "%s (not PEP 440)", raw)
		case v.String() != raw:
			printDetail(w, "%s %s %s", raw, iconArrow, v.String())
		default:
			printDetail(w, "%s", raw)
		}
	}
}
