package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	pkgerrors "github.com/matzehuels/pipreq/pkg/errors"
	"github.com/matzehuels/pipreq/pkg/store"
)

// resultsCommand manages results saved with "parse --save".
func (c *CLI) resultsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "results",
		Short: "Manage saved parse results",
	}

	cmd.AddCommand(c.resultsShowCommand())
	cmd.AddCommand(c.resultsDeleteCommand())
	cmd.AddCommand(c.resultsPathCommand())

	return cmd
}

func (c *CLI) resultsShowCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := pkgerrors.ValidateResultID(id); err != nil {
				return err
			}
			st, err := store.NewFileStore("")
			if err != nil {
				return err
			}
			defer st.Close()

			r, err := st.Get(cmd.Context(), id)
			if errors.Is(err, store.ErrNotFound) {
				return pkgerrors.New(pkgerrors.ErrCodeResultNotFound, "no result with id %s", id)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, r)
			}
			printKeyValue(out, "ID", r.ID)
			printKeyValue(out, "Source", r.Source)
			printKeyValue(out, "Created", r.CreatedAt.Local().Format(time.DateTime))
			if len(r.Unrecognized) > 0 {
				printKeyValue(out, "Unrecognized", joinInts(r.Unrecognized))
			}
			if len(r.Requirements) > 0 {
				fmt.Fprintln(out, requirementsTable(r.Requirements))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func (c *CLI) resultsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete saved results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.NewFileStore("")
			if err != nil {
				return err
			}
			defer st.Close()

			for _, id := range args {
				if err := pkgerrors.ValidateResultID(id); err != nil {
					return err
				}
				if err := st.Delete(cmd.Context(), id); err != nil {
					return err
				}
			}
			printSuccess(cmd.OutOrStdout(), "Deleted %s", plural(len(args), "result"))
			return nil
		},
	}
}

func (c *CLI) resultsPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the result directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.NewFileStore("")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), st.Path())
			return nil
		},
	}
}
