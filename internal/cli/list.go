package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List the available entry points",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			manifest := s.catalog.Manifest()

			if rootOpts.Format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(manifest)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tINPUT\tOUTPUT\tDESCRIPTION")
			for _, ep := range manifest.EntryPoints {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", ep.Name, ep.InputName, ep.OutputName, ep.Description)
			}
			return tw.Flush()
		},
	}
}
