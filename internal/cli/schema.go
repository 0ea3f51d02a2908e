package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/vecbridge/application/config"
	"github.com/reglet-dev/vecbridge/application/schema"
	"github.com/reglet-dev/vecbridge/domain/entities"
)

// NewSchemaCommand creates the schema command.
func NewSchemaCommand(_ *RootOptions) *cobra.Command {
	var manifest bool

	cmd := &cobra.Command{
		Use:           "schema",
		Short:         "Print the JSON schema of the config file",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				raw []byte
				err error
			)
			if manifest {
				raw, err = schema.GenerateSchema(&entities.Manifest{}, schema.WithTitle("vecbridge manifest"))
			} else {
				raw, err = config.Schema()
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(raw))
			return err
		},
	}

	cmd.Flags().BoolVar(&manifest, "manifest", false, "print the manifest schema instead")
	return cmd
}
