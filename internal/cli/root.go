package cli

import (
	"go-inventory-history/internal/app"

	"github.com/spf13/cobra"
)

// OpenFunc builds the application for one command run. The caller closes it.
type OpenFunc func() (*app.App, error)

// NewRootCommand creates the inventoryctl command tree.
func NewRootCommand(open OpenFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "inventoryctl",
		Short:         "Maintenance tasks for the inventory database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newMigrateCommand(open))
	cmd.AddCommand(newImportCommand(open))
	cmd.AddCommand(newExportCommand(open))

	return cmd
}

func newMigrateCommand(open OpenFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the products and inventory_history tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open()
			if err != nil {
				return err
			}
			defer a.Close()

			cmd.Println("Migrations applied")
			return nil
		},
	}
}
