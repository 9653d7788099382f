package cmd

import (
	"github.com/abhisek/conjugo/internal/app"
	"github.com/spf13/cobra"
)

// runApp opens the store, loads the dataset and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ds, err := loadDataset()
	if err != nil {
		return err
	}

	st, closeStore, err := openMasteryStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	return app.Run(app.Options{
		Dataset:    ds,
		Controller: newController(ds, st),
		Logger:     logger(),
	})
}
