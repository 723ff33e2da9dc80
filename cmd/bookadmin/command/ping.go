package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Verify database connectivity and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, st, err := setup()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Ping(cmd.Context()); err != nil {
			return fmt.Errorf("database unreachable: %w", err)
		}
		fmt.Println("database connection OK")
		return nil
	},
}
