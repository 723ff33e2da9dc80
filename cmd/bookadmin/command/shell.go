package command

import (
	"os"

	"bookadmin/internal/shell"

	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive menu session (the default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell(cmd)
	},
}

func runShell(cmd *cobra.Command) error {
	cfg, logger, st, err := setup()
	if err != nil {
		return err
	}
	defer st.Close()

	logger.Info("session started")
	sh := shell.New(cfg, logger, st, os.Stdin, os.Stdout)
	sh.Run(cmd.Context())
	logger.Info("session ended")
	return nil
}
