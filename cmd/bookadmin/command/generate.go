package command

import (
	"fmt"
	"strconv"

	"bookadmin/internal/shell"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate <users|books|activity|impressions|pipeline> <n>",
	Short: "Run one bulk data generator non-interactively",
	Long: `Insert n synthetically derived rows without entering the menu.
"pipeline" chains all four generators with derived counts
(users=n, books=n, activity=max(n,1), impressions=max(n/2,1)).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid count %q: want a positive integer", args[1])
		}

		_, logger, st, err := setup()
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		switch args[0] {
		case "users":
			cnt, err := st.GenerateUsers(ctx, n)
			if err != nil {
				return err
			}
			fmt.Printf("users inserted: %d\n", cnt)
		case "books":
			cnt, err := st.GenerateBooks(ctx, n)
			if err != nil {
				return err
			}
			fmt.Printf("books inserted: %d\n", cnt)
		case "activity":
			cnt, err := st.GenerateActivity(ctx, n)
			if err != nil {
				return err
			}
			fmt.Printf("activity pairs inserted: %d\n", cnt)
		case "impressions":
			cnt, err := st.GenerateImpressions(ctx, n)
			if err != nil {
				return err
			}
			fmt.Printf("impressions inserted: %d\n", cnt)
		case "pipeline":
			r, err := shell.RunPipeline(ctx, st, n)
			fmt.Printf("users=%d, books=%d, activity=%d, impressions=%d\n",
				r.Users, r.Books, r.Activity, r.Impressions)
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown generator %q", args[0])
		}

		logger.Info("generation finished", "kind", args[0], "n", n)
		return nil
	},
}
