package cli

import (
	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	var checkDB bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/health"
			if checkDB {
				path = "/api/v1/health/db"
			}

			var result HealthResult
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&checkDB, "db", false, "Also verify storage connectivity")

	return cmd
}
