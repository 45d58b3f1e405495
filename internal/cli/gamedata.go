package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newGamedataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gamedata",
		Short: "Inspect quiz subject data",
	}

	cmd.AddCommand(newGamedataListCmd())
	cmd.AddCommand(newGamedataVillagerCmd())

	return cmd
}

func newGamedataListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <category>",
		Short: "List quiz subjects for a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []GameItem
			if err := client.Get(fmt.Sprintf("/api/v1/gamedata/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGamedataVillagerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "villager <name>",
		Short: "Show detailed facts about a villager",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result VillagerDetails
			path := "/api/v1/gamedata/villagers/" + url.PathEscape(args[0])
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
