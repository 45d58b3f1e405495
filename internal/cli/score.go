package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Submit quiz scores",
	}

	cmd.AddCommand(newScoreSubmitCmd())
	cmd.AddCommand(newScoreGuestCmd())

	return cmd
}

func newScoreSubmitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit <category> <score>",
		Short: "Submit a score for the logged-in account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return err
			}

			body := map[string]any{
				"category": args[0],
				"score":    points,
			}

			var result SubmitResult
			if err := client.Post("/api/v1/submit-score", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newScoreGuestCmd() *cobra.Command {
	var guestToken, deviceID, username string

	cmd := &cobra.Command{
		Use:   "guest <category> <score>",
		Short: "Submit a score as a guest",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return err
			}

			body := map[string]any{
				"token":    guestToken,
				"deviceId": deviceID,
				"username": username,
				"category": args[0],
				"score":    points,
			}

			var result SubmitResult
			if err := client.Post("/api/v1/submit-guest-score", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&guestToken, "guest-token", "", "Shared guest token")
	cmd.Flags().StringVar(&deviceID, "device-id", "", "Stable device identifier")
	cmd.Flags().StringVar(&username, "username", "", "Display name (3-20 characters)")
	_ = cmd.MarkFlagRequired("guest-token")
	_ = cmd.MarkFlagRequired("device-id")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}
