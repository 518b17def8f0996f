package status

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"voicemail-whisper/cmd/vmw/cmd/shared"
	"voicemail-whisper/internal/app"
)

var raw bool

func init() {
	Cmd.Flags().BoolVar(&raw, "raw", false, "print the stored record instead of the status view")
}

// Cmd represents the status command
var Cmd = &cobra.Command{
	Use:   "status <clip id>",
	Short: "Print the status of a clip",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid clip id %q", args[0])
		}

		cfg, err := shared.LoadQueryConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		reader, cleanup, err := app.InitializeReader(ctx, cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		if raw {
			clip, err := reader.Status.Raw(ctx, id)
			if err != nil {
				return err
			}
			return shared.PrintJSON(cmd.OutOrStdout(), clip)
		}

		view, err := reader.Status.Status(ctx, id)
		if err != nil {
			return err
		}
		return shared.PrintJSON(cmd.OutOrStdout(), view)
	},
}
