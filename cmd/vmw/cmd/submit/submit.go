package submit

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"voicemail-whisper/cmd/vmw/cmd/shared"
	"voicemail-whisper/internal/app"
)

var noWait bool

func init() {
	Cmd.Flags().BoolVar(&noWait, "no-wait", false, "print the clip id and exit; serve resumes the clip")
}

// Cmd represents the submit command
var Cmd = &cobra.Command{
	Use:   "submit <audio file>",
	Short: "Process one audio file and print its status view",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := shared.LoadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		application, cleanup, err := app.InitializeApplication(ctx, cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		info, err := f.Stat()
		if err != nil {
			return err
		}

		ref, err := application.Audio.Save(ctx, filepath.Base(args[0]), f, info.Size())
		if err != nil {
			return err
		}
		id, err := application.Orchestrator.Submit(ctx, ref)
		if err != nil {
			return err
		}

		if noWait {
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		}

		application.Orchestrator.Wait()

		view, err := application.Status.Status(ctx, id)
		if err != nil {
			return err
		}
		return shared.PrintJSON(cmd.OutOrStdout(), view)
	},
}
