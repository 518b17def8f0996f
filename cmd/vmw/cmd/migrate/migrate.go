package migrate

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"voicemail-whisper/internal/app"
	"voicemail-whisper/internal/app/repository"
	copier "voicemail-whisper/internal/app/repository/migrate"
	"voicemail-whisper/internal/logging"
)

var (
	fromDriver string
	fromDSN    string
	toDriver   string
	toDSN      string
	cursorPath string
	noProgress bool
)

func init() {
	Cmd.Flags().StringVar(&fromDriver, "from-driver", repository.DriverSQLite, "source driver (sqlite3 or postgres)")
	Cmd.Flags().StringVar(&fromDSN, "from", "./data/voicemail.db", "source DSN")
	Cmd.Flags().StringVar(&toDriver, "to-driver", repository.DriverPostgres, "destination driver (sqlite3 or postgres)")
	Cmd.Flags().StringVar(&toDSN, "to", "", "destination DSN")
	Cmd.Flags().StringVar(&cursorPath, "cursor", "./data/migrate_last_id.txt", "file remembering the last copied clip id")

	Cmd.Flags().BoolVar(&noProgress, "no-progress", false, "do not draw a progress bar")

	Cmd.MarkFlagRequired("to")
}

// Cmd represents the migrate command
var Cmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy clips from one store to another",
	Long: `Copy clips from one store to another, keeping their ids.

- Runs in batches and remembers the last copied id, so it can be re-run after an interruption
- Clips without audio are skipped`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := logging.New("info", true)
		if err != nil {
			return err
		}
		defer logger.Sync()

		ctx := cmd.Context()
		src, err := app.OpenStore(ctx, fromDriver, fromDSN)
		if err != nil {
			return fmt.Errorf("open source: %w", err)
		}
		defer src.Close()

		dst, err := app.OpenStore(ctx, toDriver, toDSN)
		if err != nil {
			return fmt.Errorf("open destination: %w", err)
		}
		defer dst.Close()

		c := copier.NewCopier(src, dst, cursorPath, logger)
		var bar *progressBar
		if !noProgress && isTTY(os.Stderr) {
			bar = newProgressBar(os.Stderr)
			c.WithProgress(bar)
		}

		copied, err := c.Run(ctx)
		if bar != nil {
			bar.Done()
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "migrated %d clips\n", copied)
		return nil
	},
}
