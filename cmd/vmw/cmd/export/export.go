package export

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"voicemail-whisper/cmd/vmw/cmd/shared"
	"voicemail-whisper/internal/app"
	clipexport "voicemail-whisper/internal/app/export"
	"voicemail-whisper/internal/app/model"
)

var (
	outputFilePath string
	limit          int
	statuses       string
)

func init() {
	Cmd.Flags().StringVarP(&outputFilePath, "outputFilePath", "o", "", "set outputFilePath")
	Cmd.Flags().IntVarP(&limit, "limit", "n", 1000, "export at most this many clips, newest first")
	Cmd.Flags().StringVarP(&statuses, "status", "s", "", "comma separated statuses to export")

	Cmd.MarkFlagRequired("outputFilePath")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export clips and their extracted fields to excel",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := lo.FilterMap(strings.Split(statuses, ","), func(s string, _ int) (model.Status, bool) {
			s = strings.TrimSpace(s)
			return model.Status(s), s != ""
		})
		for _, s := range filter {
			if !s.Valid() {
				return fmt.Errorf("unknown status %q", s)
			}
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

		views, err := reader.Status.List(ctx, limit, filter...)
		if err != nil {
			return err
		}
		if err := clipexport.ToExcel(views, outputFilePath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "export finished, %d clips, exported file path: %v\n", len(views), outputFilePath)
		return nil
	},
}
