package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"voicemail-whisper/cmd/vmw/cmd/export"
	"voicemail-whisper/cmd/vmw/cmd/migrate"
	"voicemail-whisper/cmd/vmw/cmd/serve"
	"voicemail-whisper/cmd/vmw/cmd/shared"
	"voicemail-whisper/cmd/vmw/cmd/status"
	"voicemail-whisper/cmd/vmw/cmd/submit"
	"voicemail-whisper/cmd/vmw/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vmw",
	Short: "Transcribe school absence voicemails and extract who is off and why",
	Long: `Transcribe school absence voicemails and extract who is off and why.
- Each clip is transcribed fast, then accurately, then parsed by a language model
- Progress is persisted after every stage and can be polled over HTTP
- Clips interrupted by a restart are resumed by serve`,
	SilenceUsage:     true,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(submit.Cmd)
	rootCmd.AddCommand(status.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(migrate.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().StringVarP(&shared.ConfigPath, "config", "c", "", "YAML config file (environment variables override it)")
}
