package cli

import (
	"os"

	"github.com/avdmeer/woordlicht/internal/config"
	"github.com/avdmeer/woordlicht/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "woordlicht",
	Short: "Word-highlight subtitle generator for videos",
	Long: `Woordlicht generates word-highlight subtitles for video files.

It transcribes speech with word-level timestamps, groups the words into
caption lines, and renders subtitles that highlight each word as it is
spoken. The transcript is saved as an editable JSON file between the
transcription and render steps so mistakes can be fixed by hand.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		StringP("language", "l", "nl", "Language code of the audio (e.g., nl, en, de)")
	rootCmd.PersistentFlags().
		StringP("config", "c", "", "Path to a woordlicht.yaml config file")
}

// loadConfig reads the config file named by --config, falling back to
// woordlicht.yaml in the working directory when one exists. A nil File
// is valid and yields the built-in defaults.
func loadConfig(cmd *cobra.Command) (*config.File, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		if _, err := os.Stat("woordlicht.yaml"); err != nil {
			return nil, nil
		}
		path = "woordlicht.yaml"
	}
	return config.Load(path)
}
