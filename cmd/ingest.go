package cmd

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/bgraf/randomimage/config"
	"github.com/bgraf/randomimage/ingest"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest [DIR]",
	Short: "Record the files of the media directory in the store",
	Long: `Ingest scans the media directory and records every file together with
its description. A description is read from a sidecar file named like the
file plus ".md", or from the EXIF image description.

DIR overrides the configured media directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().Bool("reset", false, "Remove all records before ingesting")
	ingestCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	ingestCmd.Flags().IntP("jobs", "j", 0, "Files inspected concurrently (default: number of CPUs)")
}

func runIngest(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		viper.Set(config.KeyMediaDirectory, args[0])
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if reset, _ := cmd.Flags().GetBool("reset"); reset {
		confirmed, _ := cmd.Flags().GetBool("yes")
		if !confirmed {
			prompt := &survey.Confirm{
				Message: fmt.Sprintf("Remove all records from %s", config.StorePath()),
				Default: false,
			}
			if err := survey.AskOne(prompt, &confirmed); err != nil {
				return err
			}
		}

		if !confirmed {
			return nil
		}

		if err := s.Reset(cmd.Context()); err != nil {
			return err
		}
	}

	jobs, _ := cmd.Flags().GetInt("jobs")

	result, err := ingest.Run(cmd.Context(), s, config.MediaDirectory(), ingest.Options{
		Concurrency: jobs,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}

	logger.Info("ingest finished",
		zap.String("directory", config.MediaDirectory()),
		zap.Int("added", result.Added),
		zap.Int("skipped", result.Skipped))

	return nil
}
