package cmd

import (
	"github.com/bgraf/randomimage/cmd/serve"
	"github.com/bgraf/randomimage/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve random images, thumbnails and description pages over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
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

		return serve.Run(cmd.Context(), s, config.Load(), config.ServeAddress(), logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("address", "a", "", "Listen address (default :8000)")

	if err := viper.BindPFlag(config.KeyServeAddress, serveCmd.Flags().Lookup("address")); err != nil {
		panic(err)
	}
}
