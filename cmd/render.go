package cmd

import (
	"fmt"
	"os"

	"github.com/bgraf/randomimage/cmd/serve"
	"github.com/bgraf/randomimage/config"
	"github.com/bgraf/randomimage/randomimage"
	"github.com/bgraf/randomimage/wikitext"
	"github.com/spf13/cobra"
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a random image thumbnail",
	Long: `Render picks an image and prints its thumbnail HTML.

Without --page the flags act as the attributes of a single <randomimage> tag.
With --page the given file is rendered as a whole, expanding every
<randomimage> tag in it.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().String(randomimage.AttrSize, "", "Thumbnail width in pixels")
	renderCmd.Flags().String(randomimage.AttrFloat, "", "Alignment: left, right or center")
	renderCmd.Flags().String(randomimage.AttrChoices, "", "Candidate file names separated by '|'")
	renderCmd.Flags().String("caption", "", "Caption, overrides the description page")
	renderCmd.Flags().String("base-url", "", "Prefix for generated links")
	renderCmd.Flags().String("page", "", "Render a whole page file instead of a single tag")
}

func runRender(cmd *cobra.Command, args []string) error {
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

	settings := config.Load()
	baseURL, _ := cmd.Flags().GetString("base-url")

	hook := randomimage.Hook{
		Deps:     randomimage.Deps{Store: s, Logger: logger},
		Settings: settings,
	}
	parser := wikitext.NewParser(wikitext.URLs{Base: baseURL}, settings.ThumbWidth)

	if pagePath, _ := cmd.Flags().GetString("page"); pagePath != "" {
		source, err := os.ReadFile(pagePath)
		if err != nil {
			return fmt.Errorf("read page: %w", err)
		}

		serve.RegisterHook(parser, hook)

		out, err := parser.Parse(cmd.Context(), string(source))
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	}

	// Only flags given on the command line count as tag attributes.
	attrs := make(map[string]string)
	for _, name := range []string{randomimage.AttrSize, randomimage.AttrFloat, randomimage.AttrChoices} {
		if cmd.Flags().Changed(name) {
			attrs[name], _ = cmd.Flags().GetString(name)
		}
	}

	caption, _ := cmd.Flags().GetString("caption")

	out := hook.Render(cmd.Context(), caption, attrs, parser)
	if out == "" {
		return fmt.Errorf("no image could be selected")
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)

	return nil
}
