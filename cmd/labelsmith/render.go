package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/banshee-data/labelsmith/internal/fsutil"
	"github.com/banshee-data/labelsmith/internal/ident"
	"github.com/banshee-data/labelsmith/internal/labelfile"
	"github.com/banshee-data/labelsmith/internal/labelimg"
	"github.com/banshee-data/labelsmith/internal/logging"
	"github.com/banshee-data/labelsmith/internal/timeutil"
)

var renderCmd = &cobra.Command{
	Use:   "render <identifier>",
	Short: "Compose one label offline from an identifier",
	Long: `render composes and writes a single label without a scanner attached,
for bench testing the layout and assets. The identifier must be 6 to 12
digits, exactly as it would appear between /m/ and / in a scanned line.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		if !ident.Valid(id) {
			return fmt.Errorf("invalid identifier %q: want 6 to 12 digits", id)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := logging.New(cfg.LogLevel)

		fsys := fsutil.OSFileSystem{}
		composer, err := labelimg.NewComposer(cfg, fsys)
		if err != nil {
			return err
		}
		sink, err := labelfile.NewSink(cfg, fsys, timeutil.RealClock{}, logger)
		if err != nil {
			return err
		}

		img, err := composer.Compose(id)
		if err != nil {
			return err
		}
		path, err := sink.WriteLabel(img, composer.FullCode(id))
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVar(&flagConfig, "config", "", "path to JSON config file")
	renderCmd.Flags().StringVar(&flagOutputDir, "output-dir", "", "label output directory")
	rootCmd.AddCommand(renderCmd)
}
