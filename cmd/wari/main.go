// Command wari runs the WARI Market cotton marketplace front end.
package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/wari-market/wari/internal/config"
	"github.com/wari-market/wari/internal/logging"
	"github.com/wari-market/wari/internal/service"
)

var rootCmd = &cobra.Command{
	Use:   "wari",
	Short: "WARI Market, a marketplace for Peruvian native cotton",
	Long: `WARI Market opens the landing page with the product catalog, the
zoomable production map and the harvest simulator. Signing in switches to
the producer dashboard.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (YAML)")
	flags.String("content", "", "content file overriding the built-in catalog, regions and tables")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.Int("width", 0, "window width in pixels")
	flags.Int("height", 0, "window height in pixels")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("config")
	v, err := config.New(path)
	if err != nil {
		return err
	}
	// Flags only win when set; otherwise the file, env and defaults apply.
	flags := cmd.Flags()
	_ = v.BindPFlag("content.file", flags.Lookup("content"))
	_ = v.BindPFlag("window.width", flags.Lookup("width"))
	_ = v.BindPFlag("window.height", flags.Lookup("height"))
	_ = v.BindPFlag("logging.level", flags.Lookup("log-level"))

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	content, err := service.NewContentService(cfg.Content.File).Load()
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}

	locale, err := language.Parse(cfg.Locale)
	if err != nil {
		logger.Warn("unknown locale, using es-PE", zap.String("locale", cfg.Locale), zap.Error(err))
		locale = language.MustParse("es-PE")
	}

	logger.Info("starting",
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Int("products", len(content.Products)),
		zap.Int("regions", len(content.Regions)),
		zap.String("locale", locale.String()))

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	game := NewGame(cfg, logger, content, locale)
	defer game.Close()
	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
