package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inkvein/storyloop/internal/config"
	"github.com/inkvein/storyloop/internal/engine"
	"github.com/inkvein/storyloop/internal/game"
	"github.com/inkvein/storyloop/internal/narrate"
	"github.com/inkvein/storyloop/internal/tui"
)

const version = "0.1.0"

var (
	loadName string
	logger   *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "storyloop",
	Short: "A surreal text adventure where paradoxes reshape reality",
	Long: `storyloop is an interactive narrative engine. The story is a graph
that grows with every command; repeat yourself, contradict yourself, or
reference things that cannot exist, and the story rewrites itself around
the paradox.

Run without arguments to start playing.`,
	SilenceUsage: true,
	RunE:         runPlay,
}

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List saved sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := game.ListSessions()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("no saved sessions")
			return nil
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("storyloop " + version)
	},
}

func init() {
	rootCmd.Flags().StringVar(&loadName, "load", "", "Resume a saved session by name")
	rootCmd.AddCommand(savesCmd, versionCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	game.SaveDir = cfg.SaveDir

	// The TUI owns the terminal, so logs go to a file or nowhere.
	logger = zap.NewNop()
	if cfg.LogFile != "" {
		zc := zap.NewProductionConfig()
		zc.OutputPaths = []string{cfg.LogFile}
		zc.ErrorOutputPaths = []string{cfg.LogFile}
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
	}
	defer logger.Sync()

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	templates := narrate.NewTemplateGenerator(seed)

	var gen engine.Generator = templates
	if cfg.GeminiAPIKey != "" {
		gemini, err := narrate.NewGemini(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, templates)
		if err != nil {
			return fmt.Errorf("creating Gemini generator: %w", err)
		}
		defer gemini.Close()
		gen = gemini
	}

	eng := engine.New(gen, logger)

	var session *game.Session
	if loadName != "" {
		session, err = game.Load(loadName)
		if err != nil {
			return err
		}
	} else {
		session, err = eng.NewSession()
		if err != nil {
			return err
		}
	}

	return tui.Run(eng, session)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
