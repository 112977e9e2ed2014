package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/csheth/learnmaster/internal/config"
	"github.com/csheth/learnmaster/internal/logging"
	"github.com/csheth/learnmaster/internal/source"
	"github.com/csheth/learnmaster/internal/summarizer"
	"github.com/csheth/learnmaster/internal/tui"
)

// app carries flag values and the loaded configuration for one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	verbose bool
	file    string
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	return a.rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "learnmaster",
		Short: "Summarize a paragraph and generate study questions",
		Long: `learnmaster turns any paragraph into a concise summary and a short quiz.

Without a subcommand it opens the interactive form, which posts the paragraph
to the summarizer service configured by --endpoint.

Example usage:
  learnmaster                          # Open the form
  learnmaster --file chapter.pdf       # Open the form seeded from a file
  learnmaster serve                    # Run the summarizer service on :8000
  learnmaster generate "Some text"     # Print a study guide and exit`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig()
		},
		RunE: a.runForm,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is .learnmaster.yaml)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	flags.String("endpoint", "", "summarizer endpoint (default "+summarizer.DefaultEndpoint+")")
	flags.StringVarP(&a.file, "file", "f", "", "read the paragraph from a .txt or .pdf file or URL")
	_ = a.v.BindPFlag("summarizer.endpoint", flags.Lookup("endpoint"))

	cmd.Flags().Bool("no-alt-screen", false, "disable the alternate screen buffer")

	cmd.AddCommand(a.serveCmd(), a.generateCmd())
	return cmd
}

func (a *app) loadConfig() error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg
	return nil
}

func (a *app) newLogger(file string) (*zap.Logger, error) {
	return logging.New(logging.Options{
		Level:   a.cfg.Logging.Level,
		File:    file,
		Verbose: a.verbose,
	})
}

func (a *app) summarizerClient() *summarizer.HTTPClient {
	return summarizer.New(summarizer.Config{
		Endpoint: a.cfg.Summarizer.Endpoint,
		Timeout:  a.cfg.Summarizer.Timeout,
	})
}

func (a *app) runForm(cmd *cobra.Command, _ []string) error {
	logger, err := a.newLogger(a.cfg.Logging.File)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var initial string
	if a.file != "" {
		initial, err = source.Load(cmd.Context(), a.file)
		if err != nil {
			return err
		}
	}

	client := a.summarizerClient()
	logger.Info("form starting",
		zap.String("endpoint", client.Endpoint()),
		zap.Duration("timeout", a.cfg.Summarizer.Timeout),
		zap.Int("seed_chars", len(initial)))

	opts := []tea.ProgramOption{tea.WithContext(cmd.Context())}
	noAltScreen, _ := cmd.Flags().GetBool("no-alt-screen")
	if a.cfg.UI.AltScreen && !noAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			Summarizer:    client,
			Logger:        logger,
			FeedbackDelay: a.cfg.Clipboard.FeedbackDelay,
			InitialText:   initial,
			Endpoint:      client.Endpoint(),
		}),
		opts...,
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}
