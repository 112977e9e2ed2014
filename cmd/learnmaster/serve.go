package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/csheth/learnmaster/internal/llm"
	"github.com/csheth/learnmaster/internal/server"
)

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the summarizer service",
		Long: `Run the HTTP service the form talks to.

POST /generate accepts {"paragraph": "..."} and answers with
{"summary": "...", "questions": [...]} produced by the configured model.
Without --llm-provider, MISTRAL_API_KEY selects Mistral, OPENAI_API_KEY
selects OpenAI and otherwise a local Ollama is used.`,
		Args: cobra.NoArgs,
		RunE: a.runServe,
	}

	flags := cmd.Flags()
	flags.String("addr", "", "listen address (default :8000)")
	flags.String("llm-provider", "", "ollama, openai or mistral (default: auto-detect)")
	flags.String("llm-model", "", "override the provider's default model")
	flags.String("llm-endpoint", "", "custom provider base URL (eg. http://localhost:11434)")
	_ = a.v.BindPFlag("server.addr", flags.Lookup("addr"))
	_ = a.v.BindPFlag("llm.provider", flags.Lookup("llm-provider"))
	_ = a.v.BindPFlag("llm.model", flags.Lookup("llm-model"))
	_ = a.v.BindPFlag("llm.endpoint", flags.Lookup("llm-endpoint"))
	return cmd
}

func (a *app) runServe(cmd *cobra.Command, _ []string) error {
	logger, err := a.newLogger("")
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	client, err := llm.NewFromEnv(llm.Config{
		Provider: a.cfg.LLM.Provider,
		Model:    a.cfg.LLM.Model,
		Endpoint: a.cfg.LLM.Endpoint,
	})
	if err != nil {
		return fmt.Errorf("configuring llm: %w", err)
	}
	logger.Info("llm configured", zap.String("provider", client.Name()))

	srv := server.New(server.Config{
		Addr:   a.cfg.Server.Addr,
		LLM:    client,
		Logger: logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return srv.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", zap.NamedError("cause", context.Cause(gctx)))
		return nil
	})
	return g.Wait()
}
