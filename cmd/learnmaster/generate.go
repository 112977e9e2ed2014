package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/csheth/learnmaster/internal/session"
	"github.com/csheth/learnmaster/internal/source"
	"github.com/csheth/learnmaster/internal/summarizer"
)

var errEmptyParagraph = errors.New("paragraph is empty")

type generateOutput struct {
	Summary   string   `json:"summary"`
	Questions []string `json:"questions"`
}

func (a *app) generateCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "generate [paragraph...]",
		Short: "Print a summary and study questions for one paragraph",
		Long: `Send one paragraph to the summarizer service and print the result.

The paragraph comes from --file, from the arguments joined by spaces, or
from stdin, in that order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd, args, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, args []string, asJSON bool) error {
	logger, err := a.newLogger("")
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	paragraph, err := a.readParagraph(cmd, args)
	if err != nil {
		return err
	}
	state, err := generateOnce(cmd.Context(), a.summarizerClient(), paragraph, logger)
	if err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), *state.Request.Result, asJSON)
}

func (a *app) readParagraph(cmd *cobra.Command, args []string) (string, error) {
	switch {
	case a.file != "":
		return source.Load(cmd.Context(), a.file)
	case len(args) > 0:
		return strings.Join(args, " "), nil
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
}

// generateOnce runs a single paragraph through the form's state machine and
// performs the one request it asks for. The returned state has settled in
// succeeded or failed; on success its Request.Result is set.
func generateOnce(ctx context.Context, client summarizer.Client, paragraph string, logger *zap.Logger) (session.State, error) {
	state := session.New()
	state, _ = session.Reduce(state, session.TextChanged{Text: paragraph})
	state, effects := session.Reduce(state, session.SubmitRequested{})

	var request *session.Summarize
	for _, effect := range effects {
		if summarize, ok := effect.(session.Summarize); ok {
			request = &summarize
		}
	}
	if request == nil {
		return state, errEmptyParagraph
	}
	logger.Debug("requesting study guide",
		zap.Uint64("generation", request.Generation),
		zap.Int("words", state.Paragraph.WordCount))

	result, err := client.Generate(ctx, request.Paragraph)
	if err != nil {
		logger.Warn("summary request failed",
			zap.Uint64("generation", request.Generation),
			zap.Error(err))
		state, _ = session.Reduce(state, session.RequestFailed{Generation: request.Generation, Err: err})
		return state, fmt.Errorf("generating study guide: %w", err)
	}
	state, _ = session.Reduce(state, session.RequestSucceeded{
		Generation: request.Generation,
		Summary:    result.Summary,
		Questions:  result.Questions,
	})
	if state.Request.Result == nil {
		return state, fmt.Errorf("response for generation %d was not applied", request.Generation)
	}
	return state, nil
}

func printResult(w io.Writer, result session.Result, asJSON bool) error {
	if asJSON {
		out := generateOutput{Summary: result.Summary, Questions: result.Questions}
		if out.Questions == nil {
			out.Questions = []string{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintln(w, "Summary")
	fmt.Fprintln(w, result.Summary)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Questions")
	for idx, question := range result.Questions {
		fmt.Fprintf(w, "%d. %s\n", idx+1, question)
	}
	return nil
}
