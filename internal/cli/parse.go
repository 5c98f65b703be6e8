package cli

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/spendwise/backend/internal/category"
	"github.com/spendwise/backend/internal/config"
	"github.com/spendwise/backend/internal/parser"
	"github.com/spendwise/backend/internal/pipeline"
	"github.com/spf13/cobra"
)

type parseOutput struct {
	parser.Candidate
	Category category.Category `json:"category"`
}

func newParseCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [message]",
		Short: "Parse and categorize a message without storing it",
		Long: `Parses a notification message and prints the transaction it describes
as JSON. Match rules are not applied since the database is not opened.
If the message is "-" or missing, it is read from standard input.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := message(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			strategy, err := newStrategy(cfg, nil)
			if err != nil {
				return err
			}

			opts, err := pipelineOptions(cfg)
			if err != nil {
				return err
			}

			candidate, c, err := pipeline.New(nil, strategy, nil, nil, opts).Parse(cmd.Context(), text)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(parseOutput{Candidate: candidate, Category: c})
		},
	}
}

func message(stdin io.Reader, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		return args[0], nil
	}

	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(string(b))
	if text == "" {
		return "", errors.New("no message given")
	}
	return text, nil
}
