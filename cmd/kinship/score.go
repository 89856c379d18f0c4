package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Kinship/internal/intake"
	"github.com/MikeSquared-Agency/Kinship/internal/scoring"
	"github.com/MikeSquared-Agency/Kinship/internal/store"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a submission file offline and print the report",
	Long: `Score reads a submission of the form {"answers": [{"question_id": "...", "value": n}]}
from --file (or stdin when the file is "-") and prints the full analysis as JSON.
Nothing is archived or published.`,
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringP("file", "f", "-", "submission file, - for stdin")
}

type scoreInput struct {
	Answers []scoring.Answer `json:"answers"`
}

func runScore(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cat, err := loadCatalogue(cfg)
	if err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("file")
	data, err := readInput(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}
	var in scoreInput
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("parse submission: %w", err)
	}

	// Logs go to stderr so stdout stays a clean JSON document.
	logger := newLogger(cfg.Logging, cmd.ErrOrStderr())
	svc := intake.New(cat, nil, nil, nil, intake.Options{
		MinAnswers:       cfg.Assessment.MinAnswers,
		StrictValidation: cfg.Assessment.StrictValidation,
	}, logger)

	result, err := svc.Submit(cmd.Context(), in.Answers, store.SourceCLI)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read submission: %w", err)
	}
	return data, nil
}
