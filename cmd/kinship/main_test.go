package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Kinship/internal/catalogue"
	"github.com/MikeSquared-Agency/Kinship/internal/config"
	"github.com/MikeSquared-Agency/Kinship/internal/scoring"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("KINSHIP_LOG_LEVEL", "error")
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeSubmission(t *testing.T, overrides map[string]int) string {
	t.Helper()
	var answers []scoring.Answer
	for _, q := range catalogue.Default().Questions() {
		v := q.Midpoint()
		if o, ok := overrides[q.ID]; ok {
			v = o
		}
		answers = append(answers, scoring.Answer{QuestionID: q.ID, Value: v})
	}
	data, err := json.Marshal(map[string]interface{}{"answers": answers})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "answers.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestScoreCommand(t *testing.T) {
	out, err := execute(t, "", "score", "--file", writeSubmission(t, map[string]int{"ram_01": 3}))
	require.NoError(t, err)

	var result scoring.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, scoring.RiskHigh, result.RAMResult.RiskLevel)
	assert.Equal(t, 4, result.SteppedCare.StepLevel)
}

func TestScoreCommandFromStdin(t *testing.T) {
	_, err := execute(t, `{"answers": []}`, "score", "--file", "-")
	assert.ErrorIs(t, err, scoring.ErrNoAnswers)
}

func TestQuestionsCommand(t *testing.T) {
	out, err := execute(t, "", "questions", "--category", "das")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Greater(t, len(lines), 1)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	for _, l := range lines[1:] {
		assert.True(t, strings.HasPrefix(l, "das_"), l)
	}

	_, err = execute(t, "", "questions", "--category", "tarot")
	assert.ErrorIs(t, err, catalogue.ErrUnknownCategory)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(config.LoggingConfig{Level: "warn", Format: "json"}, &buf)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	logger = newLogger(config.LoggingConfig{Level: "nonsense", Format: "text"}, &buf)
	logger.Info("plain")
	assert.Contains(t, buf.String(), "msg=plain")
}
