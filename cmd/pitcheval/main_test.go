package main

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fadilmartias/pitch-evaluator/internal/model"
	"github.com/fadilmartias/pitch-evaluator/internal/report"
	"github.com/fadilmartias/pitch-evaluator/internal/scoring"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// writePitchFiles writes a one-paragraph deck and an opaque audio file.
func writePitchFiles(t *testing.T) (deck, audio string) {
	t.Helper()
	dir := t.TempDir()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>`+
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`+
		`<w:p><w:r><w:t>Our solution cuts reporting time by 50% with a subscription pricing model.</w:t></w:r></w:p>`+
		`</w:body></w:document>`)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	deck = filepath.Join(dir, "deck.docx")
	require.NoError(t, os.WriteFile(deck, buf.Bytes(), 0o644))
	audio = filepath.Join(dir, "pitch.mp3")
	require.NoError(t, os.WriteFile(audio, []byte("ID3"), 0o644))
	return deck, audio
}

func TestEvaluateJSONWritesReports(t *testing.T) {
	deck, audio := writePitchFiles(t)
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "report.csv")
	docxPath := filepath.Join(dir, "report.docx")

	out, err := executeCommand(t, "evaluate",
		"--presentation", deck,
		"--audio", audio,
		"--provider", "heuristic",
		"--no-jitter",
		"--format", "json",
		"--csv", csvPath,
		"--docx", docxPath,
		"--section", "delivery",
	)
	require.NoError(t, err)

	var got evaluationOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, "deck.docx", got.Presentation)
	require.Equal(t, "pitch.mp3", got.Audio)
	require.Equal(t, model.SourceHeuristic, got.Source)
	require.Empty(t, got.FallbackReason)
	require.Len(t, got.Rows, len(model.Criteria)+1)
	require.Equal(t, report.OverallLabel, got.Rows[len(got.Rows)-1].Section)
	require.Equal(t, got.Overall, got.Rows[len(got.Rows)-1].Score)
	require.NotNil(t, got.Detail)
	require.Equal(t, model.CriterionDelivery, got.Detail.Criterion)

	csvData, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(csvData), "Section,Weight,Score,Weighted Score,Feedback,Improvement"))

	info, err := os.Stat(docxPath)
	require.NoError(t, err)
	require.Positive(t, info.Size())
}

func TestEvaluateTable(t *testing.T) {
	deck, audio := writePitchFiles(t)

	out, err := executeCommand(t, "evaluate", "-p", deck, "-a", audio, "--provider", "heuristic", "--seed", "7")
	require.NoError(t, err)
	require.Contains(t, out, "Scored by:    heuristic")
	require.Contains(t, out, report.OverallLabel)
	require.Contains(t, out, "Problem Framing")
}

func TestEvaluateRejectsBadInput(t *testing.T) {
	deck, audio := writePitchFiles(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing audio", []string{"evaluate", "-p", deck}, `"audio" not set`},
		{"bad format", []string{"evaluate", "-p", deck, "-a", audio, "-f", "xml"}, "unknown output format"},
		{"bad provider", []string{"evaluate", "-p", deck, "-a", audio, "--provider", "bard"}, "unknown scoring provider"},
		{"bad section", []string{"evaluate", "-p", deck, "-a", audio, "--section", "team"}, "unknown criterion"},
		{"unsupported deck", []string{"evaluate", "-p", audio, "-a", audio}, "unsupported file type"},
		{"missing file", []string{"evaluate", "-p", deck + ".missing.pdf", "-a", audio}, "read presentation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRubricTable(t *testing.T) {
	out, err := executeCommand(t, "rubric")
	require.NoError(t, err)
	require.Contains(t, out, "Problem Framing")
	require.Contains(t, out, "25%")
	require.Contains(t, out, "4-minute")
}

func TestRubricYAML(t *testing.T) {
	out, err := executeCommand(t, "rubric", "--format", "yaml")
	require.NoError(t, err)

	var got scoring.Rubric
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Len(t, got.Criteria, len(model.Criteria))
	require.Equal(t, model.CriterionProblem, got.Criteria[0].Criterion)
}

func TestRubricSection(t *testing.T) {
	out, err := executeCommand(t, "rubric", "--section", "financials")
	require.NoError(t, err)
	require.Contains(t, out, "Financial Overview (20%)")
	require.Contains(t, out, "Needs Improvement")

	_, err = executeCommand(t, "rubric", "--section", "team")
	require.Error(t, err)
}
