package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fadilmartias/pitch-evaluator/internal/bootstrap"
	"github.com/fadilmartias/pitch-evaluator/internal/config"
	"github.com/fadilmartias/pitch-evaluator/internal/logger"
	"github.com/fadilmartias/pitch-evaluator/internal/model"
	"github.com/fadilmartias/pitch-evaluator/internal/report"
	"github.com/fadilmartias/pitch-evaluator/internal/usecase"
	"github.com/spf13/cobra"
)

type evaluateOptions struct {
	presentation string
	audio        string
	format       string
	csvPath      string
	docxPath     string
	section      string
	provider     string
	seed         uint64
	noJitter     bool
}

// evaluationOutput is the machine-readable shape of one CLI evaluation.
type evaluationOutput struct {
	Presentation   string                `json:"presentation" yaml:"presentation"`
	Audio          string                `json:"audio" yaml:"audio"`
	Source         model.ScoringSource   `json:"source" yaml:"source"`
	FallbackReason string                `json:"fallback_reason,omitempty" yaml:"fallback_reason,omitempty"`
	Overall        float64               `json:"overall" yaml:"overall"`
	Rows           []report.Row          `json:"rows" yaml:"rows"`
	Detail         *report.SectionDetail `json:"detail,omitempty" yaml:"detail,omitempty"`
}

func newEvaluateCommand(logLevel *string) *cobra.Command {
	var opts evaluateOptions

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score a presentation and its audio recording",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(cmd, *logLevel, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.presentation, "presentation", "p", "", "Pitch deck (.ppt, .pptx, .pdf, .doc or .docx)")
	cmd.Flags().StringVarP(&opts.audio, "audio", "a", "", "Recorded pitch (.mp3, .wav, .ogg or .m4a)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(formatTable), "Output format: table, json or yaml")
	cmd.Flags().StringVar(&opts.csvPath, "csv", "", "Also write the report as CSV to this path")
	cmd.Flags().StringVar(&opts.docxPath, "docx", "", "Also write the report as a Word document to this path")
	cmd.Flags().StringVar(&opts.section, "section", "", "Show the detail view for one criterion")
	cmd.Flags().StringVar(&opts.provider, "provider", "", "Override SCORER_PROVIDER (gemini, openrouter, heuristic)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Seed the heuristic score jitter for reproducible runs")
	cmd.Flags().BoolVar(&opts.noJitter, "no-jitter", false, "Disable the heuristic score jitter")
	_ = cmd.MarkFlagRequired("presentation")
	_ = cmd.MarkFlagRequired("audio")

	return cmd
}

func runEvaluate(cmd *cobra.Command, logLevel string, opts evaluateOptions) error {
	format, err := parseFormat(opts.format)
	if err != nil {
		return err
	}

	var section model.Criterion
	if opts.section != "" {
		if section, err = model.ParseCriterion(opts.section); err != nil {
			return err
		}
	}

	scoringConfig, err := scoringOverrides(*config.LoadScoringConfig(), opts)
	if err != nil {
		return err
	}

	doc, err := readSourceDocument(opts.presentation)
	if err != nil {
		return err
	}
	clip, err := readAudioClip(opts.audio)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	log := logger.NewWithWriter(cmd.ErrOrStderr(), logLevel, "text")
	uc, err := bootstrap.NewEvaluationUsecase(ctx, &scoringConfig, log)
	if err != nil {
		return err
	}

	session, err := uc.Evaluate(ctx, doc, clip)
	if err != nil {
		return err
	}
	result := session.Result

	if opts.csvPath != "" {
		if err := writeFile(opts.csvPath, func(f *os.File) error { return report.WriteCSV(f, result) }); err != nil {
			return fmt.Errorf("write csv report: %w", err)
		}
	}
	if opts.docxPath != "" {
		if err := report.SaveDocx(opts.docxPath, usecase.ReportTitle, result); err != nil {
			return fmt.Errorf("write docx report: %w", err)
		}
	}

	rep := report.Build(result)
	out := evaluationOutput{
		Presentation:   doc.Name,
		Audio:          clip.Name,
		Source:         result.Source,
		FallbackReason: result.FallbackReason,
		Overall:        result.Overall,
		Rows:           rep.Rows,
	}
	if section != "" {
		detail, err := uc.SectionDetail(session.ID.String(), section)
		if err != nil {
			return err
		}
		out.Detail = &detail
	}

	if ok, err := writeStructured(cmd, format, out); ok {
		return err
	}
	return renderEvaluation(cmd, rep, out)
}

func scoringOverrides(cfg config.ScoringConfig, opts evaluateOptions) (config.ScoringConfig, error) {
	if opts.provider != "" {
		switch p := strings.ToLower(opts.provider); p {
		case config.ProviderGemini, config.ProviderOpenRouter, config.ProviderHeuristic:
			cfg.Provider = p
		default:
			return cfg, fmt.Errorf("unknown scoring provider %q", opts.provider)
		}
	}
	if opts.seed != 0 {
		cfg.JitterEnabled = true
		cfg.JitterSeed = opts.seed
	}
	if opts.noJitter {
		cfg.JitterEnabled = false
	}
	return cfg, nil
}

func readSourceDocument(path string) (model.SourceDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.SourceDocument{}, fmt.Errorf("read presentation: %w", err)
	}
	return usecase.NewSourceDocument(filepath.Base(path), data)
}

func readAudioClip(path string) (model.AudioClip, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.AudioClip{}, fmt.Errorf("read audio: %w", err)
	}
	return usecase.NewAudioClip(filepath.Base(path), data)
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func renderEvaluation(cmd *cobra.Command, rep report.Report, out evaluationOutput) error {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Presentation: %s\nAudio:        %s\n", out.Presentation, out.Audio)
	source := string(out.Source)
	if out.FallbackReason != "" {
		source += " (fallback: " + out.FallbackReason + ")"
	}
	fmt.Fprintf(w, "Scored by:    %s\n\n", source)

	headers := rep.Header()
	aligns := []columnAlignment{alignLeft, alignRight, alignRight, alignRight}
	fmt.Fprintln(w, renderTable(headers, rep.Records(), aligns))

	if out.Detail != nil {
		fmt.Fprintln(w)
		renderDetail(cmd, *out.Detail)
	}
	return nil
}

func renderDetail(cmd *cobra.Command, d report.SectionDetail) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s (%s): %.1f, %s\n", d.Label, d.Weight, d.Score, d.Rating)
	if d.Feedback != "" {
		fmt.Fprintf(w, "Feedback: %s\n", d.Feedback)
	}

	rows := make([][]string, 0, len(d.Checklist))
	for _, item := range d.Checklist {
		mark := "-"
		if item.Met {
			mark = "x"
		}
		rows = append(rows, []string{mark, item.Text})
	}
	fmt.Fprintln(w, renderTable([]string{"Met", "Checklist"}, rows, nil))

	for _, s := range d.Strengths {
		fmt.Fprintf(w, "+ %s\n", s)
	}
	for _, s := range d.Improvements {
		fmt.Fprintf(w, "! %s\n", s)
	}
	fmt.Fprintf(w, "Suggestion: %s\n", d.Suggestion)
}
