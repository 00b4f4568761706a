package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fadilmartias/pitch-evaluator/internal/model"
	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	DocxFilename = "pitch_evaluation_report.docx"

	fontName  = "Calibri"
	fontSize  = 11
	titleSize = 16
	headSize  = 13
	textColor = "000000"
)

// WriteDocx renders the report as a Word document and streams it to w.
func WriteDocx(w io.Writer, title string, result *model.EvaluationResult) error {
	dir, err := os.MkdirTemp("", "pitch-report-*")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, DocxFilename)
	if err := SaveDocx(path, title, result); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open docx: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("copy docx: %w", err)
	}
	return nil
}

// SaveDocx writes the report as a Word document at path.
func SaveDocx(path, title string, result *model.EvaluationResult) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("new docx: %w", err)
	}

	r := Build(result)
	addRun(doc.AddParagraph(""), title, true, titleSize)
	addRun(doc.AddParagraph(""), fmt.Sprintf("Overall score: %s%% (%s)", formatScore(result.Overall), Rating(result.Overall)), true, headSize)
	if result.FallbackReason != "" {
		addRun(doc.AddParagraph(""), "Scored by keyword heuristic: "+result.FallbackReason, false, fontSize)
	}

	for _, row := range r.Rows[:len(r.Rows)-1] {
		doc.AddParagraph("")
		addRun(doc.AddParagraph(""), fmt.Sprintf("%s (%s): %s%%", row.Section, row.Weight, formatScore(row.Score)), true, headSize)
		addLabeled(doc.AddParagraph(""), "Feedback", row.Feedback)
		if r.modelRows() {
			addList(doc, "Strengths", row.Strengths)
			addList(doc, "Improvements", row.Improvements)
		} else {
			addLabeled(doc.AddParagraph(""), "Improvement", row.Improvement)
		}
	}

	overall := r.Rows[len(r.Rows)-1]
	doc.AddParagraph("")
	addLabeled(doc.AddParagraph(""), overall.Section, formatScore(overall.Score))

	if err := doc.SaveTo(path); err != nil {
		return fmt.Errorf("save docx: %w", err)
	}
	return nil
}

func addRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color(textColor)
	if bold {
		run.Bold(true)
	}
}

func addLabeled(p *docx.Paragraph, label, text string) {
	addRun(p, label+": ", true, fontSize)
	addRun(p, text, false, fontSize)
}

func addList(doc *docx.RootDoc, label string, items []string) {
	if len(items) == 0 {
		return
	}
	addRun(doc.AddParagraph(""), label+":", true, fontSize)
	for _, item := range items {
		addRun(doc.AddParagraph(""), "• "+strings.TrimSpace(item), false, fontSize)
	}
}
