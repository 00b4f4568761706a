package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/fadilmartias/pitch-evaluator/internal/model"
)

// CSVFilename is the suggested download name of the CSV export.
const CSVFilename = "pitch_evaluation_report.csv"

// WriteCSV writes the report as comma-separated text with a header row.
func WriteCSV(w io.Writer, result *model.EvaluationResult) error {
	r := Build(result)
	cw := csv.NewWriter(w)
	if err := cw.Write(r.Header()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(r.Records()); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return nil
}
