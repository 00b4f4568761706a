package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fadilmartias/pitch-evaluator/internal/model"
	"github.com/fadilmartias/pitch-evaluator/internal/scoring"
)

const (
	OverallLabel  = "OVERALL"
	overallWeight = "100%"
	listSeparator = "; "
)

// Row is one line of the flat evaluation report.
type Row struct {
	Section       string   `json:"section" yaml:"section"`
	Weight        string   `json:"weight" yaml:"weight"`
	Score         float64  `json:"score" yaml:"score"`
	WeightedScore float64  `json:"weighted_score" yaml:"weighted_score"`
	Feedback      string   `json:"feedback" yaml:"feedback"`
	Improvement   string   `json:"improvement,omitempty" yaml:"improvement,omitempty"`
	Strengths     []string `json:"strengths,omitempty" yaml:"strengths,omitempty"`
	Improvements  []string `json:"improvements,omitempty" yaml:"improvements,omitempty"`
}

// Report is the tabular view of one evaluation. Heuristic results carry a single
// improvement suggestion per row; model results carry strength and improvement lists.
type Report struct {
	Source model.ScoringSource `json:"source" yaml:"source"`
	Rows   []Row               `json:"rows" yaml:"rows"`
}

// Build lays the result out in report order followed by the overall row.
func Build(result *model.EvaluationResult) Report {
	r := Report{Source: result.Source}
	for _, c := range model.Criteria {
		s := result.Sections[c]
		row := Row{
			Section:       scoring.Label(c),
			Weight:        scoring.WeightLabel(c),
			Score:         s.Score,
			WeightedScore: s.Score * scoring.Weights[c],
			Feedback:      s.Feedback,
		}
		if r.modelRows() {
			row.Strengths = s.Strengths
			row.Improvements = s.Improvements
		} else {
			row.Improvement = Suggestion(c, s.Score)
		}
		r.Rows = append(r.Rows, row)
	}
	r.Rows = append(r.Rows, Row{
		Section:       OverallLabel,
		Weight:        overallWeight,
		Score:         result.Overall,
		WeightedScore: result.Overall,
	})
	return r
}

func (r Report) modelRows() bool {
	return r.Source == model.SourceModel
}

// Header returns the column names for the report's source.
func (r Report) Header() []string {
	header := []string{"Section", "Weight", "Score", "Weighted Score", "Feedback"}
	if r.modelRows() {
		return append(header, "Strengths", "Improvements")
	}
	return append(header, "Improvement")
}

// Records renders every row as strings in Header order.
func (r Report) Records() [][]string {
	records := make([][]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		rec := []string{
			row.Section,
			row.Weight,
			formatScore(row.Score),
			strconv.FormatFloat(row.WeightedScore, 'f', 2, 64),
			row.Feedback,
		}
		if r.modelRows() {
			rec = append(rec, strings.Join(row.Strengths, listSeparator), strings.Join(row.Improvements, listSeparator))
		} else {
			rec = append(rec, row.Improvement)
		}
		records = append(records, rec)
	}
	return records
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// SectionDetail is the drill-down view of one criterion.
type SectionDetail struct {
	Criterion    model.Criterion         `json:"id" yaml:"id"`
	Label        string                  `json:"label" yaml:"label"`
	Weight       string                  `json:"weight" yaml:"weight"`
	Score        float64                 `json:"score" yaml:"score"`
	Rating       string                  `json:"rating" yaml:"rating"`
	Feedback     string                  `json:"feedback" yaml:"feedback"`
	Checklist    []scoring.ChecklistItem `json:"checklist" yaml:"checklist"`
	Suggestion   string                  `json:"suggestion" yaml:"suggestion"`
	Strengths    []string                `json:"strengths,omitempty" yaml:"strengths,omitempty"`
	Improvements []string                `json:"improvements,omitempty" yaml:"improvements,omitempty"`
}

func Detail(result *model.EvaluationResult, c model.Criterion) (SectionDetail, error) {
	s, ok := result.Section(c)
	if !ok {
		return SectionDetail{}, fmt.Errorf("%w: %s", model.ErrMissingCriterion, c)
	}
	rubric := scoring.RubricFor(c)
	return SectionDetail{
		Criterion:    c,
		Label:        rubric.Label,
		Weight:       rubric.WeightLabel,
		Score:        s.Score,
		Rating:       Rating(s.Score),
		Feedback:     s.Feedback,
		Checklist:    rubric.Checklist,
		Suggestion:   Suggestion(c, s.Score),
		Strengths:    s.Strengths,
		Improvements: s.Improvements,
	}, nil
}
