package scoring

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fadilmartias/pitch-evaluator/internal/model"
)

const (
	heuristicFloor = 60.0
	heuristicCeil  = 100.0
	feedbackCutoff = 80.0
)

// Keywords are the indicator phrases searched for per criterion. Delivery is
// scored from transcript length instead.
var Keywords = map[model.Criterion][]string{
	model.CriterionProblem: {
		"problem", "challenge", "issue", "pain point", "inefficiency",
		"70%", "dissatisfaction", "20 hours", "wasted time",
	},
	model.CriterionSolution: {
		"solution", "addresses", "designed for", "efficiency",
		"50%", "reduces time", "95% satisfaction", "test users",
	},
	model.CriterionBusinessModel: {
		"business model", "sell", "directly to", "businesses and individuals",
		"value", "high demand", "market research", "1 million", "customer base",
	},
	model.CriterionFinancials: {
		"$5 million", "gross sales", "500,000 transactions",
		"$2 million", "cost", "gross margin", "$3 million",
		"fixed costs", "$1 million", "net profit", "$2 million",
	},
}

type feedbackTemplate struct {
	high string
	low  string
}

var heuristicFeedback = map[model.Criterion]feedbackTemplate{
	model.CriterionProblem: {
		high: "Strong problem framing with good statistics. Consider highlighting more specific examples of widget inefficiency.",
		low:  "Problem framing needs more specific statistics and examples to demonstrate the scale of the issue.",
	},
	model.CriterionSolution: {
		high: "Clear solution presentation, but could strengthen evidence for 50% time reduction claim.",
		low:  "The solution needs to be more clearly connected to the problem with stronger evidence of effectiveness.",
	},
	model.CriterionBusinessModel: {
		high: "Well-defined business model with good market sizing. Include more details on customer acquisition strategy.",
		low:  "Business model needs more detail on how you'll reach your target market and convert them to customers.",
	},
	model.CriterionFinancials: {
		high: "Solid financial breakdown. Consider adding more detail about how fixed costs are calculated.",
		low:  "Financial projections need more supporting details and breakdown of costs to be credible.",
	},
	model.CriterionDelivery: {
		high: "Good pace and clarity. More emphasis on the conclusion could strengthen overall impact.",
		low:  "Delivery pace needs improvement to fit within the 4-minute timeframe while maintaining clarity.",
	},
}

// KeywordCoverage returns the percentage of keywords found in corpus.
// Matching is case-insensitive substring presence.
func KeywordCoverage(corpus string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	corpus = strings.ToLower(corpus)
	hits := 0
	for _, k := range keywords {
		if strings.Contains(corpus, strings.ToLower(k)) {
			hits++
		}
	}
	return float64(hits) / float64(len(keywords)) * 100
}

// DeliveryScore maps a transcript word count onto the pacing bands of a
// 4-minute pitch.
func DeliveryScore(wordCount int) float64 {
	switch {
	case wordCount >= 450 && wordCount <= 650:
		return 95
	case wordCount >= 400 && wordCount < 450, wordCount > 650 && wordCount <= 700:
		return 85
	case wordCount >= 350 && wordCount < 400, wordCount > 700 && wordCount <= 750:
		return 75
	default:
		return 65
	}
}

// RawScores returns the unperturbed, unclamped score of every criterion.
func RawScores(presentation, transcript string) map[model.Criterion]float64 {
	corpus := presentation + " " + transcript
	raw := make(map[model.Criterion]float64, len(model.Criteria))
	for c, keywords := range Keywords {
		raw[c] = KeywordCoverage(corpus, keywords)
	}
	raw[model.CriterionDelivery] = DeliveryScore(len(strings.Fields(transcript)))
	return raw
}

// HeuristicScorer scores a pitch by keyword coverage and transcript length.
type HeuristicScorer struct {
	jitter Jitter
	logger *slog.Logger
}

func NewHeuristicScorer(jitter Jitter, logger *slog.Logger) *HeuristicScorer {
	if jitter == nil {
		jitter = NoJitter{}
	}
	return &HeuristicScorer{jitter: jitter, logger: logger}
}

// Score implements Scorer.
func (h *HeuristicScorer) Score(ctx context.Context, presentation, transcript string) (*model.EvaluationResult, error) {
	raw := RawScores(presentation, transcript)

	result := &model.EvaluationResult{
		Sections:  make(map[model.Criterion]model.Section, len(model.Criteria)),
		Source:    model.SourceHeuristic,
		CreatedAt: time.Now(),
	}
	for _, c := range model.Criteria {
		score := clamp(raw[c]+h.jitter.Offset(), heuristicFloor, heuristicCeil)
		tmpl := heuristicFeedback[c]
		feedback := tmpl.low
		if score > feedbackCutoff {
			feedback = tmpl.high
		}
		result.Sections[c] = model.Section{Score: score, Feedback: feedback}
	}

	if err := finalize(result); err != nil {
		return nil, err
	}
	h.logger.Debug("heuristic scoring complete", "overall", result.Overall, "raw", raw)
	return result, nil
}
