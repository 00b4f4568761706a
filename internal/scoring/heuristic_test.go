package scoring

import (
	"context"
	"strings"
	"testing"

	"github.com/fadilmartias/pitch-evaluator/internal/logger"
	"github.com/fadilmartias/pitch-evaluator/internal/model"
	"github.com/stretchr/testify/require"
)

// fixtureTranscript mentions only the headline figures of the sample pitch and
// runs just under the pacing window.
func fixtureTranscript() string {
	var b strings.Builder
	b.WriteString("Around 70% of people lose 20 hours each week. " +
		"Our pilot saw 50% faster work and 95% satisfaction. " +
		"We expect $5 million from 500,000 transactions, a cost of $2 million, " +
		"then $3 million and $1 million.")
	for len(strings.Fields(b.String())) < 330 {
		b.WriteString(" and then we walked home")
	}
	return b.String()
}

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func requireConsistent(t *testing.T, result *model.EvaluationResult) {
	t.Helper()
	require.NoError(t, result.Validate())
	weighted, err := Aggregate(result.Scores())
	require.NoError(t, err)
	require.InDelta(t, weighted, result.Overall, 0.05)
}

func TestDeliveryScore(t *testing.T) {
	tests := []struct {
		words int
		want  float64
	}{
		{0, 65},
		{349, 65},
		{350, 75},
		{399, 75},
		{400, 85},
		{449, 85},
		{450, 95},
		{650, 95},
		{651, 85},
		{700, 85},
		{701, 75},
		{750, 75},
		{751, 65},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, DeliveryScore(tt.words), "words=%d", tt.words)
	}
}

func TestKeywordCoverage(t *testing.T) {
	require.Equal(t, 0.0, KeywordCoverage("anything", nil))
	require.InDelta(t, 50.0, KeywordCoverage("The PROBLEM is clear", []string{"problem", "solution"}), 1e-9)
	// duplicated entries count once each
	require.InDelta(t, 100.0, KeywordCoverage("$2 million", []string{"$2 million", "$2 million"}), 1e-9)
}

func TestRawScoresFixtureScenario(t *testing.T) {
	transcript := fixtureTranscript()
	require.Less(t, len(strings.Fields(transcript)), 350)

	raw := RawScores("", transcript)
	require.InDelta(t, 27.5, raw[model.CriterionProblem], 5.5)
	require.InDelta(t, 31.5, raw[model.CriterionSolution], 6.5)
	require.InDelta(t, 59.5, raw[model.CriterionFinancials], 4.5)
	require.Equal(t, 65.0, raw[model.CriterionDelivery])
}

func TestHeuristicScorerUnperturbed(t *testing.T) {
	scorer := NewHeuristicScorer(NoJitter{}, logger.Discard())
	result, err := scorer.Score(context.Background(), "", fixtureTranscript())
	require.NoError(t, err)
	requireConsistent(t, result)

	require.Equal(t, model.SourceHeuristic, result.Source)
	require.Equal(t, 60.0, result.Sections[model.CriterionProblem].Score)
	require.Equal(t, 60.0, result.Sections[model.CriterionSolution].Score)
	require.Equal(t, 63.6, result.Sections[model.CriterionFinancials].Score)
	require.Equal(t, 65.0, result.Sections[model.CriterionDelivery].Score)
	require.Equal(t, heuristicFeedback[model.CriterionProblem].low, result.Sections[model.CriterionProblem].Feedback)
	for _, s := range result.Sections {
		require.Empty(t, s.Strengths)
		require.Empty(t, s.Improvements)
	}
}

func TestHeuristicScorerHighFeedback(t *testing.T) {
	presentation := strings.Join(Keywords[model.CriterionProblem], " ")
	scorer := NewHeuristicScorer(NoJitter{}, logger.Discard())
	result, err := scorer.Score(context.Background(), presentation, words(500))
	require.NoError(t, err)

	require.Equal(t, 100.0, result.Sections[model.CriterionProblem].Score)
	require.Equal(t, heuristicFeedback[model.CriterionProblem].high, result.Sections[model.CriterionProblem].Feedback)
	require.Equal(t, 95.0, result.Sections[model.CriterionDelivery].Score)
	require.Equal(t, heuristicFeedback[model.CriterionDelivery].high, result.Sections[model.CriterionDelivery].Feedback)
}

func TestHeuristicScorerSeededIsReproducible(t *testing.T) {
	transcript := fixtureTranscript()
	first, err := NewHeuristicScorer(NewUniformJitter(42), logger.Discard()).Score(context.Background(), "deck", transcript)
	require.NoError(t, err)
	second, err := NewHeuristicScorer(NewUniformJitter(42), logger.Discard()).Score(context.Background(), "deck", transcript)
	require.NoError(t, err)

	require.Equal(t, first.Scores(), second.Scores())
	require.Equal(t, first.Overall, second.Overall)
}

func TestHeuristicScorerJitterBand(t *testing.T) {
	presentation := strings.Join(Keywords[model.CriterionBusinessModel][:5], " ")
	transcript := fixtureTranscript()
	raw := RawScores(presentation, transcript)
	scorer := NewHeuristicScorer(NewUniformJitter(7), logger.Discard())

	for i := 0; i < 200; i++ {
		result, err := scorer.Score(context.Background(), presentation, transcript)
		require.NoError(t, err)
		requireConsistent(t, result)
		for _, c := range model.Criteria {
			score := result.Sections[c].Score
			require.GreaterOrEqual(t, score, heuristicFloor)
			require.LessOrEqual(t, score, heuristicCeil)
			require.InDelta(t, clamp(raw[c], heuristicFloor, heuristicCeil), score, JitterBand+0.05+1e-9)
		}
	}
}

func TestUniformJitterRange(t *testing.T) {
	j := NewUniformJitter(1)
	for i := 0; i < 1000; i++ {
		off := j.Offset()
		require.GreaterOrEqual(t, off, -JitterBand)
		require.LessOrEqual(t, off, JitterBand)
	}
	require.Equal(t, 0.0, NoJitter{}.Offset())
}
