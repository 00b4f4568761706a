package scoring

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/fadilmartias/pitch-evaluator/internal/model"
	"github.com/tidwall/gjson"
)

const (
	defaultSectionScore    = 70.0
	defaultSectionFeedback = "No specific feedback provided."
)

var (
	ErrNoJSONObject = errors.New("no JSON object in model reply")
	ErrNoCriteria   = errors.New("model reply has no rubric criteria")
)

// ExtractJSONObject returns the first balanced, valid top-level JSON object in s.
// Surrounding prose and code fences are ignored.
func ExtractJSONObject(s string) (string, bool) {
	for start := 0; start < len(s); start++ {
		if s[start] != '{' {
			continue
		}
		end := matchingBrace(s, start)
		if end < 0 {
			continue
		}
		candidate := s[start : end+1]
		if gjson.Valid(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// matchingBrace returns the index of the brace closing s[start], skipping
// braces inside string literals, or -1.
func matchingBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// ParseModelReply turns a model reply into a result. Missing criteria are
// filled with the default score and feedback; scores are clamped, rounded,
// and the overall is recomputed.
func ParseModelReply(reply string, logger *slog.Logger) (*model.EvaluationResult, error) {
	raw, ok := ExtractJSONObject(reply)
	if !ok {
		return nil, ErrNoJSONObject
	}
	doc := gjson.Parse(raw)

	sections := doc.Get("sections")
	if !sections.IsObject() {
		sections = doc
	}

	result := &model.EvaluationResult{
		Sections:  make(map[model.Criterion]model.Section, len(model.Criteria)),
		Source:    model.SourceModel,
		CreatedAt: time.Now(),
	}
	var found int
	for _, c := range model.Criteria {
		sec := sections.Get(string(c))
		if !sec.IsObject() {
			logger.Warn("model reply is missing a criterion, using default", "criterion", c)
			result.Sections[c] = model.Section{Score: defaultSectionScore, Feedback: defaultSectionFeedback}
			continue
		}
		found++
		result.Sections[c] = parseSection(sec)
	}
	if found == 0 {
		return nil, ErrNoCriteria
	}

	if err := finalize(result); err != nil {
		return nil, fmt.Errorf("validate model reply: %w", err)
	}

	if claimed := doc.Get("overall"); claimed.Exists() && math.Abs(claimed.Float()-result.Overall) > 0.05 {
		logger.Info("model overall disagrees with weighted sum, using weighted sum",
			"model_overall", claimed.Float(), "overall", result.Overall)
	}
	return result, nil
}

func parseSection(sec gjson.Result) model.Section {
	s := model.Section{
		Score:    defaultSectionScore,
		Feedback: sec.Get("feedback").String(),
	}
	if v, ok := sectionScore(sec.Get("score")); ok {
		s.Score = v
	}
	if s.Feedback == "" {
		s.Feedback = defaultSectionFeedback
	}
	s.Strengths = stringList(sec.Get("strengths"))
	s.Improvements = stringList(sec.Get("improvements"))
	return s
}

// sectionScore accepts a JSON number or a numeric string such as "88".
func sectionScore(v gjson.Result) (float64, bool) {
	switch v.Type {
	case gjson.Number:
		return v.Float(), true
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v.Str), "%")), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func stringList(v gjson.Result) []string {
	if v.Type == gjson.String && v.String() != "" {
		return []string{v.String()}
	}
	if !v.IsArray() {
		return nil
	}
	var out []string
	for _, item := range v.Array() {
		if text := item.String(); text != "" {
			out = append(out, text)
		}
	}
	return out
}
