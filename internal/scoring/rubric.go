package scoring

import (
	"fmt"
	"strings"

	"github.com/fadilmartias/pitch-evaluator/internal/model"
)

// Weights is the fixed rubric weighting. The values sum to 1.0.
var Weights = map[model.Criterion]float64{
	model.CriterionProblem:       0.25,
	model.CriterionSolution:      0.25,
	model.CriterionBusinessModel: 0.20,
	model.CriterionFinancials:    0.20,
	model.CriterionDelivery:      0.10,
}

// Level is one band of a criterion's grading scale.
type Level struct {
	Name        string `json:"name" yaml:"name"`
	Range       string `json:"range" yaml:"range"`
	Description string `json:"description" yaml:"description"`
}

// ChecklistItem is one line of a criterion's review checklist.
type ChecklistItem struct {
	Text string `json:"text" yaml:"text"`
	Met  bool   `json:"met" yaml:"met"`
}

type CriterionRubric struct {
	Criterion   model.Criterion `json:"id" yaml:"id"`
	Label       string          `json:"label" yaml:"label"`
	Weight      float64         `json:"weight" yaml:"weight"`
	WeightLabel string          `json:"weight_label" yaml:"weight_label"`
	Levels      []Level         `json:"levels" yaml:"levels"`
	KeyElements string          `json:"key_elements" yaml:"key_elements"`
	Checklist   []ChecklistItem `json:"checklist" yaml:"checklist"`
}

type Rubric struct {
	Criteria   []CriterionRubric `json:"criteria" yaml:"criteria"`
	Guidelines Guidelines        `json:"guidelines" yaml:"guidelines"`
}

type Guidelines struct {
	Intro    string   `json:"intro" yaml:"intro"`
	Slides   []string `json:"slides" yaml:"slides"`
	Reminder string   `json:"reminder" yaml:"reminder"`
}

func levels(excellent, good, satisfactory, needsImprovement string) []Level {
	return []Level{
		{Name: "Excellent", Range: "90-100%", Description: excellent},
		{Name: "Good", Range: "80-89%", Description: good},
		{Name: "Satisfactory", Range: "70-79%", Description: satisfactory},
		{Name: "Needs Improvement", Range: "Below 70%", Description: needsImprovement},
	}
}

func checklist(items ...string) []ChecklistItem {
	out := make([]ChecklistItem, len(items))
	for i, text := range items {
		// the last item is always the open point for the presenter
		out[i] = ChecklistItem{Text: text, Met: i < len(items)-1}
	}
	return out
}

var rubricCriteria = map[model.Criterion]CriterionRubric{
	model.CriterionProblem: {
		Label: "Problem Framing",
		Levels: levels(
			"Clearly identifies a significant problem with compelling statistics and examples",
			"Problem is well-defined with supporting data but may lack some specificity",
			"Problem is identified but lacks sufficient supporting evidence",
			"Problem is vague or poorly supported",
		),
		KeyElements: "Definition of problem, statistics showing scale (70% user dissatisfaction), impact demonstration (20 hours lost per week), audience relevance",
		Checklist: checklist(
			"Clearly identifies a significant problem",
			"Uses statistics to demonstrate scale (70% user dissatisfaction)",
			"Could provide more examples of inefficiency impacts",
		),
	},
	model.CriterionSolution: {
		Label: "Solution Framing",
		Levels: levels(
			"Solution directly addresses problem with strong evidence of effectiveness",
			"Clear solution with some evidence of effectiveness",
			"Solution is presented but connection to problem or evidence is weak",
			"Solution is vague or ineffectively connected to problem",
		),
		KeyElements: "Clear description of solution, evidence of effectiveness (50% time reduction, 95% satisfaction), demonstration of impact, comparison with alternatives",
		Checklist: checklist(
			"Solution directly addresses identified problem",
			"Explains benefits clearly (50% time reduction)",
			"Needs more evidence supporting effectiveness claims",
		),
	},
	model.CriterionBusinessModel: {
		Label: "Business Model",
		Levels: levels(
			"Clear, viable business model with strong market validation",
			"Well-defined business model with some market validation",
			"Basic business model presented but lacks detail or validation",
			"Business model is unclear or unrealistic",
		),
		KeyElements: "Revenue mechanism, customer acquisition strategy, market size (1 million potential users), value proposition alignment",
		Checklist: checklist(
			"Clear explanation of how business makes money",
			"Provides market size and customer base data",
			"Needs details on customer acquisition strategy",
		),
	},
	model.CriterionFinancials: {
		Label: "Financial Overview",
		Levels: levels(
			"Comprehensive financial projections with realistic assumptions",
			"Solid financial breakdown with mostly realistic projections",
			"Basic financial information provided but lacks detail or realism",
			"Financial information is missing key elements or unrealistic",
		),
		KeyElements: "Gross sales projections ($5M), transaction estimates (500,000), COGS ($2M), gross margin ($3M), fixed costs ($1M), net profit ($2M)",
		Checklist: checklist(
			"Complete breakdown of financial projections",
			"Includes gross sales, COGS, margins and profit",
			"Needs more detail on fixed cost breakdown",
		),
	},
	model.CriterionDelivery: {
		Label: "Delivery & Impact",
		Levels: levels(
			"Confident, engaging delivery that stays within 4-minute time limit",
			"Clear delivery with good time management",
			"Adequate delivery with some timing issues",
			"Poor delivery or significantly over/under time",
		),
		KeyElements: "Time management (4-minute limit), slide quality, verbal clarity, engagement, compelling conclusion",
		Checklist: checklist(
			"Clear and concise delivery within time limit",
			"Effective use of slides and visual aids",
			"Could strengthen conclusion and call to action",
		),
	},
}

var guidelines = Guidelines{
	Intro: "Students should prepare a 4-minute business pitch with exactly 4 slides:",
	Slides: []string{
		"Slide 1: Problem Framing - Identify the problem, show statistics, explain who is affected",
		"Slide 2: Solution Framing - Present your solution, explain how it works, provide evidence",
		"Slide 3: Business Model - Explain how you make money, show market demand, identify target customers",
		"Slide 4: Financial Overview - Detail gross sales, transactions, costs, margins, and profit",
	},
	Reminder: "Remember to stay within the 4-minute time limit and follow the structure outlined in the assignment.",
}

// RubricFor returns the rubric entry of c.
func RubricFor(c model.Criterion) CriterionRubric {
	r := rubricCriteria[c]
	r.Criterion = c
	r.Weight = Weights[c]
	r.WeightLabel = WeightLabel(c)
	return r
}

// Label is the display name of c, or the raw key for an unknown criterion.
func Label(c model.Criterion) string {
	if r, ok := rubricCriteria[c]; ok {
		return r.Label
	}
	return string(c)
}

// WeightLabel formats the weight of c as a whole percentage.
func WeightLabel(c model.Criterion) string {
	return fmt.Sprintf("%.0f%%", Weights[c]*100)
}

// FullRubric returns every criterion in report order plus the assignment guidelines.
func FullRubric() Rubric {
	r := Rubric{Guidelines: guidelines}
	for _, c := range model.Criteria {
		r.Criteria = append(r.Criteria, RubricFor(c))
	}
	return r
}

// describe renders the rubric as plain text for prompts.
func (r Rubric) describe() string {
	var b strings.Builder
	for _, c := range r.Criteria {
		fmt.Fprintf(&b, "%s (%s, key \"%s\")\n", c.Label, c.WeightLabel, c.Criterion)
		for _, l := range c.Levels {
			fmt.Fprintf(&b, "- %s (%s): %s\n", l.Name, l.Range, l.Description)
		}
		fmt.Fprintf(&b, "Key elements: %s\n\n", c.KeyElements)
	}
	b.WriteString(r.Guidelines.Intro + "\n")
	for _, s := range r.Guidelines.Slides {
		b.WriteString("- " + s + "\n")
	}
	b.WriteString(r.Guidelines.Reminder)
	return b.String()
}
