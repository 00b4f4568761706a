package report

import "github.com/fadilmartias/pitch-evaluator/internal/model"

const (
	RatingExcellent        = "Excellent"
	RatingGood             = "Good"
	RatingSatisfactory     = "Satisfactory"
	RatingNeedsImprovement = "Needs Improvement"
)

// Rating maps a 0-100 score onto the rubric level names.
func Rating(score float64) string {
	switch {
	case score >= 90:
		return RatingExcellent
	case score >= 80:
		return RatingGood
	case score >= 70:
		return RatingSatisfactory
	default:
		return RatingNeedsImprovement
	}
}

const suggestionCutoff = 80.0

type suggestionPair struct {
	high string
	low  string
}

var suggestions = map[model.Criterion]suggestionPair{
	model.CriterionProblem: {
		high: "Consider adding 1-2 concise case examples of how widget inefficiency impacts specific businesses. This will strengthen your problem framing by making it more relatable and urgent.",
		low:  "Your problem statement needs more specific data points and real-world examples. Make sure to clearly quantify the scale (e.g., '70% of users report dissatisfaction') and impact (e.g., '20 hours lost per week').",
	},
	model.CriterionSolution: {
		high: "Provide more concrete evidence for your time reduction claims. Consider including a brief case study or testimonial from your test users to validate your solution's effectiveness.",
		low:  "Your solution needs to be more directly tied to the problem you identified. Make sure to clearly explain how your solution addresses each aspect of the problem and provide measurable benefits (e.g., '50% time reduction').",
	},
	model.CriterionBusinessModel: {
		high: "Add a brief explanation of your customer acquisition strategy. How will you reach your target market efficiently? Include channels and estimated costs to strengthen the business model section.",
		low:  "Your business model needs more detail on revenue generation mechanisms and market validation. Clearly explain how you'll make money, who your customers are, and provide data on market size (e.g., '1 million potential users').",
	},
	model.CriterionFinancials: {
		high: "Break down your fixed costs into major categories (e.g., R&D, marketing, salaries) to demonstrate thoughtful financial planning and increase credibility of your net profit projections.",
		low:  "Your financial overview lacks detail and realistic projections. Make sure to include gross sales projections, transaction estimates, COGS, gross margin, fixed costs, and net profit with supporting calculations.",
	},
	model.CriterionDelivery: {
		high: "End with a stronger conclusion that reinforces your key value proposition and includes a clear call to action. What specific next step do you want the audience to take?",
		low:  "Work on your pacing to fit within the 4-minute timeframe. Practice your delivery to improve clarity and confidence. Make sure your slides support your verbal points without overwhelming the audience.",
	},
}

// Suggestion returns the improvement suggestion for a criterion at the given score.
func Suggestion(c model.Criterion, score float64) string {
	pair, ok := suggestions[c]
	if !ok {
		return ""
	}
	if score >= suggestionCutoff {
		return pair.high
	}
	return pair.low
}
