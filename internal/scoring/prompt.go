package scoring

import "fmt"

// BuildPrompt embeds the rubric, the presentation text and the transcript in a
// single instruction asking for a JSON evaluation.
func BuildPrompt(presentation, transcript string) string {
	return fmt.Sprintf(`
You are an experienced startup pitch coach. Evaluate the following 4-minute business pitch against this rubric:

%s

Return your answer STRICTLY in JSON format with this schema:
{
  "overall": <number 0-100, weighted by the rubric percentages>,
  "sections": {
    "problem": {
      "score": <number 0-100>,
      "feedback": "<feedback about problem framing>",
      "strengths": ["<strength>", ...],
      "improvements": ["<improvement>", ...]
    },
    "solution": { <same fields as problem> },
    "businessModel": { <same fields as problem> },
    "financials": { <same fields as problem> },
    "delivery": { <same fields as problem> }
  }
}

Presentation:
%s

Transcript:
%s
`, FullRubric().describe(), presentation, transcript)
}
