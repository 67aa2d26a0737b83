package repository

import "fmt"

// BuildInsightPrompt builds the Gemini prompt for one normalized article.
// The model must answer with a single JSON object matching dto.InsightResult.
func BuildInsightPrompt(title, summary, sourceName string) string {
	return fmt.Sprintf(`You are a sales-enablement analyst for advertising and marketing technology sellers. Given one industry news item, produce talking points a media sales rep can use with prospects.

News item:
- Title: %q
- Summary: %q
- Source: %q

Respond with JSON only, no prose, in exactly this shape:

{
  "why_it_matters": "{1-2 sentences on the business impact for advertisers in this space}",
  "talk_track": "{one conversation starter a seller can open a call with}",
  "urgency_level": "HIGH | MEDIUM | LOW",
  "key_topics": ["{2-5 short topic tags}"]
}

Rules:
- why_it_matters must reference the concrete development, not generic advice.
- talk_track must be phrased as something a rep would actually say.
- urgency_level is HIGH only for time-sensitive budget or regulatory shifts.`,
		title, summary, sourceName)
}
