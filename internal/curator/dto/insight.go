package dto

// InsightResult holds the sales insights generated for one article or
// metric. This is the expected JSON structure returned by the LLM.
type InsightResult struct {
	WhyItMatters string   `json:"why_it_matters"`
	TalkTrack    string   `json:"talk_track"`
	UrgencyLevel string   `json:"urgency_level"`
	KeyTopics    []string `json:"key_topics"`
}
