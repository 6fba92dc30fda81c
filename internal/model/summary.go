package model

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is one of the three accepted priority levels.
func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// ActionItem is one task extracted from the transcript. Deadline is an
// ISO calendar date (YYYY-MM-DD) or empty when none was mentioned.
type ActionItem struct {
	Task     string   `json:"task"`
	Assignee string   `json:"assignee"`
	Priority Priority `json:"priority"`
	Deadline string   `json:"deadline,omitempty"`
}

// Summary is the structured analysis of one meeting transcript.
// ExecutiveSummary is always non-empty on a stored summary; the array
// fields may be empty but are never nil after validation.
type Summary struct {
	ExecutiveSummary string       `json:"executive_summary"`
	KeyDecisions     []string     `json:"key_decisions"`
	ActionItems      []ActionItem `json:"action_items"`
	DiscussionTopics []string     `json:"discussion_topics"`
	Participants     []string     `json:"participants"`
	Insights         []string     `json:"insights"`
}
