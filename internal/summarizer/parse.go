package summarizer

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"meeting-summarizer/internal/model"
)

type wireSummary struct {
	ExecutiveSummary string           `json:"executive_summary"`
	KeyDecisions     []string         `json:"key_decisions"`
	ActionItems      []wireActionItem `json:"action_items"`
	DiscussionTopics []string         `json:"discussion_topics"`
	Participants     []string         `json:"participants"`
	Insights         []string         `json:"insights"`
}

type wireActionItem struct {
	Task     string  `json:"task"`
	Assignee string  `json:"assignee"`
	Priority string  `json:"priority"`
	Deadline *string `json:"deadline"`
}

var requiredFields = []string{
	"executive_summary",
	"key_decisions",
	"action_items",
	"discussion_topics",
	"participants",
	"insights",
}

// parseSummary validates the model output against the structural
// contract. Action items with an unrecognized priority are coerced to
// medium; a deadline that does not parse as an ISO calendar date is
// treated as absent.
func parseSummary(raw string) (*model.Summary, error) {
	payload := []byte(raw)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		// Models sometimes wrap the object in prose; take the outermost braces.
		extracted, ok := extractJSONObject(raw)
		if !ok {
			return nil, fmt.Errorf("parse summary JSON: %w", err)
		}
		payload = []byte(extracted)
		if err := json.Unmarshal(payload, &fields); err != nil {
			return nil, fmt.Errorf("parse extracted summary JSON: %w", err)
		}
	}

	for _, key := range requiredFields {
		if _, present := fields[key]; !present {
			return nil, fmt.Errorf("summary missing required field %q", key)
		}
	}

	var ws wireSummary
	if err := json.Unmarshal(payload, &ws); err != nil {
		return nil, fmt.Errorf("decode summary fields: %w", err)
	}
	if strings.TrimSpace(ws.ExecutiveSummary) == "" {
		return nil, fmt.Errorf("executive_summary must be a non-empty string")
	}

	summary := &model.Summary{
		ExecutiveSummary: strings.TrimSpace(ws.ExecutiveSummary),
		KeyDecisions:     orEmpty(ws.KeyDecisions),
		ActionItems:      make([]model.ActionItem, 0, len(ws.ActionItems)),
		DiscussionTopics: orEmpty(ws.DiscussionTopics),
		Participants:     orEmpty(ws.Participants),
		Insights:         orEmpty(ws.Insights),
	}

	for _, item := range ws.ActionItems {
		if strings.TrimSpace(item.Task) == "" {
			continue
		}
		summary.ActionItems = append(summary.ActionItems, model.ActionItem{
			Task:     strings.TrimSpace(item.Task),
			Assignee: assigneeOrDefault(item.Assignee),
			Priority: coercePriority(item.Priority),
			Deadline: parseDeadline(item.Deadline),
		})
	}

	return summary, nil
}

// extractJSONObject returns the substring from the first '{' to the
// last '}', if any.
func extractJSONObject(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

func orEmpty(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}

func assigneeOrDefault(assignee string) string {
	if strings.TrimSpace(assignee) == "" {
		return "Unassigned"
	}
	return strings.TrimSpace(assignee)
}

func coercePriority(raw string) model.Priority {
	p := model.Priority(strings.ToLower(strings.TrimSpace(raw)))
	if !p.Valid() {
		return model.PriorityMedium
	}
	return p
}

func parseDeadline(raw *string) string {
	if raw == nil {
		return ""
	}
	d := strings.TrimSpace(*raw)
	if _, err := time.Parse("2006-01-02", d); err != nil {
		return ""
	}
	return d
}
