package summarizer

import (
	"strings"
	"testing"

	"meeting-summarizer/internal/model"
)

const validPayload = `{
	"executive_summary": "The team reviewed Q4 priorities and agreed on the launch plan.",
	"key_decisions": ["Approved Q4 budget allocation of $500K"],
	"action_items": [
		{"task": "Complete project proposal", "assignee": "John Doe", "priority": "high", "deadline": "2025-10-20"},
		{"task": "Schedule follow-up", "assignee": "Jane Smith", "priority": "medium", "deadline": null}
	],
	"discussion_topics": ["Q4 Budget Planning", "Product Roadmap"],
	"participants": ["John Doe (VP Engineering)", "Jane Smith (Product Manager)"],
	"insights": ["Customer feedback on beta is positive"]
}`

func TestParseSummaryValid(t *testing.T) {
	got, err := parseSummary(validPayload)
	if err != nil {
		t.Fatalf("parseSummary() error = %v", err)
	}

	if !strings.HasPrefix(got.ExecutiveSummary, "The team reviewed") {
		t.Errorf("ExecutiveSummary = %q", got.ExecutiveSummary)
	}
	if len(got.ActionItems) != 2 {
		t.Fatalf("ActionItems = %d, want 2", len(got.ActionItems))
	}
	if got.ActionItems[0].Priority != model.PriorityHigh {
		t.Errorf("priority = %v, want high", got.ActionItems[0].Priority)
	}
	if got.ActionItems[0].Deadline != "2025-10-20" {
		t.Errorf("deadline = %q, want 2025-10-20", got.ActionItems[0].Deadline)
	}
	if got.ActionItems[1].Deadline != "" {
		t.Errorf("null deadline should be absent, got %q", got.ActionItems[1].Deadline)
	}
}

func TestParseSummaryWrappedInProse(t *testing.T) {
	wrapped := "Here is the analysis you asked for:\n" + validPayload + "\nLet me know if you need more."
	got, err := parseSummary(wrapped)
	if err != nil {
		t.Fatalf("parseSummary() error = %v", err)
	}
	if len(got.DiscussionTopics) != 2 {
		t.Errorf("DiscussionTopics = %v", got.DiscussionTopics)
	}
}

func TestParseSummaryInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "the meeting went well"},
		{"empty executive summary", `{"executive_summary": " ", "key_decisions": [], "action_items": [], "discussion_topics": [], "participants": [], "insights": []}`},
		{"missing field", `{"executive_summary": "ok", "key_decisions": [], "action_items": [], "discussion_topics": []}`},
		{"truncated", `{"executive_summary": "ok", "key_dec`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseSummary(tt.raw); err == nil {
				t.Error("parseSummary() should fail")
			}
		})
	}
}

func TestParseSummaryCoercion(t *testing.T) {
	raw := `{
		"executive_summary": "ok",
		"key_decisions": [],
		"action_items": [
			{"task": "Fix the build", "assignee": "", "priority": "URGENT", "deadline": "next week"},
			{"task": "   ", "assignee": "Bob", "priority": "low", "deadline": null},
			{"task": "Ship it", "assignee": "Ann", "priority": "Low", "deadline": "2026-01-15"}
		],
		"discussion_topics": [],
		"participants": [],
		"insights": []
	}`

	got, err := parseSummary(raw)
	if err != nil {
		t.Fatalf("parseSummary() error = %v", err)
	}
	if len(got.ActionItems) != 2 {
		t.Fatalf("ActionItems = %d, want 2 (empty task dropped)", len(got.ActionItems))
	}

	first := got.ActionItems[0]
	if first.Priority != model.PriorityMedium {
		t.Errorf("invalid priority should coerce to medium, got %v", first.Priority)
	}
	if first.Deadline != "" {
		t.Errorf("unparsable deadline should be absent, got %q", first.Deadline)
	}
	if first.Assignee != "Unassigned" {
		t.Errorf("empty assignee = %q, want Unassigned", first.Assignee)
	}

	if got.ActionItems[1].Priority != model.PriorityLow {
		t.Errorf("mixed-case priority should normalize, got %v", got.ActionItems[1].Priority)
	}
}

func TestParseSummaryNilArrays(t *testing.T) {
	raw := `{
		"executive_summary": "ok",
		"key_decisions": null,
		"action_items": [],
		"discussion_topics": [],
		"participants": null,
		"insights": []
	}`
	got, err := parseSummary(raw)
	if err != nil {
		t.Fatalf("parseSummary() error = %v", err)
	}
	if got.KeyDecisions == nil || got.Participants == nil {
		t.Error("null arrays should become empty slices")
	}
}

func TestFallback(t *testing.T) {
	fb := Fallback()
	if fb.ExecutiveSummary != FallbackExecutiveSummary {
		t.Error("fallback must carry the fixed placeholder text")
	}
	if len(fb.KeyDecisions) != 0 || len(fb.ActionItems) != 0 || len(fb.DiscussionTopics) != 0 ||
		len(fb.Participants) != 0 || len(fb.Insights) != 0 {
		t.Error("fallback arrays must be empty")
	}
	if fb.KeyDecisions == nil {
		t.Error("fallback arrays must be non-nil")
	}
}
