package summarizer

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"meeting-summarizer/internal/model"
	"meeting-summarizer/internal/retry"
)

const summaryPrompt = `You are a meeting analysis expert specializing in extracting actionable insights from meeting transcripts.

Analyze the following meeting transcript and return a JSON object with exactly these fields:

1. "executive_summary" (string): a concise 3-4 sentence overview covering main topics, key outcomes and next steps.
2. "key_decisions" (array of strings): every important decision made, with context.
3. "action_items" (array of objects): each with "task" (string), "assignee" (string), "priority" ("high", "medium" or "low") and "deadline" ("YYYY-MM-DD" or null).
4. "discussion_topics" (array of strings): main themes discussed.
5. "participants" (array of strings): names of participants, with roles if mentioned, e.g. "Jane Smith (Product Manager)".
6. "insights" (array of strings): key learnings, risks, opportunities or concerns raised.

RULES:
- Return ONLY valid JSON, no additional text or markdown.
- All fields are REQUIRED (use empty arrays [] if no data found).
- Priority must be exactly "high", "medium" or "low" (lowercase).
- Be factual: extract only information present in the transcript, never invent.

MEETING TRANSCRIPT:
---
%s
---`

// FallbackExecutiveSummary marks a summary produced by the degraded
// path when extraction kept failing. Readers can detect degradation by
// comparing against this exact string.
const FallbackExecutiveSummary = "Summary generation encountered errors. The meeting transcript was processed but detailed analysis could not be completed. Please review the transcript directly."

// Fallback returns the deterministic minimal summary substituted when
// summarization output cannot be validated after retries.
func Fallback() *model.Summary {
	return &model.Summary{
		ExecutiveSummary: FallbackExecutiveSummary,
		KeyDecisions:     []string{},
		ActionItems:      []model.ActionItem{},
		DiscussionTopics: []string{},
		Participants:     []string{},
		Insights:         []string{},
	}
}

// Summarize sends the transcript to Gemini in JSON mode and validates
// the structured response. Rate-limit errors rotate to the next API key
// and surface as transient so the caller's retry policy tries again.
func (s *implSummarizer) Summarize(ctx context.Context, transcript string) (*model.Summary, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, retry.InvalidInput(fmt.Errorf("transcript text cannot be empty"))
	}
	if len(s.apiKeys) == 0 {
		return nil, retry.AuthConfig(fmt.Errorf("no Gemini API keys configured"))
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  s.activeKey(),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, retry.Transient(fmt.Errorf("create client: %w", err))
	}

	prompt := fmt.Sprintf(summaryPrompt, transcript)
	result, err := client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, s.classifyCallError(ctx, err)
	}

	raw := responseText(result)
	if raw == "" {
		return nil, retry.OutputValidation(fmt.Errorf("empty response from model"))
	}

	summary, err := parseSummary(raw)
	if err != nil {
		return nil, retry.OutputValidation(err)
	}

	s.logger.Info(ctx, "Summary generated: %d decisions, %d action items, %d topics",
		len(summary.KeyDecisions), len(summary.ActionItems), len(summary.DiscussionTopics))
	return summary, nil
}

func (s *implSummarizer) activeKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apiKeys[s.currentKey]
}

func (s *implSummarizer) rotateKey() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
}

func (s *implSummarizer) classifyCallError(ctx context.Context, err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED"):
		s.logger.Warn(ctx, "API key rate limited, rotating to next key")
		s.rotateKey()
		return retry.Transient(fmt.Errorf("rate limited: %w", err))
	case strings.Contains(msg, "401") || strings.Contains(msg, "403") || strings.Contains(msg, "API key"):
		return retry.AuthConfig(fmt.Errorf("generate content: %w", err))
	default:
		return retry.Transient(fmt.Errorf("generate content: %w", err))
	}
}

func responseText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	return strings.TrimSpace(text)
}
