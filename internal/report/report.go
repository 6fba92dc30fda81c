package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"meeting-summarizer/internal/model"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

func (w *implWriter) Write(ctx context.Context, job *model.Job) (string, error) {
	if job.Summary == nil {
		return "", fmt.Errorf("job %s has no summary to report", job.ID)
	}
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return "", fmt.Errorf("create document: %w", err)
	}

	title := job.Title
	if title == "" {
		title = "Meeting Report"
	}
	addHeading(doc, title, 16)

	s := job.Summary

	addHeading(doc, "Executive Summary", 15)
	addBody(doc, s.ExecutiveSummary)

	if len(s.KeyDecisions) > 0 {
		addHeading(doc, "Key Decisions", 15)
		for _, d := range s.KeyDecisions {
			addBullet(doc, d)
		}
	}

	if len(s.ActionItems) > 0 {
		addHeading(doc, "Action Items", 15)
		for _, item := range s.ActionItems {
			line := fmt.Sprintf("%s (%s, %s priority", item.Task, item.Assignee, item.Priority)
			if item.Deadline != "" {
				line += ", due " + item.Deadline
			}
			line += ")"
			addBullet(doc, line)
		}
	}

	if len(s.DiscussionTopics) > 0 {
		addHeading(doc, "Discussion Topics", 15)
		for _, topic := range s.DiscussionTopics {
			addBullet(doc, topic)
		}
	}

	if len(s.Participants) > 0 {
		addHeading(doc, "Participants", 15)
		addBody(doc, strings.Join(s.Participants, ", "))
	}

	if len(s.Insights) > 0 {
		addHeading(doc, "Insights", 15)
		for _, insight := range s.Insights {
			addBullet(doc, insight)
		}
	}

	if job.TranscriptText != "" {
		addHeading(doc, "Transcript", 15)
		for _, para := range strings.Split(job.TranscriptText, "\n") {
			para = strings.TrimSpace(para)
			if para == "" {
				continue
			}
			addBody(doc, para)
		}
	}

	outputPath := filepath.Join(w.outputDir, job.ID+".docx")
	if err := doc.SaveTo(outputPath); err != nil {
		return "", fmt.Errorf("save report: %w", err)
	}

	w.logger.Info(ctx, "Report written for job %s: %s", job.ID, outputPath)
	return outputPath, nil
}

func addHeading(doc *docx.RootDoc, text string, size uint64) {
	p := doc.AddParagraph("")
	p.AddText(text).Font(fontName).Size(size).Color("000000").Bold(true)
}

func addBody(doc *docx.RootDoc, text string) {
	p := doc.AddParagraph("")
	p.AddText(text).Font(fontName).Size(fontSize).Color("000000")
}

func addBullet(doc *docx.RootDoc, text string) {
	p := doc.AddParagraph("")
	p.AddText("• "+text).Font(fontName).Size(fontSize).Color("000000")
}
