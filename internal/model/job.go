package model

import "time"

type Status string

const (
	StatusPending      Status = "pending"
	StatusTranscribing Status = "transcribing"
	StatusSummarizing  Status = "summarizing"
	StatusCompleted    Status = "completed"
	StatusFailed       Status = "failed"
)

// Terminal reports whether no further transitions are allowed from s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Stage names recorded on failed jobs.
const (
	StageTranscription = "transcription"
	StageSummarization = "summarization"
	StageCancelled     = "cancelled"
)

// Job tracks one uploaded audio file through the processing lifecycle.
// It is created at pending by the upload side, advanced exclusively by
// the pipeline, and read by polling collaborators.
type Job struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title,omitempty"`
	AudioRef           string   `json:"audio_ref"`
	Status             Status   `json:"status"`
	FileSizeBytes      int64    `json:"file_size_bytes,omitempty"`
	DurationSeconds    int      `json:"duration_seconds,omitempty"`
	Notes              string   `json:"notes,omitempty"`
	TranscriptText     string   `json:"transcript_text,omitempty"`
	TranscriptWords    int      `json:"transcript_words,omitempty"`
	TranscriptLanguage string   `json:"transcript_language,omitempty"`
	Summary            *Summary `json:"summary,omitempty"`

	ErrorStage   string `json:"error_stage,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StatusView is the read-only shape returned to polling collaborators.
type StatusView struct {
	ID            string    `json:"id"`
	Status        Status    `json:"status"`
	HasTranscript bool      `json:"has_transcript"`
	HasSummary    bool      `json:"has_summary"`
	ErrorStage    string    `json:"error_stage,omitempty"`
	ErrorMessage  string    `json:"error_message,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// View projects the job into its polling shape.
func (j *Job) View() StatusView {
	return StatusView{
		ID:            j.ID,
		Status:        j.Status,
		HasTranscript: j.TranscriptText != "",
		HasSummary:    j.Summary != nil,
		ErrorStage:    j.ErrorStage,
		ErrorMessage:  j.ErrorMessage,
		UpdatedAt:     j.UpdatedAt,
	}
}
