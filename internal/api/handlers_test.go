package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"meeting-summarizer/internal/config"
	"meeting-summarizer/internal/jobs"
	"meeting-summarizer/internal/logger"
	"meeting-summarizer/internal/model"
	"meeting-summarizer/internal/report"
	"meeting-summarizer/internal/store"
)

type noopRunner struct{}

func (noopRunner) Start(ctx context.Context) error             { return nil }
func (noopRunner) Submit(ctx context.Context, id string) error { return nil }
func (noopRunner) Wait()                                       {}

func newTestRouter(t *testing.T) (*gin.Engine, store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemory()
	cfg := config.TranscriptionConfig{AllowedExtensions: []string{".mp3", ".wav"}}
	m := jobs.New(cfg, st, noopRunner{}, logger.New("error"))
	rw := report.New(t.TempDir(), logger.New("error"))

	r := gin.New()
	RegisterHandlers(r, m, rw)
	return r, st
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateJobEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodPost, "/jobs", `{"audio_ref":"data/audio/sync.mp3","title":"Sync"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var job model.Job
	if err := json.Unmarshal(w.Body.Bytes(), &job); err != nil {
		t.Fatal(err)
	}
	if job.ID == "" || job.Status != model.StatusPending || job.Title != "Sync" {
		t.Errorf("job = %+v", job)
	}
}

func TestCreateJobEndpointRejects(t *testing.T) {
	r, _ := newTestRouter(t)

	for name, body := range map[string]string{
		"missing audio_ref": `{"title":"x"}`,
		"bad extension":     `{"audio_ref":"notes.txt"}`,
		"not json":          `plain text`,
	} {
		if w := doRequest(r, http.MethodPost, "/jobs", body); w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", name, w.Code)
		}
	}
}

func TestStatusEndpoint(t *testing.T) {
	r, st := newTestRouter(t)

	w := doRequest(r, http.MethodPost, "/jobs", `{"audio_ref":"a.mp3"}`)
	var job model.Job
	json.Unmarshal(w.Body.Bytes(), &job)

	stored, _ := st.Get(context.Background(), job.ID)
	stored.Status = model.StatusTranscribing
	st.Update(context.Background(), stored)

	w = doRequest(r, http.MethodGet, "/jobs/"+job.ID+"/status", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var view model.StatusView
	json.Unmarshal(w.Body.Bytes(), &view)
	if view.Status != model.StatusTranscribing || view.HasTranscript || view.HasSummary {
		t.Errorf("view = %+v", view)
	}

	if w := doRequest(r, http.MethodGet, "/jobs/missing/status", ""); w.Code != http.StatusNotFound {
		t.Errorf("missing job status = %d, want 404", w.Code)
	}
}

func TestCancelEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodPost, "/jobs", `{"audio_ref":"a.mp3"}`)
	var job model.Job
	json.Unmarshal(w.Body.Bytes(), &job)

	if w := doRequest(r, http.MethodPost, "/jobs/"+job.ID+"/cancel", ""); w.Code != http.StatusNoContent {
		t.Fatalf("cancel status = %d", w.Code)
	}
	// The job is now terminal, a second cancel conflicts.
	if w := doRequest(r, http.MethodPost, "/jobs/"+job.ID+"/cancel", ""); w.Code != http.StatusConflict {
		t.Errorf("second cancel status = %d, want 409", w.Code)
	}
}

func TestReportEndpoint(t *testing.T) {
	r, st := newTestRouter(t)

	w := doRequest(r, http.MethodPost, "/jobs", `{"audio_ref":"a.mp3"}`)
	var job model.Job
	json.Unmarshal(w.Body.Bytes(), &job)

	// Not completed yet.
	if w := doRequest(r, http.MethodGet, "/jobs/"+job.ID+"/report", ""); w.Code != http.StatusConflict {
		t.Errorf("report on pending job = %d, want 409", w.Code)
	}

	stored, _ := st.Get(context.Background(), job.ID)
	stored.Status = model.StatusCompleted
	stored.TranscriptText = "hello"
	stored.Summary = &model.Summary{ExecutiveSummary: "Short sync."}
	st.Update(context.Background(), stored)

	w = doRequest(r, http.MethodGet, "/jobs/"+job.ID+"/report", "")
	if w.Code != http.StatusOK {
		t.Fatalf("report status = %d, body = %s", w.Code, w.Body.String())
	}
	if w.Body.Len() == 0 {
		t.Error("report body is empty")
	}
}

func TestHealthEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)
	if w := doRequest(r, http.MethodGet, "/health", ""); w.Code != http.StatusOK {
		t.Errorf("health = %d", w.Code)
	}
}
