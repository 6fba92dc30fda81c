package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"meeting-summarizer/internal/jobs"
	"meeting-summarizer/internal/model"
	"meeting-summarizer/internal/report"
	"meeting-summarizer/internal/store"
)

type APIHandler struct {
	Jobs    jobs.Manager
	Reports report.Writer
}

type CreateJobRequest struct {
	AudioRef string `json:"audio_ref" binding:"required"`
	Title    string `json:"title"`
	Notes    string `json:"notes"`
}

func RegisterHandlers(r *gin.Engine, m jobs.Manager, rw report.Writer) {
	h := &APIHandler{Jobs: m, Reports: rw}

	r.POST("/jobs", h.createJob)
	r.GET("/jobs", h.listJobs)
	r.GET("/jobs/:id", h.getJob)
	r.GET("/jobs/:id/status", h.getStatus)
	r.POST("/jobs/:id/cancel", h.cancelJob)
	r.GET("/jobs/:id/report", h.getReport)

	r.GET("/health", h.health)
}

func (h *APIHandler) createJob(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	job, err := h.Jobs.Create(c.Request.Context(), jobs.CreateRequest{
		AudioRef: req.AudioRef,
		Title:    req.Title,
		Notes:    req.Notes,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *APIHandler) listJobs(c *gin.Context) {
	all, err := h.Jobs.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": all})
}

func (h *APIHandler) getJob(c *gin.Context) {
	job, err := h.Jobs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *APIHandler) getStatus(c *gin.Context) {
	view, err := h.Jobs.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *APIHandler) cancelJob(c *gin.Context) {
	err := h.Jobs.Cancel(c.Request.Context(), c.Param("id"))
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
	case errors.Is(err, jobs.ErrJobTerminal):
		c.JSON(http.StatusConflict, gin.H{"error": "job already finished"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (h *APIHandler) getReport(c *gin.Context) {
	ctx := c.Request.Context()

	job, err := h.Jobs.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if job.Status != model.StatusCompleted {
		c.JSON(http.StatusConflict, gin.H{"error": "job is not completed"})
		return
	}

	path, err := h.Reports.Write(ctx, job)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.FileAttachment(path, job.ID+".docx")
}

func (h *APIHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
