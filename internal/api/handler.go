package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kurihiro0119/gh-reinvite/internal/domain"
	apperrors "github.com/kurihiro0119/gh-reinvite/internal/errors"
	"github.com/kurihiro0119/gh-reinvite/internal/reinvite"
	"github.com/kurihiro0119/gh-reinvite/internal/storage"
)

// Handler handles API requests
type Handler struct {
	store    storage.RunStore
	executor *reinvite.Executor
}

// NewHandler creates a new API handler
func NewHandler(store storage.RunStore, executor *reinvite.Executor) *Handler {
	return &Handler{
		store:    store,
		executor: executor,
	}
}

// HealthCheck returns the API health status
// GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// ListRuns returns the reinvite run history for a repository
// GET /api/v1/repos/:owner/:repo/runs
func (h *Handler) ListRuns(c *gin.Context) {
	owner := c.Param("owner")
	repo := c.Param("repo")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	runs, err := h.store.ListRuns(c.Request.Context(), owner, repo, limit)
	if err != nil {
		respondError(c, apperrors.NewInternalError("failed to list runs", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": runs,
	})
}

// ListAllRuns returns the reinvite run history across all repositories
// GET /api/v1/runs
func (h *Handler) ListAllRuns(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	runs, err := h.store.ListRuns(c.Request.Context(), "", "", limit)
	if err != nil {
		respondError(c, apperrors.NewInternalError("failed to list runs", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": runs,
	})
}

// reinviteRequest is the body for a remote reinvite trigger
type reinviteRequest struct {
	Permission   string `json:"permission"`
	DelaySeconds int    `json:"delay_seconds"`
}

// Reinvite executes the remove-wait-reinvite flow for a collaborator.
// The confirmation gate does not apply to API-triggered runs.
// POST /api/v1/repos/:owner/:repo/collaborators/:username/reinvite
func (h *Handler) Reinvite(c *gin.Context) {
	repoRef := domain.RepoRef{
		Owner: c.Param("owner"),
		Name:  c.Param("repo"),
	}
	username := c.Param("username")

	// An empty body means defaults
	var req reinviteRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, apperrors.NewValidationError("invalid request body"))
		return
	}
	if req.Permission == "" {
		req.Permission = string(domain.PermissionPush)
	}
	permission, err := domain.ParsePermission(req.Permission)
	if err != nil {
		respondError(c, apperrors.NewValidationError(err.Error()))
		return
	}
	if req.DelaySeconds < 0 {
		respondError(c, apperrors.NewValidationError("delay_seconds must be non-negative"))
		return
	}

	run, err := h.executor.Run(c.Request.Context(), reinvite.Options{
		Repo:         repoRef,
		Username:     username,
		Permission:   permission,
		DelaySeconds: req.DelaySeconds,
		SkipConfirm:  true,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": run,
	})
}

// respondError maps application errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Code {
		case apperrors.ErrCodeValidation:
			status = http.StatusBadRequest
		case apperrors.ErrCodeUnauthenticated:
			status = http.StatusUnauthorized
		case apperrors.ErrCodeAccessDenied:
			status = http.StatusNotFound
		case apperrors.ErrCodeProbeFailed, apperrors.ErrCodeStepFailed:
			status = http.StatusBadGateway
		}
	}

	c.JSON(status, gin.H{
		"error": err.Error(),
	})
}
