package handler

import (
	"log/slog"
	"net/http"

	"github.com/cuongbtq/jobboard/internal/api/dto"
	"github.com/cuongbtq/jobboard/internal/api/service"
	"github.com/gin-gonic/gin"
)

// CandidateHandler is the recruiter-facing candidate registry
type CandidateHandler struct {
	logger     *slog.Logger
	candidates *service.CandidateRepository
}

func NewCandidateHandler(deps *Dependencies) *CandidateHandler {
	return &CandidateHandler{
		logger:     deps.Logger,
		candidates: deps.Candidates,
	}
}

// ListCandidates handles GET /api/v1/candidates
func (h *CandidateHandler) ListCandidates(c *gin.Context) {
	candidates, err := h.candidates.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, "Failed to list candidates", err)
		return
	}

	out := make([]dto.CandidateDTO, len(candidates))
	for i, cand := range candidates {
		out[i] = dto.NewCandidateDTO(cand)
	}
	c.JSON(http.StatusOK, dto.ListCandidatesResponse{Candidates: out})
}

// CreateCandidate handles POST /api/v1/candidates
func (h *CandidateHandler) CreateCandidate(c *gin.Context) {
	var req dto.CreateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.logger, err)
		return
	}

	cand, err := h.candidates.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		writeError(c, h.logger, "Failed to create candidate", err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewCandidateDTO(*cand))
}

// GetCandidate handles GET /api/v1/candidates/:id
func (h *CandidateHandler) GetCandidate(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	cand, err := h.candidates.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, "Failed to get candidate", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCandidateDTO(*cand))
}

// UpdateCandidate handles PATCH /api/v1/candidates/:id
func (h *CandidateHandler) UpdateCandidate(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.logger, err)
		return
	}

	cand, err := h.candidates.Update(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		writeError(c, h.logger, "Failed to update candidate", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCandidateDTO(*cand))
}

// DeleteCandidate handles DELETE /api/v1/candidates/:id
func (h *CandidateHandler) DeleteCandidate(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.candidates.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, "Failed to delete candidate", err)
		return
	}

	c.Status(http.StatusNoContent)
}
