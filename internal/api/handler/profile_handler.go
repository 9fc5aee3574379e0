package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cuongbtq/jobboard/internal/api/domain"
	"github.com/cuongbtq/jobboard/internal/api/dto"
	"github.com/cuongbtq/jobboard/internal/api/service"
	"github.com/gin-gonic/gin"
)

// ProfileHandler serves the calling candidate's own profile
type ProfileHandler struct {
	logger         *slog.Logger
	profile        *service.ProfileRepository
	maxUploadBytes int64
}

func NewProfileHandler(deps *Dependencies) *ProfileHandler {
	return &ProfileHandler{
		logger:         deps.Logger,
		profile:        deps.Profile,
		maxUploadBytes: deps.MaxUploadBytes,
	}
}

// GetProfile handles GET /api/v1/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profile.Get(c.Request.Context(), currentCandidate(c))
	if err != nil {
		writeError(c, h.logger, "Failed to get profile", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCandidateDTO(*profile))
}

// UpdateProfile handles PATCH /api/v1/profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.logger, err)
		return
	}

	profile, err := h.profile.Update(c.Request.Context(), currentCandidate(c), req.ToPatch())
	if err != nil {
		writeError(c, h.logger, "Failed to update profile", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCandidateDTO(*profile))
}

// UploadResume handles POST /api/v1/profile/resume
// Accepts a multipart "file" field or a JSON file descriptor; the bytes are not kept
func (h *ProfileHandler) UploadResume(c *gin.Context) {
	file, ok := h.resumeDescriptor(c)
	if !ok {
		return
	}

	upload, err := h.profile.AttachResume(c.Request.Context(), currentCandidate(c), file)
	if err != nil {
		writeError(c, h.logger, "Failed to upload resume", err)
		return
	}

	c.JSON(http.StatusCreated, dto.ResumeUploadResponse{
		FileName: upload.FileName,
		URL:      upload.URL,
		Size:     upload.Size,
		Type:     upload.ContentType,
	})
}

// DeleteResume handles DELETE /api/v1/profile/resume
func (h *ProfileHandler) DeleteResume(c *gin.Context) {
	profile, err := h.profile.DetachResume(c.Request.Context(), currentCandidate(c))
	if err != nil {
		writeError(c, h.logger, "Failed to remove resume", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCandidateDTO(*profile))
}

func (h *ProfileHandler) resumeDescriptor(c *gin.Context) (domain.FileDescriptor, bool) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		var req dto.ResumeDescriptorRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBindError(c, h.logger, err)
			return domain.FileDescriptor{}, false
		}
		return domain.FileDescriptor{Name: req.Name, Size: req.Size, ContentType: req.Type}, true
	}

	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": "file is too large",
			})
			return domain.FileDescriptor{}, false
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "file is required",
		})
		return domain.FileDescriptor{}, false
	}

	return domain.FileDescriptor{
		Name:        fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
	}, true
}
