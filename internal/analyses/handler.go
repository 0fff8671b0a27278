package analyses

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-analyzer/internal/extract"
	"resume-analyzer/internal/llm"
	"resume-analyzer/internal/shared/server/middleware"
	"resume-analyzer/internal/shared/server/respond"
	"resume-analyzer/internal/shared/util"
)

// maxUploadSize caps resume uploads at 5 MB.
const maxUploadSize = 5 << 20

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume-analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resume/analyze", h.analyze)
	rg.POST("/resume/match-job/:id", h.matchJob)
	rg.GET("/resume/analyses", h.listAnalyses)
	rg.GET("/resume/analyses/:id", h.getAnalysis)
	rg.DELETE("/resume/analyses/:id", h.deleteAnalysis)
}

func (h *Handler) analyze(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	file, header, err := c.Request.FormFile("resume")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume file is required", nil)
		return
	}
	defer file.Close()
	if header.Size > maxUploadSize {
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "resume file exceeds the 5MB limit", nil)
		return
	}

	fileName, err := util.SanitizeFileName(header.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file name", nil)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read upload", nil)
		return
	}
	if len(data) > maxUploadSize {
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "resume file exceeds the 5MB limit", nil)
		return
	}

	analysis, err := h.Svc.Analyze(c.Request.Context(), userID, fileName, data)
	if err != nil {
		respondPipelineError(c, err)
		return
	}

	respond.JSON(c, http.StatusCreated, detailResponse(analysis, false))
}

func (h *Handler) matchJob(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	analysisID := c.Param("id")

	var body struct {
		JobDescription string `json:"jobDescription"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	match, err := h.Svc.MatchJob(c.Request.Context(), userID, analysisID, body.JobDescription)
	if err != nil {
		switch {
		case errors.Is(err, ErrJobDescriptionRequired):
			respond.Error(c, http.StatusBadRequest, "validation_error", "job description is required", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "analysis not found", nil)
		default:
			respondPipelineError(c, err)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"analysisId":      analysisID,
		"matchScore":      match.MatchScore,
		"missingSkills":   match.MissingSkills,
		"matchedSkills":   match.MatchedSkills,
		"recommendations": match.Recommendations,
	})
}

func (h *Handler) listAnalyses(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > 50 {
		limit = 50
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			offset = parsed
		}
	}

	analyses, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list analyses", nil)
		return
	}

	resp := make([]gin.H, 0, len(analyses))
	for _, analysis := range analyses {
		resp = append(resp, summaryResponse(analysis))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) getAnalysis(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	analysisID := c.Param("id")

	analysis, err := h.Svc.Get(c.Request.Context(), userID, analysisID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "analysis not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch analysis", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, detailResponse(analysis, true))
}

func (h *Handler) deleteAnalysis(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	analysisID := c.Param("id")

	if err := h.Svc.Delete(c.Request.Context(), userID, analysisID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "analysis not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete analysis", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"deleted": true})
}

// respondPipelineError maps pipeline errors to HTTP responses. Upstream
// completion failures surface as 502 so clients can distinguish them from
// bad input.
func respondPipelineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, extract.ErrUnsupportedFormat):
		respond.Error(c, http.StatusBadRequest, "unsupported_format", "only PDF and Word documents are supported", nil)
	case errors.Is(err, extract.ErrContentTooShort):
		respond.Error(c, http.StatusUnprocessableEntity, "content_too_short", "could not extract enough text from the document", nil)
	case errors.Is(err, extract.ErrExtractionFailed):
		respond.Error(c, http.StatusUnprocessableEntity, "extraction_failed", "failed to extract text from the document", nil)
	case errors.Is(err, llm.ErrUnavailable):
		respond.Error(c, http.StatusBadGateway, "completion_unavailable", "analysis service is temporarily unavailable", nil)
	case errors.Is(err, ErrMalformedResponse), errors.Is(err, ErrInvalidJSON), errors.Is(err, ErrIncompleteAnalysis):
		respond.Error(c, http.StatusBadGateway, "invalid_completion", "analysis service returned an unusable response", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "analysis failed", nil)
	}
}

func summaryResponse(analysis Analysis) gin.H {
	resp := gin.H{
		"id":        analysis.ID,
		"fileName":  analysis.FileName,
		"atsScore":  analysis.ATSScore,
		"skills":    analysis.Skills,
		"createdAt": analysis.CreatedAt,
	}
	if analysis.MatchScore != nil {
		resp["matchScore"] = *analysis.MatchScore
	}
	return resp
}

func detailResponse(analysis Analysis, includeMatch bool) gin.H {
	resp := gin.H{
		"id":          analysis.ID,
		"fileName":    analysis.FileName,
		"atsScore":    analysis.ATSScore,
		"skills":      analysis.Skills,
		"strengths":   analysis.Strengths,
		"weaknesses":  analysis.Weaknesses,
		"suggestions": analysis.Suggestions,
		"createdAt":   analysis.CreatedAt,
		"updatedAt":   analysis.UpdatedAt,
	}
	if includeMatch && analysis.MatchScore != nil {
		resp["jobDescription"] = analysis.JobDescription
		resp["matchScore"] = *analysis.MatchScore
		resp["missingSkills"] = analysis.MissingSkills
	}
	return resp
}
