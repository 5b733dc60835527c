package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/elimufine/elimu-backend/internal/generation"
	"github.com/elimufine/elimu-backend/internal/model"
	"github.com/elimufine/elimu-backend/internal/response"
	"github.com/elimufine/elimu-backend/internal/service"
	"github.com/elimufine/elimu-backend/internal/validator"
)

// GenerationHandler exposes lesson and certificate generation over HTTP.
type GenerationHandler struct {
	generationService *service.GenerationService
	log               zerolog.Logger
}

// NewGenerationHandler creates a new GenerationHandler.
func NewGenerationHandler(generationService *service.GenerationService, log zerolog.Logger) *GenerationHandler {
	return &GenerationHandler{
		generationService: generationService,
		log:               log.With().Str("component", "generation_handler").Logger(),
	}
}

// GenerateLesson godoc
// POST /api/v1/generate/lesson
// Generates a CBC lesson with a two-question quiz for the given topic and grade.
func (h *GenerationHandler) GenerateLesson(c *gin.Context) {
	var req model.GenerateLessonRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	lesson, err := h.generationService.GenerateLesson(c.Request.Context(), req.Topic, req.GradeLevel)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"lesson": lesson})
}

// GenerateCertificate godoc
// POST /api/v1/generate/certificate
// Generates the congratulatory paragraph printed on a certificate of achievement.
func (h *GenerationHandler) GenerateCertificate(c *gin.Context) {
	var req model.GenerateCertificateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	text, err := h.generationService.GenerateCertificate(c.Request.Context(), req.StudentName, req.Achievement)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"certificate_text": text})
}

func (h *GenerationHandler) fail(c *gin.Context, err error) {
	var ve *generation.ValidationError
	if errors.As(err, &ve) {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, ve.Fields)
		return
	}

	status, code := generationStatus(err)
	h.log.Warn().Err(err).
		Str("request_id", response.RequestID(c)).
		Str("code", string(code)).
		Msg("Generation request failed")
	response.Fail(c, status, code)
}

// generationStatus maps a generator error to its HTTP status and code.
// A canceled call has no client left to read the answer; it is reported
// like any other backend failure.
func generationStatus(err error) (int, response.ErrCode) {
	switch generation.KindOf(err) {
	case generation.KindTimeout:
		return http.StatusGatewayTimeout, response.ErrGenerationTimeout
	case generation.KindUnavailable, generation.KindMalformed, generation.KindCanceled:
		return http.StatusBadGateway, response.ErrGenerationFailed
	}
	return http.StatusInternalServerError, response.ErrInternal
}
