package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	generationdomain "github.com/reciply/reciply/internal/generation/domain"
	userdomain "github.com/reciply/reciply/internal/user/domain"
)

// GenerateReceipt runs one generation job for the caller and charges one
// credit on success.
func (s *Server) GenerateReceipt(c *gin.Context) {
	userID := currentUserID(c)

	if s.limiter != nil {
		if _, ok := s.limiter.Allow(c.Request.Context(), userID); !ok {
			AbortWithError(c, ErrRateLimited)
			return
		}
	}

	var req generationdomain.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("body", "invalid_json", "request body is not valid JSON"))
		return
	}

	resp, err := s.generationsvc.Generate(c.Request.Context(), userID, req)
	if err != nil {
		s.recordGenerationFailure(err)
		AbortWithError(c, err)
		return
	}

	// The charge changed the balance; drop the cached row.
	s.userCache.Delete(userID)

	s.metrics.RecordGeneration("success")
	s.metrics.RecordCreditCharge()
	c.JSON(http.StatusOK, resp)
}

func (s *Server) recordGenerationFailure(err error) {
	switch {
	case errors.Is(err, userdomain.ErrInsufficientCredits):
		s.metrics.RecordGeneration("insufficient_credits")
	case errors.Is(err, userdomain.ErrAccountBanned):
		s.metrics.RecordGeneration("banned")
	case errors.Is(err, generationdomain.ErrRenderFailed):
		s.metrics.RecordGeneration("render_failed")
	default:
		s.metrics.RecordGeneration("error")
	}
}
