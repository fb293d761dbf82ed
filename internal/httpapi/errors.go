package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/bistro/internal/domain"
	"go.uber.org/zap"
)

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrDuplicateSubmission):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// abort writes the error body and stops the handler chain. Server errors
// are logged and their details are not sent to the client.
func (s *Server) abort(c *gin.Context, err error) {
	status := statusOf(err)
	_ = c.Error(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		message = publicMessage(err)
	}

	c.AbortWithStatusJSON(status, errorResponse{Error: message})
}

func publicMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrPaymentGateway):
		return domain.ErrPaymentGateway.Error()
	case errors.Is(err, domain.ErrStore):
		return domain.ErrStore.Error()
	default:
		return "internal error"
	}
}
