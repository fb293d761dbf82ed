package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/bistro/internal/domain"
	"github.com/nikolayk812/bistro/internal/settlement"
	"go.uber.org/zap"
)

const idempotencyHeader = "Idempotency-Key"

func (s *Server) handleHealth(c *gin.Context) {
	if s.deps.Health != nil {
		if err := s.deps.Health.Ping(c.Request.Context()); err != nil {
			s.logger.Warn("health check", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Error: err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}

func (s *Server) handleIssueToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abort(c, badRequest(err))
		return
	}

	token, err := s.deps.Tokens.Issue(req.Email)
	if err != nil {
		s.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{Token: token})
}

func (s *Server) handleCreateCheckoutSession(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abort(c, badRequest(err))
		return
	}

	secret, err := s.deps.Settler.CreateCheckoutSession(c.Request.Context(), *req.Price)
	if err != nil {
		s.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, checkoutResponse{ClientSecret: secret})
}

func (s *Server) handleSettle(c *gin.Context) {
	identity, _ := identityFrom(c)

	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abort(c, badRequest(err))
		return
	}

	if req.UserEmail != "" && req.UserEmail != identity.Email {
		s.abort(c, fmt.Errorf("%w: userEmail does not match the token", domain.ErrForbidden))
		return
	}

	in, err := req.toInput(identity.Email, c.GetHeader(idempotencyHeader))
	if err != nil {
		s.abort(c, err)
		return
	}

	result, err := s.deps.Settler.Settle(c.Request.Context(), in)

	var cleanupErr *settlement.CleanupError
	if errors.As(err, &cleanupErr) {
		// the payment went through; report it together with the failure
		s.logger.Error("settle", zap.Error(err))
		_ = c.Error(err)

		payment := toPaymentDTO(result.Payment)
		c.JSON(http.StatusInternalServerError, settleResponse{
			PaymentResult: &payment,
			Error:         "payment recorded, cart cleanup failed",
		})
		return
	}
	if err != nil {
		s.abort(c, err)
		return
	}

	payment := toPaymentDTO(result.Payment)
	c.JSON(http.StatusOK, settleResponse{
		PaymentResult: &payment,
		DeleteResult:  &deleteResult{DeletedCount: result.DeletedCount},
	})
}

func (s *Server) handleListPayments(c *gin.Context) {
	identity, _ := identityFrom(c)

	records, err := s.deps.Payments.ListPayments(c.Request.Context(), identity.Email)
	if err != nil {
		s.abort(c, fmt.Errorf("%w: payments.ListPayments: %w", domain.ErrStore, err))
		return
	}

	payments := make([]paymentDTO, 0, len(records))
	for _, record := range records {
		payments = append(payments, toPaymentDTO(record))
	}

	c.JSON(http.StatusOK, payments)
}

func (s *Server) handleAdminStats(c *gin.Context) {
	summary, err := s.deps.Analytics.Summary(c.Request.Context())
	if err != nil {
		s.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, adminStatsResponse{
		Revenue:  summary.RevenueTotal.String(),
		Orders:   summary.Orders,
		Users:    summary.Users,
		Products: summary.Products,
	})
}

func (s *Server) handleOrderStats(c *gin.Context) {
	categories, err := s.deps.Analytics.CategoryBreakdown(c.Request.Context())
	if err != nil {
		s.abort(c, err)
		return
	}

	stats := make([]categoryStatsDTO, 0, len(categories))
	for _, category := range categories {
		stats = append(stats, categoryStatsDTO{
			Category: category.Category,
			Quantity: category.Quantity,
			Revenue:  category.Revenue.String(),
		})
	}

	c.JSON(http.StatusOK, stats)
}

func badRequest(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
}
