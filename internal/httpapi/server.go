// Package httpapi exposes settlement and analytics over HTTP/JSON.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/bistro/internal/auth"
	"github.com/nikolayk812/bistro/internal/domain"
	"github.com/nikolayk812/bistro/internal/settlement"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Settler interface {
	Settle(ctx context.Context, in settlement.SettleInput) (settlement.SettleResult, error)
	CreateCheckoutSession(ctx context.Context, price decimal.Decimal) (string, error)
}

type Analytics interface {
	Summary(ctx context.Context) (domain.Summary, error)
	CategoryBreakdown(ctx context.Context) ([]domain.CategorySummary, error)
}

type TokenService interface {
	Issue(email string) (string, error)
	Verify(ctx context.Context, token string) (auth.Identity, error)
}

type RoleGate interface {
	Require(ctx context.Context, email string, role domain.Role) error
}

type PaymentReader interface {
	ListPayments(ctx context.Context, ownerEmail string) ([]domain.PaymentRecord, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Settler   Settler
	Analytics Analytics
	Tokens    TokenService
	Roles     RoleGate
	Payments  PaymentReader
	// Health is optional; without it /healthz always reports ok.
	Health Pinger
	Logger *zap.Logger
}

type Server struct {
	deps   Deps
	router *gin.Engine
	logger *zap.Logger
}

func NewServer(deps Deps) (*Server, error) {
	switch {
	case deps.Settler == nil:
		return nil, fmt.Errorf("settler is nil")
	case deps.Analytics == nil:
		return nil, fmt.Errorf("analytics is nil")
	case deps.Tokens == nil:
		return nil, fmt.Errorf("tokens is nil")
	case deps.Roles == nil:
		return nil, fmt.Errorf("roles is nil")
	case deps.Payments == nil:
		return nil, fmt.Errorf("payments is nil")
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery())

	s := &Server{
		deps:   deps,
		router: router,
		logger: logger,
	}

	router.GET("/healthz", s.handleHealth)
	router.POST("/jwt", s.handleIssueToken)

	authed := router.Group("/", s.verifyIdentity)
	{
		authed.POST("/create-checkout-session", s.handleCreateCheckoutSession)
		authed.POST("/payments", s.handleSettle)
		authed.GET("/payments", s.handleListPayments)
	}

	admin := authed.Group("/", s.requireRole(domain.RoleAdmin))
	{
		admin.GET("/admin-stats", s.handleAdminStats)
		admin.GET("/order-stats", s.handleOrderStats)
	}

	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// requestLogger logs one line per request through zap.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			logger.Error("request", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}
