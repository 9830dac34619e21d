// Package http exposes the plain HTTP surface of the backend: a liveness
// line and a health report. All courier traffic goes over the websocket
// gateway instead.
package http

import (
	"context"
	"net/http"
	"time"

	"dispatch/internal/core/ports"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Server handles the non-websocket HTTP endpoints.
type Server struct {
	channel ports.ChannelGateway
	db      *gorm.DB
}

// NewServer creates the HTTP server. db may be nil when the backend runs on
// the in-memory store; the health report then says so instead of failing.
func NewServer(channel ports.ChannelGateway, db *gorm.DB) *Server {
	return &Server{
		channel: channel,
		db:      db,
	}
}

// Routes mounts the endpoints on the echo instance.
func (s *Server) Routes(e *echo.Echo) {
	e.GET("/", s.Root)
	e.GET("/api/health", s.Health)
}

// Root handles GET / - a plain-text liveness line.
func (s *Server) Root(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Courier dispatch backend is running")
}

// healthResponse is the GET /api/health body.
type healthResponse struct {
	Status   string `json:"status"`
	WhatsApp string `json:"whatsapp"`
	Database string `json:"database"`
}

// Health handles GET /api/health - reports the messaging channel state and
// database reachability.
func (s *Server) Health(ctx echo.Context) error {
	response := healthResponse{
		Status:   "ok",
		WhatsApp: string(s.channel.State().Status),
		Database: s.databaseStatus(ctx.Request().Context()),
	}

	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) databaseStatus(ctx context.Context) string {
	if s.db == nil {
		return "memory"
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		return "error"
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return "unreachable"
	}
	return "connected"
}
