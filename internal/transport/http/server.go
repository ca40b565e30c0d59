package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/roomrelay/internal/config"
	"github.com/vovakirdan/roomrelay/internal/core"
)

// NewServer builds an HTTP server serving the relay socket and read-only views.
func NewServer(hub *core.Hub, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           NewRouter(hub, cfg, logger),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

// NewRouter builds the gin engine. The socket is served on "/" and "/ws".
func NewRouter(hub *core.Hub, cfg config.Config, logger *zerolog.Logger) *gin.Engine {
	switch cfg.Mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Mode)
	default:
		logger.Warn().Str("mode", cfg.Mode).Msg("unknown gin mode, keeping current")
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(logger))

	ws := gin.WrapH(NewWSHandler(hub, cfg.ReadLimit, cfg.SendBuffer, logger))
	r.GET("/", ws)
	r.GET("/ws", ws)

	r.GET("/health", healthHandler)

	rooms := NewRoomHandlers(hub, logger)
	r.GET("/stats", rooms.Stats)
	api := r.Group("/api")
	api.GET("/rooms", rooms.ListRooms)
	api.GET("/rooms/:id", rooms.GetRoom)

	return r
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
