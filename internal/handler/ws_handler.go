package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/elimufine/elimu-backend/internal/generation"
	"github.com/elimufine/elimu-backend/internal/middleware"
	"github.com/elimufine/elimu-backend/internal/response"
	"github.com/elimufine/elimu-backend/internal/service"
	ws "github.com/elimufine/elimu-backend/internal/websocket"
)

// maxInFlight bounds concurrent generations per connection. Further actions
// wait in the read loop until a slot frees up.
const maxInFlight = 4

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams generation progress over a WebSocket.
type WSHandler struct {
	generationService *service.GenerationService
	limiter           middleware.Limiter // nil disables per-action limits
	log               zerolog.Logger
	upgrader          websocket.Upgrader
}

// NewWSHandler creates a new WSHandler. Every generation action is charged
// to limiter under the client's IP, the same budget the HTTP endpoints use.
func NewWSHandler(generationService *service.GenerationService, limiter middleware.Limiter, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		generationService: generationService,
		limiter:           limiter,
		log:               log.With().Str("component", "ws_handler").Logger(),
		upgrader:          buildUpgrader(allowedOrigins),
	}
}

// GenerateStream godoc
// WS /ws/v1/generate
// Every generation action is acknowledged with a pending event and settled
// by exactly one lesson, certificate or error event with the same request_id.
// Closing the socket cancels whatever is still generating.
func (h *WSHandler) GenerateStream(c *gin.Context) {
	raw, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	conn := ws.NewConn(raw)
	defer conn.Close()

	clientIP := c.ClientIP()
	wsLog := h.log.With().Str("remote", clientIP).Logger()
	wsLog.Info().Msg("Client connected")

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxInFlight)

	h.readLoop(gctx, conn, g, clientIP, wsLog)

	// Reader gone: abandon in-flight generations.
	cancel()
	if err := g.Wait(); err != nil {
		wsLog.Debug().Err(err).Msg("Dropped events after disconnect")
	}
	wsLog.Info().Msg("Client disconnected")
}

func (h *WSHandler) readLoop(ctx context.Context, conn *ws.Conn, g *errgroup.Group, clientIP string, wsLog zerolog.Logger) {
	for {
		var msg ws.RequestPayload
		err := conn.ReadJSON(&msg)
		if err != nil {
			var decodeErr *ws.DecodeError
			if errors.As(err, &decodeErr) {
				if err := conn.WriteError("", string(response.ErrInvalidPayload), "message is not valid JSON", nil); err != nil {
					return
				}
				continue
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			return
		}

		// canceled when a generation could not write its event
		if ctx.Err() != nil {
			return
		}

		switch msg.Action {
		case ws.ActionPing:
			if err := conn.WriteTyped(ws.PongResponse{Event: ws.EventPong}); err != nil {
				return
			}
		case ws.ActionGenerateLesson, ws.ActionGenerateCertificate:
			if msg.RequestID == "" {
				msg.RequestID = uuid.NewString()
			}
			if !h.allow(ctx, clientIP, wsLog) {
				code := response.ErrRateLimitExceeded
				if err := conn.WriteError(msg.RequestID, string(code), response.GetMessage(code), nil); err != nil {
					return
				}
				continue
			}
			if err := conn.WriteTyped(ws.PendingResponse{
				Event:     ws.EventPending,
				RequestID: msg.RequestID,
				Action:    msg.Action,
			}); err != nil {
				return
			}
			req := msg
			g.Go(func() error {
				return h.generate(ctx, conn, &req, wsLog)
			})
		default:
			wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
			if err := conn.WriteError(msg.RequestID, string(response.ErrInvalidPayload), "unknown action: "+string(msg.Action), nil); err != nil {
				return
			}
		}
	}
}

// allow charges one generation to the client. Limiter errors let the action
// through, matching the HTTP middleware.
func (h *WSHandler) allow(ctx context.Context, clientIP string, wsLog zerolog.Logger) bool {
	if h.limiter == nil {
		return true
	}
	ok, err := h.limiter.Allow(ctx, clientIP)
	if err != nil {
		wsLog.Warn().Err(err).Msg("Rate limiter unavailable, allowing action")
		return true
	}
	if !ok {
		wsLog.Debug().Msg("Generation action rate limited")
	}
	return ok
}

// generate runs one action and writes its terminal event. Only write errors
// are returned; generation failures are reported to the client.
func (h *WSHandler) generate(ctx context.Context, conn *ws.Conn, req *ws.RequestPayload, wsLog zerolog.Logger) error {
	var (
		event interface{}
		err   error
	)

	switch req.Action {
	case ws.ActionGenerateLesson:
		lesson, genErr := h.generationService.GenerateLesson(ctx, req.Topic, req.GradeLevel)
		event, err = ws.LessonResponse{Event: ws.EventLesson, RequestID: req.RequestID, Lesson: lesson}, genErr
	case ws.ActionGenerateCertificate:
		text, genErr := h.generationService.GenerateCertificate(ctx, req.StudentName, req.Achievement)
		event, err = ws.CertificateResponse{Event: ws.EventCertificate, RequestID: req.RequestID, CertificateText: text}, genErr
	default:
		return nil
	}

	if err == nil {
		return conn.WriteTyped(event)
	}

	var ve *generation.ValidationError
	if errors.As(err, &ve) {
		return conn.WriteError(req.RequestID, string(response.ErrValidation), response.GetMessage(response.ErrValidation), ve.Fields)
	}

	_, code := generationStatus(err)
	wsLog.Warn().Err(err).
		Str("request_id", req.RequestID).
		Str("action", string(req.Action)).
		Msg("Generation action failed")
	return conn.WriteError(req.RequestID, string(code), response.GetMessage(code), nil)
}
