// Package live re-renders the header over a websocket as the visitor
// navigates client-side, so the active link follows the current location
// without a page load.
//
// The client sends one JSON message per navigation:
//
//	{"path": "/programs", "layout": "desktop"}
//
// and receives the re-rendered fragment:
//
//	{"layout": "desktop", "path": "/programs", "html": "<header ...>"}
//
// or {"layout": ..., "path": ..., "error": "..."} when the request cannot be
// rendered. The connection stays open until either side closes it.
package live

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/siteheader/internal/errors"
	"github.com/vango-dev/siteheader/pkg/header"
	"github.com/vango-dev/siteheader/pkg/location"
	"github.com/vango-dev/siteheader/pkg/middleware"
)

// Request is a client navigation.
type Request struct {
	Path   string `json:"path"`
	Layout string `json:"layout"`
}

// Response carries the rendered fragment or an error.
type Response struct {
	Layout string `json:"layout"`
	Path   string `json:"path"`
	HTML   string `json:"html,omitempty"`
	Error  string `json:"error,omitempty"`
}

// RenderFunc renders layout at loc for the visitor behind r, the upgrade
// request. r carries the session and language headers.
type RenderFunc func(r *http.Request, layout header.Layout, loc location.Source) (string, error)

// Config configures the live channel.
type Config struct {
	// ReadTimeout closes connections that send nothing, pongs included.
	ReadTimeout time.Duration

	// WriteTimeout bounds each write.
	WriteTimeout time.Duration

	// PingInterval is how often the server pings. Must be below ReadTimeout.
	PingInterval time.Duration

	// MaxMessageSize limits client messages in bytes.
	MaxMessageSize int64

	// CheckOrigin validates the upgrade request origin. Nil allows same
	// origin only.
	CheckOrigin func(r *http.Request) bool

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns the default live channel settings.
func DefaultConfig() Config {
	return Config{
		ReadTimeout:    60 * time.Second,
		WriteTimeout:   10 * time.Second,
		PingInterval:   30 * time.Second,
		MaxMessageSize: 4096,
	}
}

// Handler upgrades requests and serves live connections.
type Handler struct {
	render   RenderFunc
	config   Config
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// New returns a live channel handler. Zero fields of cfg take their
// defaults.
func New(render RenderFunc, cfg Config) *Handler {
	def := DefaultConfig()
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = def.ReadTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}
	if cfg.PingInterval <= 0 || cfg.PingInterval >= cfg.ReadTimeout {
		cfg.PingInterval = cfg.ReadTimeout / 2
	}
	if cfg.MaxMessageSize <= 0 {
		cfg.MaxMessageSize = def.MaxMessageSize
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		render: render,
		config: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     cfg.CheckOrigin,
		},
		logger: logger,
	}
}

// ServeHTTP upgrades the request and blocks until the connection closes.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	c := &connection{
		handler: h,
		conn:    conn,
		req:     r,
		done:    make(chan struct{}),
		logger:  h.logger.With("remote", r.RemoteAddr),
	}
	middleware.RecordLiveOpen()
	defer middleware.RecordLiveClose()

	go c.pingLoop()
	c.readLoop()
}

type connection struct {
	handler *Handler
	conn    *websocket.Conn
	req     *http.Request
	done    chan struct{}
	logger  *slog.Logger
}

// readLoop reads navigations until the connection fails or closes. It is the
// only writer of data frames; pings go through WriteControl.
func (c *connection) readLoop() {
	defer c.close()

	cfg := c.handler.config
	c.conn.SetReadLimit(cfg.MaxMessageSize)
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))
	})

	for {
		c.conn.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))

		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				c.logger.Error("read error", "error", err)
			}
			return
		}

		resp := c.handle(msg)

		c.conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
		if err := c.conn.WriteJSON(resp); err != nil {
			c.logger.Error("write error", "error", err)
			return
		}
	}
}

func (c *connection) handle(msg []byte) Response {
	var req Request
	if err := json.Unmarshal(msg, &req); err != nil {
		c.logger.Warn("invalid live message", "error", err)
		return Response{Error: "invalid message"}
	}
	resp := Response{Layout: req.Layout, Path: req.Path}

	layout, err := header.ParseLayout(req.Layout)
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	loc, err := location.Parse(req.Path)
	if err != nil {
		resp.Error = err.Error()
		return resp
	}

	start := time.Now()
	html, err := c.handler.render(c.req, layout, loc)
	if err != nil {
		middleware.RecordRender(string(layout), "error", time.Since(start))
		c.logger.Error("live render failed", "path", loc.Path(), "variant", layout, errors.Attr(err))
		resp.Error = err.Error()
		return resp
	}
	middleware.RecordRender(string(layout), "ok", time.Since(start))
	c.logger.Debug("live render", "path", loc.Path(), "variant", layout)

	resp.Path = loc.Path()
	resp.HTML = html
	return resp
}

func (c *connection) pingLoop() {
	ticker := time.NewTicker(c.handler.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			deadline := time.Now().Add(c.handler.config.WriteTimeout)
			if err := c.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				c.logger.Debug("ping error", "error", err)
				return
			}
		}
	}
}

func (c *connection) close() {
	close(c.done)
	c.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	c.conn.Close()
}
