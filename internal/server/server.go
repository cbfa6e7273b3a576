// Package server serves rendered header fragments over HTTP.
//
// Routes:
//
//	GET /header/{layout}  desktop or mobile fragment for ?path= (or the Referer)
//	GET /preview          full page with both layouts
//	GET /live             websocket re-rendering on client navigation
//	GET /metrics          Prometheus metrics
//	GET /healthz          liveness probe
//
// The signed-in user is read from a request header set by an authenticating
// proxy (X-Authenticated-User by default). The locale comes from ?lang=,
// then Accept-Language, then the configured default.
package server

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/text/language"

	"github.com/vango-dev/siteheader/internal/config"
	herrors "github.com/vango-dev/siteheader/internal/errors"
	"github.com/vango-dev/siteheader/internal/live"
	"github.com/vango-dev/siteheader/internal/logging"
	"github.com/vango-dev/siteheader/pkg/header"
	"github.com/vango-dev/siteheader/pkg/i18n"
	"github.com/vango-dev/siteheader/pkg/location"
	"github.com/vango-dev/siteheader/pkg/middleware"
	"github.com/vango-dev/siteheader/pkg/render"
	"github.com/vango-dev/siteheader/pkg/vdom"
)

const htmlContentType = "text/html; charset=utf-8"

// Server renders headers for HTTP clients.
type Server struct {
	cfg      *config.Config
	props    header.Props
	catalog  *i18n.Catalog
	renderer *render.Renderer
	logger   *slog.Logger
	router   chi.Router

	shutdownTimeout time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithCatalog replaces the embedded message catalog.
func WithCatalog(c *i18n.Catalog) Option {
	return func(s *Server) {
		s.catalog = c
	}
}

// WithShutdownTimeout bounds graceful shutdown. Default: 10s.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.shutdownTimeout = d
	}
}

// New builds a server for cfg. The configured menus are validated once
// here, so requests only fail on request input.
func New(cfg *config.Config, opts ...Option) (*Server, error) {
	props := cfg.Props()
	if err := props.Validate(); err != nil {
		return nil, err
	}

	s := &Server{
		cfg:             cfg,
		props:           props,
		catalog:         i18n.DefaultCatalog(),
		renderer:        render.NewRenderer(render.RendererConfig{}),
		logger:          slog.Default(),
		shutdownTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.With(
		middleware.OpenTelemetry(),
		middleware.Prometheus(),
		withLocation,
	).Get("/header/{layout}", s.handleHeader)
	r.With(withLocation).Get("/preview", s.handlePreview)
	r.Handle("/live", live.New(s.Render, live.Config{Logger: s.logger}))

	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on the configured address until ctx is done, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "address", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	s.logger.Info("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Render renders layout at loc for the visitor making r.
func (s *Server) Render(r *http.Request, layout header.Layout, loc location.Source) (string, error) {
	node, _, err := s.build(r, layout, loc)
	if err != nil {
		return "", err
	}
	return s.renderer.RenderToString(node)
}

func (s *Server) build(r *http.Request, layout header.Layout, loc location.Source) (*vdom.VNode, language.Tag, error) {
	tag, err := s.locale(r)
	if err != nil {
		return nil, language.Und, err
	}
	p, err := header.New(layout, s.propsFor(r), header.Env{
		Messages: s.catalog.Localizer(tag),
		Settings: s.cfg.Settings(),
		Location: loc,
	})
	if err != nil {
		return nil, language.Und, err
	}
	return p.Render(), tag, nil
}

// locale picks ?lang=, then Accept-Language, then the configured locale.
func (s *Server) locale(r *http.Request) (language.Tag, error) {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return s.catalog.Lookup(lang)
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		return s.catalog.Match(accept), nil
	}
	return s.catalog.Lookup(s.cfg.Locale)
}

// propsFor adds the request's session to the configured props.
func (s *Server) propsFor(r *http.Request) header.Props {
	props := s.props
	if user := r.Header.Get(s.cfg.Server.UserHeader); user != "" {
		props.Session = header.Session{
			LoggedIn: true,
			Username: user,
			Avatar:   s.cfg.AvatarFor(user),
		}
	}
	return props
}

func (s *Server) handleHeader(w http.ResponseWriter, r *http.Request) {
	layout, err := header.ParseLayout(chi.URLParam(r, "layout"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	html, err := s.Render(r, layout, requestLocation(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", htmlContentType)
	w.Header().Set("Vary", "Accept-Language, Referer, "+s.cfg.Server.UserHeader)
	_, _ = w.Write([]byte(html))
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	loc := requestLocation(r)
	desktop, tag, err := s.build(r, header.LayoutDesktop, loc)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	mobile, _, err := s.build(r, header.LayoutMobile, loc)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var buf bytes.Buffer
	err = s.renderer.RenderPage(&buf, render.PageData{
		Title:       "Header preview",
		Lang:        tag.String(),
		StyleSheets: s.cfg.Server.StyleSheets,
		Scripts:     s.cfg.Server.Scripts,
		Body: vdom.Fragment(
			vdom.Div(vdom.Class("d-none d-md-block"), desktop),
			vdom.Div(vdom.Class("d-md-none"), mobile),
			vdom.Main(vdom.ID("main")),
		),
	})
	if err != nil {
		s.fail(w, r, herrors.New("E150").Wrap(err))
		return
	}

	w.Header().Set("Content-Type", htmlContentType)
	_, _ = buf.WriteTo(w)
}

// fail maps render errors to statuses: unsupported locales are the
// client's fault, anything else is ours.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if herrors.HasCode(err, "E141") {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	logging.From(r.Context()).Error("header render failed", "path", r.URL.Path, herrors.Attr(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
