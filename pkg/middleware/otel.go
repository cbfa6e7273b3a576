package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for header spans.
const defaultTracerName = "siteheader"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "siteheader").
	TracerName string

	// TracerProvider overrides the global provider.
	TracerProvider trace.TracerProvider

	// IncludeRoute adds the chi route pattern as http.route.
	// Enabled by default.
	IncludeRoute bool

	// Filter determines which requests to trace.
	// If nil, all requests are traced.
	Filter func(r *http.Request) bool

	// AttributeExtractor adds custom attributes per request.
	AttributeExtractor func(r *http.Request) []attribute.KeyValue

	// LayoutParam is the route parameter holding the layout (default: "layout").
	LayoutParam string

	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithIncludeRoute enables/disables including the route in traces.
func WithIncludeRoute(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeRoute = include
	}
}

// WithRequestFilter sets a filter function for requests.
func WithRequestFilter(filter func(r *http.Request) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(r *http.Request) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName:   defaultTracerName,
		IncludeRoute: true,
		LayoutParam:  "layout",
	}
}

// OpenTelemetry creates middleware that starts a server span per header
// request, named "header.render <layout>". The span is stored in the request
// context; responses with a 5xx status mark it as failed.
//
// The tracer uses the global OpenTelemetry tracer provider unless
// WithTracerProvider is given:
//
//	otel.SetTracerProvider(tp)
//	r.With(middleware.OpenTelemetry()).Get("/header/{layout}", h.ServeHeader)
func OpenTelemetry(opts ...OTelOption) func(http.Handler) http.Handler {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	if config.TracerProvider != nil {
		config.tracer = config.TracerProvider.Tracer(config.TracerName)
	} else {
		config.tracer = otel.Tracer(config.TracerName)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if config.Filter != nil && !config.Filter(r) {
				next.ServeHTTP(w, r)
				return
			}

			layout := chi.URLParam(r, config.LayoutParam)
			attrs := []attribute.KeyValue{
				attribute.String("header.layout", layout),
				attribute.String("header.path", requestedPath(r)),
			}
			if config.IncludeRoute {
				if rctx := chi.RouteContext(r.Context()); rctx != nil {
					attrs = append(attrs, attribute.String("http.route", rctx.RoutePattern()))
				}
			}
			if config.AttributeExtractor != nil {
				attrs = append(attrs, config.AttributeExtractor(r)...)
			}

			ctx, span := config.tracer.Start(
				r.Context(),
				spanName(layout),
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(attrs...),
			)
			defer span.End()

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			span.SetAttributes(attribute.Int("http.status_code", status))
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			} else {
				span.SetStatus(codes.Ok, "")
			}
		})
	}
}

// SpanFromContext returns the current span, which is a no-op span when the
// request was not traced.
func SpanFromContext(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}

func spanName(layout string) string {
	if layout == "" {
		return "header.render"
	}
	return fmt.Sprintf("header.render %s", layout)
}

// requestedPath is the location the request asks to render.
func requestedPath(r *http.Request) string {
	if p := r.URL.Query().Get("path"); p != "" {
		return p
	}
	return "/"
}
