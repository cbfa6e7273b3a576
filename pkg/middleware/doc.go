// Package middleware provides observability middleware for the header
// server.
//
// Both middlewares are plain net/http middleware and read the layout from
// the chi route parameter "layout", so mount them on the render route:
//
//	r.With(
//	    middleware.OpenTelemetry(),
//	    middleware.Prometheus(middleware.WithNamespace("acme")),
//	).Get("/header/{layout}", h.ServeHeader)
//
// # Prometheus Metrics
//
//   - siteheader_renders_total{layout,status}: renders by HTTP status, or
//     "ok"/"error" for live channel renders
//   - siteheader_render_duration_seconds{layout}: render duration histogram
//   - siteheader_fragments_published_total{layout,status}: fragment uploads
//   - siteheader_live_connections: open live channel sockets
//
// Expose them with promhttp:
//
//	r.Handle("/metrics", promhttp.Handler())
//
// # OpenTelemetry
//
// Each traced request gets a server span named "header.render <layout>" with
// http.route, header.layout and header.path attributes. The span travels in
// the request context, so downstream calls inherit it:
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    span := middleware.SpanFromContext(r.Context())
//	    span.SetAttributes(attribute.Bool("header.logged_in", true))
//	}
package middleware
