package server

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber"
	"github.com/metamemelord/Mockerino/encode"
	"github.com/metamemelord/Mockerino/route"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// MetricsPath serves Prometheus metrics on the admin app.
const MetricsPath = "/metrics"

func (s *Server) initAdminEndpoints() {
	s.logger.
		WithFields(logrus.Fields{
			"routes":      s.adminBasePath + "/routes",
			"diagnostics": s.adminBasePath + "/diagnostics",
			"metrics":     MetricsPath,
		}).Debug("admin endpoints")

	s.admin.Get(s.adminBasePath+"/routes", func(c *fiber.Ctx) {
		s.sendJSON(c, Routes(s.table))
	})

	s.admin.Get(s.adminBasePath+"/diagnostics", func(c *fiber.Ctx) {
		s.sendJSON(c, Diagnostics(s.diagnostics))
	})

	metricsHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	s.admin.Get(MetricsPath, func(c *fiber.Ctx) {
		metricsHandler(c.Fasthttp)
	})
}

func (s *Server) sendJSON(c *fiber.Ctx, v interface{}) {
	c.Set("Content-Type", "application/json")

	if err := encode.JSONIndented(c.Fasthttp.Response.BodyWriter(), v); err != nil {
		s.logger.WithError(err).Error("Failed to encode response")
		c.SendStatus(http.StatusInternalServerError)
	}
}

// Routes renders the entries of t.
func Routes(t *route.Table) []encode.Route {
	entries := t.Entries()
	out := make([]encode.Route, 0, len(entries))

	for _, e := range entries {
		r := encode.Route{
			Method:      e.Method,
			Path:        e.Path,
			Description: e.Description,
			Status:      e.Status,
			Source:      string(e.Source),
			File:        e.File,
			SleepMs:     int64(e.Sleep / time.Millisecond),
			Dynamic:     e.Dynamic,
			SpecFile:    e.SpecFile,
		}

		if len(e.Headers) > 0 {
			r.Headers = make(map[string]string, len(e.Headers))
			for _, h := range e.Headers {
				r.Headers[h.Name] = h.Value
			}
		}

		out = append(out, r)
	}

	return out
}

// Diagnostics renders load diagnostics.
func Diagnostics(diagnostics []route.Diagnostic) []encode.Diagnostic {
	out := make([]encode.Diagnostic, 0, len(diagnostics))

	for _, d := range diagnostics {
		r := encode.Diagnostic{
			Severity: string(d.Severity),
			File:     d.File,
			Error:    d.Err.Error(),
		}
		if d.Key.Method != "" {
			r.Route = d.Key.String()
		}

		out = append(out, r)
	}

	return out
}
