package server

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader carries the id a request is logged with. A client supplied
// value is kept.
const RequestIDHeader = "X-Request-Id"

func (s *Server) logRequests(c *fiber.Ctx) {
	start := time.Now()

	id := c.Get(RequestIDHeader)
	if id == "" {
		id = uuid.New().String()
	}
	c.Set(RequestIDHeader, id)

	c.Next()

	matched, _ := c.Locals(routeLocal).(string)
	if matched == "" {
		matched = unmatched
	}

	status := c.Fasthttp.Response.StatusCode()
	elapsed := time.Since(start)

	s.metrics.requests.WithLabelValues(matched, strconv.Itoa(status)).Inc()
	s.metrics.latency.WithLabelValues(matched).Observe(elapsed.Seconds())

	s.logger.WithFields(logrus.Fields{
		"request_id": id,
		"method":     c.Method(),
		"path":       c.Path(),
		"route":      matched,
		"status":     status,
		"latency":    elapsed,
	}).Debug("served")
}
