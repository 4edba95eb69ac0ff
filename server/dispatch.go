package server

import (
	"io"
	"net/http"

	"github.com/gofiber/fiber"
	"github.com/metamemelord/Mockerino/route"
	"github.com/sirupsen/logrus"
)

// routeLocal holds the key of the matched entry, for logging and metrics.
const routeLocal = "mockerino.route"

// dispatch answers requests that match an entry exactly and leaves the rest
// to fiber's not found handling.
func (s *Server) dispatch(c *fiber.Ctx) {
	e, ok := s.table.Resolve(c.Method(), c.Path())
	if !ok {
		c.Next()
		return
	}

	c.Locals(routeLocal, e.Key.String())
	s.respond(c, e)
}

// respond writes the response of e after its delay. Body files are opened per
// request and streamed; a file that cannot be opened fails this request only.
func (s *Server) respond(c *fiber.Ctx, e *route.Entry) {
	if e.Sleep > 0 {
		s.logger.WithFields(logrus.Fields{"route": e.Key.String(), "sleep": e.Sleep}).Debug("sleeping")
		s.sleep(e.Sleep)
	}

	var body io.ReadCloser
	if e.Source == route.BodyFile {
		f, err := s.open(e.File)
		if err != nil {
			s.logger.
				WithError(err).
				WithFields(logrus.Fields{"route": e.Key.String(), "file": e.File}).
				Error("failed to open body file")
			c.SendStatus(http.StatusInternalServerError)
			return
		}
		body = f
	}

	for _, h := range e.Headers {
		c.Set(h.Name, h.Value)
	}
	c.Status(e.Status)

	if body != nil {
		// fasthttp closes the stream once it has been written.
		c.Fasthttp.Response.SetBodyStream(body, -1)
		return
	}

	c.SendString(e.RawBody)
}
