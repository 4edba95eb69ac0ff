package server

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber"
	"github.com/gofiber/fiber/middleware"
	"github.com/metamemelord/Mockerino/route"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

type (
	// Server answers requests from a compiled route table. A second app on
	// the admin port exposes the table, load diagnostics and metrics.
	Server struct {
		app           *fiber.App
		admin         *fiber.App
		table         *route.Table
		diagnostics   []route.Diagnostic
		adminBasePath string
		logger        logrus.FieldLogger
		host          string
		port          int
		adminPort     int
		sleep         func(time.Duration)
		open          func(name string) (io.ReadCloser, error)
		registry      *prometheus.Registry
		metrics       *metrics
	}

	config struct {
		host          string
		port          int
		adminPort     int
		adminBasePath string
		logger        logrus.FieldLogger
		diagnostics   []route.Diagnostic
		sleep         func(time.Duration)
		open          func(name string) (io.ReadCloser, error)
		registry      *prometheus.Registry
	}

	// Option is a function that can modify a default config
	Option func(c *config)
)

// ServerHeader is sent on every response.
const ServerHeader = "Mockerino"

// New returns a Server for table, listening on 0.0.0.0:3000 with the admin
// app on port 3001 unless configured otherwise.
func New(table *route.Table, options ...Option) *Server {
	c := &config{
		host:          "0.0.0.0",
		port:          3000,
		adminPort:     3001,
		adminBasePath: "/mockerino",
		logger:        logrus.StandardLogger(),
		sleep:         time.Sleep,
		open:          openFile,
	}

	for _, applyOption := range options {
		applyOption(c)
	}

	if c.registry == nil {
		c.registry = prometheus.NewRegistry()
	}

	settings := &fiber.Settings{
		ServerHeader:          ServerHeader,
		DisableStartupMessage: true,
	}

	s := &Server{
		app:           fiber.New(settings),
		admin:         fiber.New(settings),
		table:         table,
		diagnostics:   c.diagnostics,
		adminBasePath: c.adminBasePath,
		logger:        c.logger,
		host:          c.host,
		port:          c.port,
		adminPort:     c.adminPort,
		sleep:         c.sleep,
		open:          c.open,
		registry:      c.registry,
		metrics:       newMetrics(c.registry),
	}

	s.metrics.routes.Set(float64(table.Len()))

	s.app.Use(s.logRequests)
	s.app.Use(middleware.Recover())
	s.app.Use(s.dispatch)

	s.initAdminEndpoints()

	return s
}

// Start serves the mock app, and the admin app when it has a port. It blocks
// until one of them fails or both are shut down.
func (s *Server) Start() error {
	errc := make(chan error, 2)

	go func() {
		s.logger.WithFields(logrus.Fields{"host": s.host, "port": s.port, "routes": s.table.Len()}).Info("mock")
		errc <- s.app.Listen(fmt.Sprintf("%s:%d", s.host, s.port))
	}()

	if s.adminPort == 0 {
		return <-errc
	}

	go func() {
		s.logger.WithFields(logrus.Fields{"host": s.host, "port": s.adminPort, "base": s.adminBasePath}).Info("admin")
		errc <- s.admin.Listen(fmt.Sprintf("%s:%d", s.host, s.adminPort))
	}()

	return <-errc
}

// Shutdown gracefully shuts down both apps
func (s *Server) Shutdown() error {
	if shutdownErr := s.app.Shutdown(); shutdownErr != nil {
		return fmt.Errorf("failed to shutdown mock app %w", shutdownErr)
	}

	if s.adminPort == 0 {
		return nil
	}

	if shutdownErr := s.admin.Shutdown(); shutdownErr != nil {
		return fmt.Errorf("failed to shutdown admin app %w", shutdownErr)
	}

	return nil
}

// WithLogger overrides the default logger
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithHost sets the host both apps bind to
func WithHost(host string) Option {
	return func(c *config) {
		c.host = host
	}
}

// WithPort sets the mock app's port
func WithPort(port int) Option {
	return func(c *config) {
		c.port = port
	}
}

// WithAdminPort sets the admin app's port, 0 disables it
func WithAdminPort(port int) Option {
	return func(c *config) {
		c.adminPort = port
	}
}

// WithAdminBasePath sets the path prefix of the admin endpoints
func WithAdminBasePath(basePath string) Option {
	return func(c *config) {
		c.adminBasePath = basePath
	}
}

// WithDiagnostics hands the load diagnostics to the admin app
func WithDiagnostics(d []route.Diagnostic) Option {
	return func(c *config) {
		c.diagnostics = d
	}
}

// WithSleep replaces the function used to delay responses
func WithSleep(sleep func(time.Duration)) Option {
	return func(c *config) {
		c.sleep = sleep
	}
}

// WithFileOpener replaces the function used to open body files
func WithFileOpener(open func(name string) (io.ReadCloser, error)) Option {
	return func(c *config) {
		c.open = open
	}
}

// WithRegistry registers the server's metrics on r instead of a private registry
func WithRegistry(r *prometheus.Registry) Option {
	return func(c *config) {
		c.registry = r
	}
}

func openFile(name string) (io.ReadCloser, error) {
	return os.Open(name)
}
