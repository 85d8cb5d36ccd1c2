// Package web runs the gateway's fiber service.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/authgw/authgw/internal/config"
	fiberlog "github.com/authgw/authgw/internal/logger/adapter/fiber"
	"github.com/authgw/authgw/internal/web/handler"
	"github.com/authgw/authgw/internal/web/handler/home"
	"github.com/authgw/authgw/internal/web/handler/login"
	"github.com/authgw/authgw/internal/web/handler/logout"
	authmiddleware "github.com/authgw/authgw/internal/web/middleware/auth"
)

const defaultCheckAliveURI = "/checkalive"

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for SIGINT or SIGTERM and stops the http server.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.Shutdown()
}

// Shutdown fails the health check for ShutDownTime seconds, then stops the http server.
func (s *Service) Shutdown() {
	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// IsAlive reports whether the health check passes.
func (s *Service) IsAlive() bool {
	return s.alive.Load()
}

// New creates the web service. The authenticator may be nil when only the external login
// service or the mock login is used.
func New(cfg *config.Config, authenticator handler.Authenticator) (*Service, error) {
	if cfg == nil {
		panic("config cannot be nil")
	}

	httpFS := http.FS(templateEmbedFS{embeddedTemplates})
	templateEngine := html.NewFileSystem(httpFS, ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize:        8192,
			AppName:               cfg.Title,
			CaseSensitive:         true,
			Prefork:               false,
			Immutable:             true,
			Views:                 templateEngine,
			ProxyHeader:           cfg.Webserver.ProxyHeader,
			DisableStartupMessage: !cfg.DevMode,
		},
	)

	service := &Service{
		cfg: cfg,
		App: app,
		// nothing to drain without a grace period
		fastShutDown: cfg.Webserver.ShutDownTime <= 0,
	}
	service.alive.Store(true)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New())
	}

	app.Use(fiberlog.New(fiberlog.Config{
		Log:           cfg.Log,
		CheckAliveURI: cfg.Webserver.CheckAliveURI,
	}))

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
			},
		),
	)

	checkAliveURI := cfg.Webserver.CheckAliveURI
	if checkAliveURI == "" {
		checkAliveURI = defaultCheckAliveURI
	}

	app.Get(checkAliveURI, service.checkAlive)
	app.Get(authmiddleware.MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	app.Use(authmiddleware.New(cfg))

	// init handlers
	if err := login.Handler.Init(app, cfg, authenticator); err != nil {
		return nil, err
	}

	if err := logout.Handler.Init(app, cfg); err != nil {
		return nil, err
	}

	if err := home.Handler.Init(app, cfg); err != nil {
		return nil, err
	}

	return service, nil
}

func (s *Service) checkAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}
