// Package fiber provides a zerolog access log middleware for fiber.
package fiber

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/authgw/authgw/internal/logger"
)

// Config of the access log middleware.
type Config struct {
	// Next skips the middleware when it returns true.
	Next func(c *fiber.Ctx) bool

	// Log decides the outputs: the access file and, with AccessLogToConsole, stdout.
	Log logger.Log

	// CheckAliveURI is not logged when Log.SkipCheckAlive is set.
	CheckAliveURI string

	// Output replaces all configured outputs when set.
	Output io.Writer
}

// New creates the access log middleware.
// Handler errors are passed to the app's error handler before the line is written,
// so the logged status is the one the client receives.
func New(cfg Config) fiber.Handler {
	accessLog := zerolog.New(output(cfg)).With().Timestamp().Logger().Level(zerolog.NoLevel)

	return func(ctx *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(ctx) {
			return ctx.Next()
		}

		start := time.Now()

		chainErr := ctx.Next()
		if chainErr != nil {
			if errHandler := ctx.App().ErrorHandler(ctx, chainErr); errHandler != nil {
				_ = ctx.SendStatus(fiber.StatusInternalServerError) //nolint:errcheck
			}
		}

		elapsed := time.Since(start).Seconds()
		ctx.Response().Header.Set("X-Performance", strconv.FormatFloat(elapsed, 'f', 6, 64))

		if cfg.Log.SkipCheckAlive && cfg.CheckAliveURI != "" && ctx.Path() == cfg.CheckAliveURI {
			return nil
		}

		// ctx.Path is normalized by fasthttp; the raw request URI keeps duplicate slashes.
		uri := string(ctx.Request().RequestURI())

		line := accessLog.Log().
			Str("IP", ctx.IP()).
			Int("status", ctx.Response().StatusCode()).
			Float64("X-Performance", elapsed).
			Str("URI", uri).
			Str("method", ctx.Method()).
			Str("host", ctx.Hostname()).
			Str(fiber.HeaderXForwardedFor, ctx.Get(fiber.HeaderXForwardedFor)).
			Str(fiber.HeaderUserAgent, ctx.Get(fiber.HeaderUserAgent)).
			Str(fiber.HeaderReferer, ctx.Get(fiber.HeaderReferer))

		if chainErr != nil {
			line.Err(chainErr)
		}

		line.Send()

		return nil
	}
}

func output(cfg Config) io.Writer {
	if cfg.Output != nil {
		return cfg.Output
	}

	var writers []io.Writer

	if cfg.Log.File.Enabled {
		if err := os.MkdirAll(cfg.Log.File.Path, 0o750); err != nil { //nolint:mnd
			log.Error().Err(err).Str("path", cfg.Log.File.Path).Msg("can't create access log directory")
		} else {
			writers = append(writers, logger.RollingFile(cfg.Log.File.Path, cfg.Log.File.Access))
		}
	}

	if cfg.Log.Console.Enabled && cfg.Log.AccessLogToConsole {
		if cfg.Log.Console.Pretty {
			writers = append(writers, zerolog.ConsoleWriter{
				Out:          os.Stdout,
				TimeFormat:   zerolog.TimeFieldFormat,
				PartsExclude: []string{zerolog.LevelFieldName},
			})
		} else {
			writers = append(writers, os.Stdout)
		}
	}

	return zerolog.MultiLevelWriter(writers...)
}
