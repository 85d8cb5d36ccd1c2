package handler

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	schemeHTTP  = "http:"
	schemeHTTPS = "https:"
)

// BuildQuery rebuilds the query string of the request in its original order.
// With overridden set the _target parameter is dropped and target, when not empty, is
// appended as ERIGHTS_TARGET. extra is appended verbatim. An empty result has no "?".
func BuildQuery(c *fiber.Ctx, target string, overridden bool, extra string) string {
	var params []string

	c.Request().URI().QueryArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		if overridden && k == TargetParam {
			return
		}

		params = append(params, url.QueryEscape(k)+"="+url.QueryEscape(string(value)))
	})

	if overridden && target != "" {
		params = append(params, ExternalTargetParam+"="+url.QueryEscape(target))
	}

	if extra != "" {
		params = append(params, extra)
	}

	if len(params) == 0 {
		return ""
	}

	return "?" + strings.Join(params, "&")
}

// AbsoluteTarget resolves target against the request url. With forceSecure an http
// target is rewritten to https.
func AbsoluteTarget(c *fiber.Ctx, target string, forceSecure bool) string {
	base, err := url.Parse(c.BaseURL() + c.OriginalURL())
	if err != nil {
		return target
	}

	ref, err := url.Parse(target)
	if err != nil {
		return target
	}

	abs := base.ResolveReference(ref).String()

	if forceSecure && len(abs) >= len(schemeHTTP) && strings.EqualFold(abs[:len(schemeHTTP)], schemeHTTP) {
		abs = schemeHTTPS + abs[len(schemeHTTP):]
	}

	return abs
}

// TargetOr returns target, or def when target is empty.
func TargetOr(target, def string) string {
	if target == "" {
		if def == "" {
			return RootPath
		}

		return def
	}

	return target
}
