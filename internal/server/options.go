package server

import (
	"log/slog"

	"github.com/nhdewitt/httpcore/internal/response"
)

const (
	DefaultNotFoundBody   = "404"
	DefaultBadRequestBody = "400"
)

// Option configures a Server.
type Option func(*options)

type options struct {
	logger              *slog.Logger
	router              *Router
	notFound            *response.Response
	badRequest          *response.Response
	respondOnParseError bool
}

func defaultOptions() *options {
	return &options{
		logger:              slog.Default(),
		notFound:            response.NewString(response.StatusNotFound, DefaultNotFoundBody),
		badRequest:          response.NewString(response.StatusBadRequest, DefaultBadRequestBody),
		respondOnParseError: true,
	}
}

// WithLogger sets the logger used for per-connection errors.
// The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithRouter serves routes from r instead of a fresh router.
func WithRouter(r *Router) Option {
	return func(o *options) {
		o.router = r
	}
}

// WithNotFound sets the response written when no route matches.
// The default is a 404 with body "404".
func WithNotFound(resp *response.Response) Option {
	return func(o *options) {
		o.notFound = resp
	}
}

// WithBadRequest sets the response written for requests that fail to parse.
// The default is a 400 with body "400".
func WithBadRequest(resp *response.Response) Option {
	return func(o *options) {
		o.badRequest = resp
	}
}

// WithRespondOnParseError controls whether malformed requests get the bad
// request response. When false the connection is closed without a response.
// Requests cut short by the peer never get one.
func WithRespondOnParseError(respond bool) Option {
	return func(o *options) {
		o.respondOnParseError = respond
	}
}
