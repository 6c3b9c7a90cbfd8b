package server

import (
	"github.com/nhdewitt/httpcore/internal/request"
)

// Handler serves a single request. It owns req, including the connection,
// and writes the response through req.Send, req.SendJSON or req.Respond.
type Handler interface {
	Handle(req *request.Request) error
}

// HandlerFunc adapts an ordinary function to a Handler.
type HandlerFunc func(req *request.Request) error

func (f HandlerFunc) Handle(req *request.Request) error {
	return f(req)
}
