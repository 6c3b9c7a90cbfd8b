package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"

	"github.com/nhdewitt/httpcore/internal/httperr"
	"github.com/nhdewitt/httpcore/internal/method"
	"github.com/nhdewitt/httpcore/internal/request"
	"github.com/nhdewitt/httpcore/internal/response"
)

var ErrServerClosed = errors.New("server closed")

// Server accepts connections one at a time and serves exactly one request
// on each. A slow client blocks every other client until it finishes.
type Server struct {
	router              *Router
	logger              *slog.Logger
	notFound            *response.Response
	badRequest          *response.Response
	respondOnParseError bool

	mu          sync.Mutex
	listener    net.Listener
	isListening atomic.Bool
	closed      atomic.Bool
}

func New(opts ...Option) *Server {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.router == nil {
		o.router = NewRouter()
	}

	return &Server{
		router:              o.router,
		logger:              o.logger,
		notFound:            o.notFound,
		badRequest:          o.badRequest,
		respondOnParseError: o.respondOnParseError,
	}
}

func (s *Server) Router() *Router {
	return s.router
}

func (s *Server) Get(path string, h Handler) {
	s.router.Get(path, h)
}

func (s *Server) Post(path string, h Handler) {
	s.router.Post(path, h)
}

func (s *Server) AddMethod(m method.Method, path string, h Handler) {
	s.router.AddMethod(m, path, h)
}

func (s *Server) HandleFunc(m method.Method, path string, fn func(req *request.Request) error) {
	s.router.HandleFunc(m, path, fn)
}

// ListenAndServe listens on the TCP address addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return s.Serve(ctx, lis)
}

// Serve runs the accept loop on lis until ctx is cancelled or Close is
// called, in which case it returns nil. Any other accept error is returned.
// Errors while serving a connection are logged and never end the loop.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	s.mu.Lock()
	if s.closed.Load() || s.listener != nil {
		s.mu.Unlock()
		_ = lis.Close()
		return ErrServerClosed
	}
	s.listener = lis
	s.isListening.Store(true)
	s.mu.Unlock()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
			return
		}
		if err := s.Close(); err != nil {
			s.logger.Warn("failed to close listener", slog.Any("error", err))
		}
	}()

	s.logger.Info("Listening", slog.String("addr", lis.Addr().String()))
	for {
		conn, err := lis.Accept()
		if err != nil {
			if !s.isListening.Load() {
				return nil
			}
			_ = s.Close()
			return httperr.NewIOError("accept", err)
		}

		s.ServeConn(conn)
	}
}

// Addr returns the listener address, or nil before Serve is called.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Close stops the accept loop. The connection being served, if any, is
// finished first.
func (s *Server) Close() error {
	s.closed.Store(true)
	if !s.isListening.CompareAndSwap(true, false) {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Close()
	}
	return nil
}

// ServeConn serves the single request on conn and closes it.
func (s *Server) ServeConn(conn io.ReadWriteCloser) {
	logger := s.logger
	if nc, ok := conn.(net.Conn); ok {
		logger = logger.With(slog.String("remote", nc.RemoteAddr().String()))
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logger.Debug("failed to close connection", slog.Any("error", err))
		}
	}()

	if err := s.serve(conn, logger); err != nil {
		logger.Error("failed to serve connection", slog.Any("error", err))
	}
}

func (s *Server) serve(conn io.ReadWriter, logger *slog.Logger) error {
	req, err := request.RequestFromConn(conn)
	if err != nil {
		if !s.shouldRespond(err) {
			return err
		}
		if _, werr := s.badRequest.WriteTo(conn); werr != nil {
			return errors.Join(err, httperr.NewIOError("write response", werr))
		}
		return err
	}

	logger = logger.With(slog.String("method", req.Method().String()), slog.String("path", req.Path()))

	h, ok := s.router.Lookup(req.Method(), req.Path())
	if !ok {
		logger.Debug("No route")
		if _, err := s.notFound.WriteTo(conn); err != nil {
			return httperr.NewIOError("write response", err)
		}
		return nil
	}

	if err := s.dispatch(h, req); err != nil {
		return err
	}
	if !req.Responded() {
		logger.Warn("Handler returned without responding")
	}
	logger.Debug("Served request")
	return nil
}

func (s *Server) dispatch(h Handler, req *request.Request) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &httperr.DispatchError{
				Method: req.Method().String(),
				Path:   req.Path(),
				Err:    fmt.Errorf("panic: %v", p),
			}
		}
	}()

	if herr := h.Handle(req); herr != nil {
		return &httperr.DispatchError{
			Method: req.Method().String(),
			Path:   req.Path(),
			Err:    herr,
		}
	}
	return nil
}

// shouldRespond reports whether a parse failure gets the bad request
// response. Read failures and requests cut short by the peer do not.
func (s *Server) shouldRespond(err error) bool {
	if !s.respondOnParseError {
		return false
	}
	var pe *httperr.ParseError
	if !errors.As(err, &pe) {
		return false
	}
	return !errors.Is(err, io.ErrUnexpectedEOF)
}
