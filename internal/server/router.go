package server

import (
	"sort"
	"sync"

	"github.com/nhdewitt/httpcore/internal/method"
	"github.com/nhdewitt/httpcore/internal/request"
)

// Route identifies a registered handler.
type Route struct {
	Method method.Method
	Path   string
}

// Router maps an exact (method, path) pair to a handler. Paths are compared
// byte for byte; there is no prefix, pattern or trailing-slash matching.
type Router struct {
	mu     sync.RWMutex
	routes map[Route]Handler
}

func NewRouter() *Router {
	return &Router{
		routes: make(map[Route]Handler),
	}
}

// AddMethod registers h for (m, path), replacing any earlier handler.
func (r *Router) AddMethod(m method.Method, path string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[Route{Method: m, Path: path}] = h
}

func (r *Router) Get(path string, h Handler) {
	r.AddMethod(method.Get, path, h)
}

func (r *Router) Post(path string, h Handler) {
	r.AddMethod(method.Post, path, h)
}

func (r *Router) HandleFunc(m method.Method, path string, fn func(req *request.Request) error) {
	r.AddMethod(m, path, HandlerFunc(fn))
}

func (r *Router) Lookup(m method.Method, path string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.routes[Route{Method: m, Path: path}]
	return h, ok
}

// Routes lists the registered routes sorted by path, then method.
func (r *Router) Routes() []Route {
	r.mu.RLock()
	out := make([]Route, 0, len(r.routes))
	for rt := range r.routes {
		out = append(out, rt)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}
