package main

import (
	"fmt"
	"sync/atomic"

	"github.com/nhdewitt/httpcore/internal/method"
	"github.com/nhdewitt/httpcore/internal/request"
	"github.com/nhdewitt/httpcore/internal/response"
	"github.com/nhdewitt/httpcore/internal/server"
)

type htmlTemplate struct {
	status      string
	description string
	explanation string
}

var pages = map[response.StatusCode]htmlTemplate{
	response.StatusOK: {
		status:      "200 OK",
		description: "Success!",
		explanation: "Your request was an absolute banger.",
	},
	response.StatusBadRequest: {
		status:      "400 Bad Request",
		description: "Bad Request",
		explanation: "Your request honestly kinda sucked.",
	},
	response.StatusInternalServerError: {
		status:      "500 Internal Server Error",
		description: "Internal Server Error",
		explanation: "Okay, you know what? This one is on me.",
	},
}

// page responds with the HTML page for statusCode.
func page(statusCode response.StatusCode) server.HandlerFunc {
	ht := pages[statusCode]
	body := fmt.Sprintf(`
<html>
	<head>
		<title>%s</title>
	</head>
	<body>
		<h1>%s</h1>
		<p>%s</p>
	</body>
</html>
	`, ht.status, ht.description, ht.explanation)

	return func(req *request.Request) error {
		resp := response.NewString(statusCode, body)
		resp.AddHeader("Content-Type", "text/html")
		resp.AddHeader("Connection", "close")
		return req.Respond(resp)
	}
}

// stats counts the requests it has served.
type stats struct {
	hits atomic.Int64
}

func (s *stats) Handle(req *request.Request) error {
	return req.EncodeJSON(map[string]int64{"hits": s.hits.Add(1)})
}

func registerRoutes(srv *server.Server) {
	srv.Get("/", page(response.StatusOK))
	srv.Get("/yourproblem", page(response.StatusBadRequest))
	srv.Get("/myproblem", page(response.StatusInternalServerError))

	srv.Get("/hello", server.HandlerFunc(func(req *request.Request) error {
		return req.Send("hi")
	}))
	srv.Post("/echo", server.HandlerFunc(func(req *request.Request) error {
		return req.Send(string(req.Body))
	}))
	srv.HandleFunc(method.Get, "/headers", func(req *request.Request) error {
		return req.EncodeJSON(req.Headers)
	})
	srv.Get("/stats", &stats{})
}
