package request

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/nhdewitt/httpcore/internal/httperr"
	"github.com/nhdewitt/httpcore/internal/response"
)

var (
	ErrNoConnection     = errors.New("request has no connection to respond on")
	ErrAlreadyResponded = errors.New("response already written")
)

// Send writes a 200 response with text as the body.
func (r *Request) Send(text string) error {
	return r.Respond(response.NewString(response.StatusOK, text))
}

// SendJSON writes a 200 response with text as an application/json body.
func (r *Request) SendJSON(text string) error {
	resp := response.NewString(response.StatusOK, text)
	resp.AddHeader("Content-Type", "application/json")
	return r.Respond(resp)
}

// EncodeJSON marshals v and sends it with SendJSON.
func (r *Request) EncodeJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return r.SendJSON(string(b))
}

// Respond writes resp to the connection the request was read from. A request
// can be responded to once.
func (r *Request) Respond(resp *response.Response) error {
	if r.conn == nil {
		return ErrNoConnection
	}
	if r.responded {
		return ErrAlreadyResponded
	}
	r.responded = true

	if _, err := resp.WriteTo(r.conn); err != nil {
		return httperr.NewIOError("write response", err)
	}
	return nil
}

// Responded reports whether Respond has been called.
func (r *Request) Responded() bool {
	return r.responded
}
