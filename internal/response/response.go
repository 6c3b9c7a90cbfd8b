package response

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/nhdewitt/httpcore/internal/headers"
)

const contentLength = "Content-Length"

// Response is a status, a body and caller-supplied headers. Content-Length
// is always computed from the body when the response is written.
type Response struct {
	Status  StatusCode
	Body    []byte
	headers headers.Fields
}

func New(status StatusCode, body []byte) *Response {
	return &Response{
		Status: status,
		Body:   body,
	}
}

func NewString(status StatusCode, body string) *Response {
	return New(status, []byte(body))
}

// AddHeader sets key unless it was already set; the first value wins.
// Content-Length cannot be set this way.
func (r *Response) AddHeader(key, value string) {
	if strings.EqualFold(key, contentLength) {
		return
	}
	r.headers.Add(key, value)
}

// Header returns the value stored for key.
func (r *Response) Header(key string) (string, bool) {
	if strings.EqualFold(key, contentLength) {
		return strconv.Itoa(len(r.Body)), true
	}
	return r.headers.Get(key)
}

// Fields returns the full header block in emission order, Content-Length
// first.
func (r *Response) Fields() []headers.Field {
	out := make([]headers.Field, 0, r.headers.Len()+1)
	out = append(out, headers.Field{Key: contentLength, Value: strconv.Itoa(len(r.Body))})
	return append(out, r.headers.All()...)
}

// WriteTo writes the response in wire format.
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	rw := NewWriter(w)
	if err := rw.WriteStatusLine(r.Status); err != nil {
		return rw.Written(), err
	}
	if err := rw.WriteHeaders(r.Fields()); err != nil {
		return rw.Written(), err
	}
	if _, err := rw.WriteBody(r.Body); err != nil {
		return rw.Written(), err
	}
	return rw.Written(), nil
}

// Serialize returns the wire bytes of the response.
func (r *Response) Serialize() []byte {
	var buf bytes.Buffer
	// Writes to a bytes.Buffer do not fail.
	_, _ = r.WriteTo(&buf)
	return buf.Bytes()
}
