package request

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/nhdewitt/httpcore/internal/headers"
	"github.com/nhdewitt/httpcore/internal/httperr"
	"github.com/nhdewitt/httpcore/internal/method"
)

type requestState int

const bufferSize = 8

const (
	stateRequestLine requestState = iota
	stateHeaders
	stateBody
	stateDone
)

type Request struct {
	RequestLine RequestLine
	Headers     headers.Headers
	Body        []byte

	state      requestState
	bodyLength int

	conn      io.Writer
	responded bool
}

type RequestLine struct {
	HttpVersion   string
	RequestTarget string
	Method        method.Method
}

// RequestFromReader parses a single request from reader. The returned
// request has no connection and cannot be responded to.
func RequestFromReader(reader io.Reader) (*Request, error) {
	buf := make([]byte, bufferSize)
	readToIndex := 0

	r := &Request{
		Headers: headers.NewHeaders(),
		state:   stateRequestLine,
	}

	for r.state != stateDone {
		if r.state == stateBody {
			if err := r.readBody(reader); err != nil {
				return nil, err
			}
			break
		}

		if readToIndex == len(buf) {
			tmpBuf := make([]byte, len(buf)*2)
			copy(tmpBuf, buf[:readToIndex])
			buf = tmpBuf
		}

		n, err := reader.Read(buf[readToIndex:])
		if n > 0 {
			readToIndex += n

			bytesParsed, perr := r.parse(buf[:readToIndex])
			if perr != nil {
				return nil, perr
			}

			copy(buf, buf[bytesParsed:readToIndex])
			readToIndex -= bytesParsed
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				if perr := r.finish(buf[:readToIndex]); perr != nil {
					return nil, perr
				}
				break
			}
			return nil, httperr.NewIOError("read request", err)
		}
	}

	return r, nil
}

// RequestFromConn parses a request from conn and keeps conn for writing the
// response.
func RequestFromConn(conn io.ReadWriter) (*Request, error) {
	r, err := RequestFromReader(conn)
	if err != nil {
		return nil, err
	}
	r.conn = conn
	return r, nil
}

// parse consumes as much of data as the current state allows.
func (r *Request) parse(data []byte) (int, error) {
	total := 0
	for r.state != stateDone {
		n, err := r.parseSingle(data[total:])
		if err != nil {
			return 0, err
		}
		if n == 0 {
			break
		}
		total += n
	}
	return total, nil
}

func (r *Request) parseSingle(data []byte) (int, error) {
	switch r.state {
	case stateRequestLine:
		idx := bytes.IndexByte(data, '\n')
		if idx == -1 {
			return 0, nil
		}

		rl, err := requestLineFromString(string(bytes.TrimSuffix(data[:idx], []byte("\r"))))
		if err != nil {
			return 0, err
		}

		r.RequestLine = *rl
		r.state = stateHeaders
		return idx + 1, nil
	case stateHeaders:
		n, done, err := r.Headers.Parse(data)
		if err != nil {
			return 0, err
		}
		if done {
			if err := r.startBody(); err != nil {
				return 0, err
			}
		}
		return n, nil
	case stateBody:
		remaining := r.bodyLength - len(r.Body)
		take := min(remaining, len(data))
		r.Body = append(r.Body, data[:take]...)
		if len(r.Body) == r.bodyLength {
			r.state = stateDone
		}
		return take, nil
	case stateDone:
		return 0, errors.New("error: trying to read data in a done state")
	default:
		return 0, errors.New("error: unknown state")
	}
}

// readBody reads the rest of the body straight from reader. It never reads
// past the declared length.
func (r *Request) readBody(reader io.Reader) error {
	body := bytes.NewBuffer(r.Body)
	_, err := io.CopyN(body, reader, int64(r.bodyLength-len(r.Body)))
	r.Body = body.Bytes()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return r.truncated()
		}
		return httperr.NewIOError("read body", err)
	}

	r.state = stateDone
	return nil
}

func (r *Request) truncated() error {
	return httperr.NewParseError(httperr.TruncatedBody,
		strconv.Itoa(len(r.Body))+" of "+strconv.Itoa(r.bodyLength)+" bytes", io.ErrUnexpectedEOF)
}

// finish handles end of stream with leftover holding any unterminated line.
func (r *Request) finish(leftover []byte) error {
	switch r.state {
	case stateRequestLine:
		detail := string(leftover)
		if detail == "" {
			detail = "empty request"
		}
		return httperr.NewParseError(httperr.MalformedRequestLine, detail, io.ErrUnexpectedEOF)
	case stateHeaders:
		// End of stream also ends the header block.
		if line := bytes.TrimSuffix(leftover, []byte("\r")); len(line) > 0 {
			if err := r.Headers.ParseLine(line); err != nil {
				return err
			}
		}
		if err := r.startBody(); err != nil {
			return err
		}
		if r.state == stateDone {
			return nil
		}
		fallthrough
	case stateBody:
		return r.truncated()
	}
	return nil
}

func (r *Request) startBody() error {
	cl, ok := r.Headers.Lookup("content-length")
	if !ok {
		if te, ok := r.Headers.Lookup("transfer-encoding"); ok {
			return httperr.NewParseError(httperr.UnsupportedTransferEncoding, te, nil)
		}
		r.state = stateDone
		return nil
	}

	n, err := strconv.ParseUint(cl, 10, strconv.IntSize-1)
	if err != nil {
		return httperr.NewParseError(httperr.InvalidContentLength, cl, err)
	}

	r.bodyLength = int(n)
	r.Body = make([]byte, 0, min(r.bodyLength, 64*1024))
	if r.bodyLength == 0 {
		r.state = stateDone
		return nil
	}
	r.state = stateBody
	return nil
}

func requestLineFromString(s string) (*RequestLine, error) {
	parts := strings.Split(s, " ")
	if len(parts) != 3 {
		return nil, httperr.NewParseError(httperr.MalformedRequestLine, s, nil)
	}

	m, err := method.Parse(parts[0])
	if err != nil {
		return nil, err
	}

	target := parts[1]
	if target == "" {
		return nil, httperr.NewParseError(httperr.MalformedRequestLine, s, nil)
	}

	protocol, version, ok := strings.Cut(parts[2], "/")
	if !ok || protocol != "HTTP" || (version != "1.1" && version != "1.0") {
		return nil, httperr.NewParseError(httperr.MalformedRequestLine, s, nil)
	}

	return &RequestLine{
		Method:        m,
		RequestTarget: target,
		HttpVersion:   version,
	}, nil
}

func (r *Request) Method() method.Method {
	return r.RequestLine.Method
}

// Path returns the request target exactly as sent.
func (r *Request) Path() string {
	return r.RequestLine.RequestTarget
}

func (r *Request) Header(key string) string {
	return r.Headers.Get(key)
}
