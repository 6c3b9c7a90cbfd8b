package response

import (
	"errors"
	"io"

	"github.com/nhdewitt/httpcore/internal/headers"
)

type writerState int

const (
	StateWritingStatusLine writerState = iota
	StateWritingHeaders
	StateWritingBody
	StateDone
)

const (
	protocol = "HTTP/1.1"
	crlf     = "\r\n"
)

var ErrWriterState = errors.New("writer state out-of-order")

// Writer emits a response in wire order: status line, header block, body.
type Writer struct {
	writer  io.Writer
	state   writerState
	written int64
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{
		writer: w,
		state:  StateWritingStatusLine,
	}
}

func (w *Writer) write(s string) error {
	n, err := io.WriteString(w.writer, s)
	w.written += int64(n)
	return err
}

func (w *Writer) WriteStatusLine(statusCode StatusCode) error {
	if w.state != StateWritingStatusLine {
		return ErrWriterState
	}
	if err := w.write(protocol + " " + statusCode.Text() + crlf); err != nil {
		return err
	}

	w.state = StateWritingHeaders
	return nil
}

// WriteHeaders writes each field followed by the blank separator line.
// Field names are written as given.
func (w *Writer) WriteHeaders(fields []headers.Field) error {
	if w.state != StateWritingHeaders {
		return ErrWriterState
	}

	for _, f := range fields {
		if err := w.write(f.Key + ": " + f.Value + crlf); err != nil {
			return err
		}
	}
	if err := w.write(crlf); err != nil {
		return err
	}

	w.state = StateWritingBody
	return nil
}

func (w *Writer) WriteBody(p []byte) (int, error) {
	if w.state != StateWritingBody {
		return 0, ErrWriterState
	}

	w.state = StateDone
	n, err := w.writer.Write(p)
	w.written += int64(n)
	return n, err
}

// Written reports the total number of bytes written so far.
func (w *Writer) Written() int64 {
	return w.written
}
