package response

import "strconv"

type StatusCode int

const (
	StatusSwitchingProtocols  StatusCode = 101
	StatusOK                  StatusCode = 200
	StatusBadRequest          StatusCode = 400
	StatusNotFound            StatusCode = 404
	StatusInternalServerError StatusCode = 500
)

// Text returns the status as it appears after the protocol label on the
// status line, e.g. "200 OK".
func (c StatusCode) Text() string {
	switch c {
	case StatusSwitchingProtocols:
		return "101 Switching Protocols"
	case StatusOK:
		return "200 OK"
	case StatusBadRequest:
		return "400 Bad Request"
	case StatusNotFound:
		return "404 NOT FOUND"
	case StatusInternalServerError:
		return "500 Internal Server Error"
	default:
		return strconv.Itoa(int(c)) + " Unknown"
	}
}
