package wire

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

type Status int

const (
	StatusOK                  Status = 200
	StatusBadRequest          Status = 400
	StatusNotFound            Status = 404
	StatusInternalServerError Status = 500
)

func (s Status) Text() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusBadRequest:
		return "Bad Request"
	case StatusNotFound:
		return "Not Found"
	case StatusInternalServerError:
		return "Internal Server Error"
	default:
		return ""
	}
}

// Header is a single response header. Headers are kept as an ordered
// slice so responses serialize deterministically.
type Header struct {
	Name  string
	Value string
}

// Response is the status/header/body triple written back to a client.
// All responses go through WriteTo; handlers never format bytes
// themselves.
type Response struct {
	Status  Status
	Headers []Header
	Body    []byte
}

// NewJSON builds a response carrying a JSON body. The body bytes are
// written verbatim, preserving the exact serialization of the caller.
func NewJSON(status Status, body []byte) Response {
	return Response{
		Status: status,
		Headers: []Header{
			{"Content-Type", "application/json"},
			{"Content-Length", strconv.Itoa(len(body))},
			{"Connection", "close"},
		},
		Body: body,
	}
}

// NewStatus builds a bodiless response.
func NewStatus(status Status) Response {
	return Response{
		Status: status,
		Headers: []Header{
			{"Content-Length", "0"},
			{"Connection", "close"},
		},
	}
}

// WriteTo serializes the response as a single write: status line,
// headers in order, blank line, body.
func (r Response) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "HTTP/1.1 %d %s%s", int(r.Status), r.Status.Text(), crlf)
	for _, h := range r.Headers {
		fmt.Fprintf(&buf, "%s: %s%s", h.Name, h.Value, crlf)
	}
	buf.WriteString(crlf)
	buf.Write(r.Body)

	return buf.WriteTo(w)
}
