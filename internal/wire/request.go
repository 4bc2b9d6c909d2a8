package wire

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	crlf = "\r\n"

	readChunkSize = 512

	// maxLineBytes bounds the request line so a client cannot make the
	// server buffer unbounded data before the first CRLF.
	maxLineBytes = 8 << 10
)

// ErrMalformedRequest reports a request line that is missing, truncated,
// or not of the form "<METHOD> <PATH> HTTP/<version>".
var ErrMalformedRequest = errors.New("malformed request line")

// RequestLine is the first line of an HTTP/1.x request. It is all the
// server ever reads from a connection; headers and body are discarded
// together with the connection.
type RequestLine struct {
	Method  string
	Path    string
	Version string
}

// ReadRequestLine reads from r until the first CRLF and parses the
// request line. Data following the CRLF is left unread.
func ReadRequestLine(r io.Reader) (RequestLine, error) {
	buf := make([]byte, 0, readChunkSize)
	chunk := make([]byte, readChunkSize)

	for {
		if idx := bytes.Index(buf, []byte(crlf)); idx != -1 {
			return parseRequestLine(string(buf[:idx]))
		}
		if len(buf) > maxLineBytes {
			return RequestLine{}, fmt.Errorf("%w: exceeds %d bytes", ErrMalformedRequest, maxLineBytes)
		}

		n, err := r.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			continue
		}
		if errors.Is(err, io.EOF) {
			return RequestLine{}, fmt.Errorf("%w: early EOF", ErrMalformedRequest)
		}
		if err != nil {
			return RequestLine{}, err
		}
	}
}

func parseRequestLine(line string) (RequestLine, error) {
	parts := strings.Fields(line)
	if len(parts) != 3 {
		return RequestLine{}, fmt.Errorf("%w: %q", ErrMalformedRequest, line)
	}

	method := parts[0]
	for _, c := range method {
		if c < 'A' || c > 'Z' {
			return RequestLine{}, fmt.Errorf("%w: invalid method %q", ErrMalformedRequest, method)
		}
	}

	path := parts[1]
	if !strings.HasPrefix(path, "/") {
		return RequestLine{}, fmt.Errorf("%w: invalid path %q", ErrMalformedRequest, path)
	}

	proto, version, ok := strings.Cut(parts[2], "/")
	if !ok || proto != "HTTP" || version == "" {
		return RequestLine{}, fmt.Errorf("%w: invalid version %q", ErrMalformedRequest, parts[2])
	}

	return RequestLine{
		Method:  method,
		Path:    path,
		Version: version,
	}, nil
}
