package dispatch_test

import (
	"bufio"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/narvanalabs/greetd/internal/dispatch"
	"github.com/narvanalabs/greetd/internal/routes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// roundTrip feeds raw request bytes to a dispatcher over a pipe and
// returns the parsed response.
func roundTrip(t *testing.T, d *dispatch.Dispatcher, raw string) (*http.Response, []byte) {
	t.Helper()

	client, server := net.Pipe()
	defer client.Close()

	go d.Handle(server)

	_, err := client.Write([]byte(raw))
	require.NoError(t, err)

	resp, err := http.ReadResponse(bufio.NewReader(client), nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, body
}

func newDispatcher() *dispatch.Dispatcher {
	return dispatch.New(routes.Default(), dispatch.Config{
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	}, zap.NewNop())
}

func TestHandle_Root(t *testing.T) {
	resp, body := roundTrip(t, newDispatcher(), "GET / HTTP/1.1\r\nHost: x\r\n\r\n")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"message": "Hello from Dockerfile!"}`, string(body))
}

func TestHandle_Health(t *testing.T) {
	resp, body := roundTrip(t, newDispatcher(), "GET /health HTTP/1.1\r\n\r\n")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status": "healthy"}`, string(body))
}

func TestHandle_NotFound(t *testing.T) {
	resp, body := roundTrip(t, newDispatcher(), "GET /missing HTTP/1.1\r\n\r\n")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Empty(t, body)
}

func TestHandle_MethodIgnored(t *testing.T) {
	// routing is by path alone, so POST / behaves exactly like GET /
	resp, body := roundTrip(t, newDispatcher(), "POST / HTTP/1.1\r\nContent-Length: 2\r\n\r\nhi")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message": "Hello from Dockerfile!"}`, string(body))
}

func TestHandle_Malformed(t *testing.T) {
	resp, body := roundTrip(t, newDispatcher(), "not a request line\r\n")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, body)
}

func TestHandle_ClosesConnection(t *testing.T) {
	d := newDispatcher()

	client, server := net.Pipe()
	defer client.Close()

	go d.Handle(server)

	_, err := client.Write([]byte("GET /health HTTP/1.1\r\n\r\n"))
	require.NoError(t, err)

	// after the response the server side must be closed, so reading
	// everything terminates with EOF
	data, err := io.ReadAll(client)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "HTTP/1.1 200 OK\r\n"))
}

func TestHandle_WriteFailureContained(t *testing.T) {
	d := newDispatcher()

	client, server := net.Pipe()

	// deliver a valid request, then drop the client before the
	// response can be written
	go func() {
		client.Write([]byte("GET / HTTP/1.1\r\n\r\n"))
		client.Close()
	}()

	// Handle must absorb the failed write and return instead of
	// blocking or panicking
	d.Handle(server)

	// the dispatcher is still able to serve fresh connections
	resp, body := roundTrip(t, d, "GET /health HTTP/1.1\r\n\r\n")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status": "healthy"}`, string(body))
}

func TestHandle_Idempotent(t *testing.T) {
	d := newDispatcher()

	var responses []string
	for i := 0; i < 3; i++ {
		client, server := net.Pipe()

		go d.Handle(server)

		_, err := client.Write([]byte("GET / HTTP/1.1\r\n\r\n"))
		require.NoError(t, err)

		data, err := io.ReadAll(client)
		require.NoError(t, err)
		client.Close()

		responses = append(responses, string(data))
	}

	assert.Equal(t, responses[0], responses[1])
	assert.Equal(t, responses[1], responses[2])
}
