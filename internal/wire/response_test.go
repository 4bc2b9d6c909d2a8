package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseWriteTo_JSON(t *testing.T) {
	body := []byte(`{"status": "healthy"}`)
	resp := NewJSON(StatusOK, body)

	var buf bytes.Buffer
	n, err := resp.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	want := "HTTP/1.1 200 OK\r\n" +
		"Content-Type: application/json\r\n" +
		"Content-Length: 21\r\n" +
		"Connection: close\r\n" +
		"\r\n" +
		`{"status": "healthy"}`
	assert.Equal(t, want, buf.String())
}

func TestResponseWriteTo_Bodiless(t *testing.T) {
	resp := NewStatus(StatusNotFound)

	var buf bytes.Buffer
	_, err := resp.WriteTo(&buf)
	require.NoError(t, err)

	want := "HTTP/1.1 404 Not Found\r\n" +
		"Content-Length: 0\r\n" +
		"Connection: close\r\n" +
		"\r\n"
	assert.Equal(t, want, buf.String())
}

func TestResponseWriteTo_Deterministic(t *testing.T) {
	resp := NewJSON(StatusOK, []byte(`{"message": "Hello from Dockerfile!"}`))

	var a, b bytes.Buffer
	_, err := resp.WriteTo(&a)
	require.NoError(t, err)
	_, err = resp.WriteTo(&b)
	require.NoError(t, err)

	assert.Equal(t, a.Bytes(), b.Bytes())
}
