package routes

import (
	"testing"

	"github.com/narvanalabs/greetd/internal/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable(t *testing.T) {
	table := Default()

	assert.Equal(t, []string{"/", "/health"}, table.Paths())

	resp := table.Dispatch("/")
	assert.Equal(t, wire.StatusOK, resp.Status)
	assert.Equal(t, `{"message": "Hello from Dockerfile!"}`, string(resp.Body))

	resp = table.Dispatch("/health")
	assert.Equal(t, wire.StatusOK, resp.Status)
	assert.Equal(t, `{"status": "healthy"}`, string(resp.Body))
}

func TestDispatch_NoMatch(t *testing.T) {
	table := Default()

	for _, path := range []string{"/missing", "/healthz", "/health/", "//"} {
		resp := table.Dispatch(path)
		assert.Equal(t, wire.StatusNotFound, resp.Status, "path: %s", path)
		assert.Empty(t, resp.Body, "path: %s", path)
	}
}

func TestLookup_ExactMatchOnly(t *testing.T) {
	table := Default()

	_, ok := table.Lookup("/health")
	assert.True(t, ok)

	_, ok = table.Lookup("/Health")
	assert.False(t, ok)
}

func TestLookup_FirstMatchWins(t *testing.T) {
	first := Rule{Path: "/dup", Produce: func() wire.Response {
		return wire.NewStatus(wire.StatusOK)
	}}
	second := Rule{Path: "/dup", Produce: func() wire.Response {
		return wire.NewStatus(wire.StatusInternalServerError)
	}}

	table := New(first, second)

	resp := table.Dispatch("/dup")
	require.Equal(t, wire.StatusOK, resp.Status)
}
