package gateway

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseSendOK(t *testing.T) {
	resp := NewResponse()
	resp.Body = []byte("hello")

	var buf bytes.Buffer
	require.NoError(t, resp.Send(&buf))

	out := buf.String()
	assert.Contains(t, out, "HTTP/1.1 200 OK\r\n")
	assert.Contains(t, out, "Content-Type: text/plain\r\n")
	assert.Contains(t, out, "Content-Length: 5\r\n")
	assert.Contains(t, out, "\r\n\r\nhello")
}

func TestResponseSendNotFoundOverwritesBody(t *testing.T) {
	resp := NewResponse()
	resp.Status = 404
	resp.Body = []byte("this is discarded")

	var buf bytes.Buffer
	require.NoError(t, resp.Send(&buf))

	out := buf.String()
	assert.Contains(t, out, "HTTP/1.1 404 Not Found\r\n")
	assert.Contains(t, out, "404 - Route Not Found\n")
	assert.NotContains(t, out, "this is discarded")
}

func TestResponseSendServerErrorOverwritesBody(t *testing.T) {
	resp := NewResponse()
	resp.Status = 500

	var buf bytes.Buffer
	require.NoError(t, resp.Send(&buf))

	out := buf.String()
	assert.Contains(t, out, "HTTP/1.1 500 Internal Server Error\r\n")
	assert.Contains(t, out, "500 - Internal Server Error\n")
}
