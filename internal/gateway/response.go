// Package gateway is the thin external collaborator in front of the
// graph: a (method, path, body) -> Response dispatcher speaking raw
// HTTP/1.1, following original_source/protocol/src/response.rs's status
// line/headers/Content-Length/body framing and
// pkg/bolt/server.go's goroutine-per-connection accept loop.
package gateway

import (
	"fmt"
	"io"
)

// Response is a single HTTP/1.1 response awaiting transmission.
// Constructed with NewResponse so Headers is never nil and the default
// Content-Type matches the teacher-derived convention of defaulting to
// plain text until a handler overrides it.
type Response struct {
	Status  int
	Headers map[string]string
	Body    []byte
}

// NewResponse returns a 200 OK response with an empty body and a
// text/plain Content-Type header, mirroring
// original_source/protocol/src/response.rs's Response::new.
func NewResponse() *Response {
	return &Response{
		Status:  200,
		Headers: map[string]string{"Content-Type": "text/plain"},
		Body:    nil,
	}
}

var statusText = map[int]string{
	200: "OK",
	404: "Not Found",
	500: "Internal Server Error",
}

// Send writes the response to w as a complete HTTP/1.1 message: status
// line, headers, Content-Length, a blank line, then the body. A 404 or
// 500 status overwrites Body with a fixed message first, exactly as
// response.rs's send does.
func (r *Response) Send(w io.Writer) error {
	message, ok := statusText[r.Status]
	if !ok {
		message = "Unknown"
	}
	switch r.Status {
	case 404:
		r.Body = []byte("404 - Route Not Found\n")
	case 500:
		r.Body = []byte("500 - Internal Server Error\n")
	}

	var out []byte
	out = append(out, fmt.Sprintf("HTTP/1.1 %d %s\r\n", r.Status, message)...)
	for header, value := range r.Headers {
		out = append(out, fmt.Sprintf("%s: %s\r\n", header, value)...)
	}
	out = append(out, fmt.Sprintf("Content-Length: %d\r\n", len(r.Body))...)
	out = append(out, "\r\n"...)
	out = append(out, r.Body...)

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("gateway: send response: %w", err)
	}
	return nil
}
