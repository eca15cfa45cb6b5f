package lambda

import (
	"bytes"
	"net/http"
)

// EventSource identifies the shape of an incoming invocation event
type EventSource string

const (
	SourceAPIGatewayREST EventSource = "apigateway-rest"
	SourceAPIGatewayHTTP EventSource = "apigateway-http"
	SourceALB            EventSource = "alb"
)

// Request represents a generic HTTP request decoded from an invocation event
type Request struct {
	Source   EventSource
	Method   string
	Path     string
	RawQuery string
	Headers  http.Header
	Body     []byte
	SourceIP string
	// MultiValue is set when the event used multi-value headers
	MultiValue bool
}

// Response represents a generic HTTP response to encode into an event result
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// responseWriter buffers a handler's output in memory
type responseWriter struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newResponseWriter() *responseWriter {
	return &responseWriter{header: make(http.Header)}
}

func (w *responseWriter) Header() http.Header {
	return w.header
}

func (w *responseWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.body.Write(b)
}

func (w *responseWriter) response() *Response {
	status := w.status
	if status == 0 {
		status = http.StatusOK
	}
	return &Response{
		StatusCode: status,
		Headers:    w.header,
		Body:       w.body.Bytes(),
	}
}
