package lambda

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/sirupsen/logrus"
)

// Adapter serves invocation events through a regular http.Handler
type Adapter struct {
	handler  http.Handler
	basePath string
}

// Option configures an Adapter
type Option func(*Adapter)

// WithBasePath strips a mount prefix from incoming paths
func WithBasePath(basePath string) Option {
	return func(a *Adapter) {
		a.basePath = strings.TrimRight(basePath, "/")
	}
}

// NewAdapter creates an adapter around handler
func NewAdapter(handler http.Handler, opts ...Option) *Adapter {
	a := &Adapter{handler: handler}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Handle is the invocation entrypoint. The result shape mirrors the event shape.
func (a *Adapter) Handle(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	req, err := DecodeRequest(payload)
	if err != nil {
		logrus.WithError(err).Error("Failed to decode lambda event")
		return nil, err
	}

	resp, err := a.Serve(ctx, req)
	if err != nil {
		logrus.WithError(err).WithField("source", req.Source).Error("Failed to serve lambda event")
		return nil, err
	}

	return EncodeResponse(req, resp), nil
}

// Serve runs a decoded request through the wrapped handler
func (a *Adapter) Serve(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := a.newHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	w := newResponseWriter()
	a.handler.ServeHTTP(w, httpReq)
	return w.response(), nil
}

func (a *Adapter) newHTTPRequest(ctx context.Context, req *Request) (*http.Request, error) {
	path := a.stripBasePath(req.Path)

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, "/", bytes.NewReader(req.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s %s: %w", method, path, err)
	}
	// Event paths arrive decoded; parsing them again would reject a literal '%'
	httpReq.URL = &url.URL{Path: path, RawQuery: req.RawQuery}

	httpReq.Header = req.Headers.Clone()
	if httpReq.Header == nil {
		httpReq.Header = make(http.Header)
	}
	httpReq.ContentLength = int64(len(req.Body))
	httpReq.Host = httpReq.Header.Get("Host")
	httpReq.RequestURI = httpReq.URL.RequestURI()
	if req.SourceIP != "" {
		httpReq.RemoteAddr = req.SourceIP + ":0"
	}

	// Correlate access logs with the invocation
	if lc, ok := lambdacontext.FromContext(ctx); ok && httpReq.Header.Get("X-Request-ID") == "" {
		httpReq.Header.Set("X-Request-ID", lc.AwsRequestID)
	}

	return httpReq, nil
}

func (a *Adapter) stripBasePath(path string) string {
	if path == "" {
		path = "/"
	}
	if a.basePath == "" {
		return path
	}
	if path == a.basePath {
		return "/"
	}
	if strings.HasPrefix(path, a.basePath+"/") {
		return strings.TrimPrefix(path, a.basePath)
	}
	return path
}

// EncodeResponse converts resp into the result type matching req's event shape
func EncodeResponse(req *Request, resp *Response) interface{} {
	body, isBase64 := encodeBody(resp)

	switch req.Source {
	case SourceAPIGatewayHTTP:
		headers := make(map[string]string, len(resp.Headers))
		var cookies []string
		for k, values := range resp.Headers {
			if http.CanonicalHeaderKey(k) == "Set-Cookie" {
				cookies = append(cookies, values...)
				continue
			}
			headers[k] = strings.Join(values, ",")
		}
		return events.APIGatewayV2HTTPResponse{
			StatusCode:      resp.StatusCode,
			Headers:         headers,
			Cookies:         cookies,
			Body:            body,
			IsBase64Encoded: isBase64,
		}
	case SourceALB:
		out := events.ALBTargetGroupResponse{
			StatusCode:        resp.StatusCode,
			StatusDescription: fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
			Body:              body,
			IsBase64Encoded:   isBase64,
		}
		// The target group accepts only the header style it sent
		if req.MultiValue {
			out.MultiValueHeaders = multiValueHeaders(resp.Headers)
		} else {
			out.Headers = singleValueHeaders(resp.Headers)
		}
		return out
	default:
		return events.APIGatewayProxyResponse{
			StatusCode:        resp.StatusCode,
			Headers:           singleValueHeaders(resp.Headers),
			MultiValueHeaders: multiValueHeaders(resp.Headers),
			Body:              body,
			IsBase64Encoded:   isBase64,
		}
	}
}

func singleValueHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, values := range h {
		if len(values) > 0 {
			out[k] = values[0]
		}
	}
	return out
}

func multiValueHeaders(h http.Header) map[string][]string {
	out := make(map[string][]string, len(h))
	for k, values := range h {
		out[k] = append([]string(nil), values...)
	}
	return out
}

func encodeBody(resp *Response) (string, bool) {
	if len(resp.Body) == 0 {
		return "", false
	}
	if isTextual(resp.Headers) {
		return string(resp.Body), false
	}
	return base64.StdEncoding.EncodeToString(resp.Body), true
}

// isTextual reports whether a response body can travel as a plain string
func isTextual(h http.Header) bool {
	if enc := h.Get("Content-Encoding"); enc != "" && enc != "identity" {
		return false
	}

	contentType := h.Get("Content-Type")
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	switch {
	case strings.HasPrefix(mediaType, "text/"):
		return true
	case strings.HasSuffix(mediaType, "+json"), strings.HasSuffix(mediaType, "+xml"):
		return true
	}

	switch mediaType {
	case "application/json", "application/javascript", "application/xml", "application/x-www-form-urlencoded":
		return true
	}
	return false
}
