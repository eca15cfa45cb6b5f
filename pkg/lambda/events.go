package lambda

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

var (
	// ErrUnsupportedEvent is returned for payloads that are not HTTP events
	ErrUnsupportedEvent = errors.New("unsupported lambda event")
	// ErrInvalidBody is returned when a base64 body cannot be decoded
	ErrInvalidBody = errors.New("invalid event body")
)

type eventShape struct {
	Version        string `json:"version"`
	HTTPMethod     string `json:"httpMethod"`
	RequestContext struct {
		HTTP *struct {
			Method string `json:"method"`
		} `json:"http"`
		ELB *struct {
			TargetGroupArn string `json:"targetGroupArn"`
		} `json:"elb"`
	} `json:"requestContext"`
}

// DetectSource inspects a raw payload and reports which event shape it has
func DetectSource(payload []byte) (EventSource, error) {
	var shape eventShape
	if err := json.Unmarshal(payload, &shape); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedEvent, err)
	}

	switch {
	case shape.RequestContext.ELB != nil:
		return SourceALB, nil
	case shape.Version == "2.0" && shape.RequestContext.HTTP != nil:
		return SourceAPIGatewayHTTP, nil
	case shape.HTTPMethod != "":
		return SourceAPIGatewayREST, nil
	default:
		return "", ErrUnsupportedEvent
	}
}

// DecodeRequest translates a raw invocation payload into a Request
func DecodeRequest(payload []byte) (*Request, error) {
	source, err := DetectSource(payload)
	if err != nil {
		return nil, err
	}

	switch source {
	case SourceAPIGatewayHTTP:
		var event events.APIGatewayV2HTTPRequest
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, fmt.Errorf("failed to decode %s event: %w", source, err)
		}
		return FromAPIGatewayV2(event)
	case SourceALB:
		var event events.ALBTargetGroupRequest
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, fmt.Errorf("failed to decode %s event: %w", source, err)
		}
		return FromALB(event)
	default:
		var event events.APIGatewayProxyRequest
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, fmt.Errorf("failed to decode %s event: %w", source, err)
		}
		return FromAPIGatewayProxy(event)
	}
}

// FromAPIGatewayProxy converts a REST API (payload 1.0) event
func FromAPIGatewayProxy(event events.APIGatewayProxyRequest) (*Request, error) {
	body, err := decodeBody(event.Body, event.IsBase64Encoded)
	if err != nil {
		return nil, err
	}

	headers, multi := mergeHeaders(event.Headers, event.MultiValueHeaders)

	// API Gateway hands over decoded query values
	query := url.Values{}
	if len(event.MultiValueQueryStringParameters) > 0 {
		for k, values := range event.MultiValueQueryStringParameters {
			query[k] = append([]string(nil), values...)
		}
	} else {
		for k, v := range event.QueryStringParameters {
			query.Set(k, v)
		}
	}

	return &Request{
		Source:     SourceAPIGatewayREST,
		Method:     event.HTTPMethod,
		Path:       event.Path,
		RawQuery:   query.Encode(),
		Headers:    headers,
		Body:       body,
		SourceIP:   event.RequestContext.Identity.SourceIP,
		MultiValue: multi,
	}, nil
}

// FromAPIGatewayV2 converts an HTTP API or function URL (payload 2.0) event
func FromAPIGatewayV2(event events.APIGatewayV2HTTPRequest) (*Request, error) {
	body, err := decodeBody(event.Body, event.IsBase64Encoded)
	if err != nil {
		return nil, err
	}

	headers := make(http.Header, len(event.Headers)+1)
	for k, v := range event.Headers {
		headers.Set(k, v)
	}
	if len(event.Cookies) > 0 {
		headers.Set("Cookie", strings.Join(event.Cookies, "; "))
	}

	// rawPath keeps the client's percent-encoding, unlike the 1.0 and ALB paths
	path := event.RequestContext.HTTP.Path
	if event.RawPath != "" {
		path = event.RawPath
		if decoded, err := url.PathUnescape(event.RawPath); err == nil {
			path = decoded
		}
	}

	return &Request{
		Source:   SourceAPIGatewayHTTP,
		Method:   event.RequestContext.HTTP.Method,
		Path:     path,
		RawQuery: event.RawQueryString,
		Headers:  headers,
		Body:     body,
		SourceIP: event.RequestContext.HTTP.SourceIP,
	}, nil
}

// FromALB converts an application load balancer event
func FromALB(event events.ALBTargetGroupRequest) (*Request, error) {
	body, err := decodeBody(event.Body, event.IsBase64Encoded)
	if err != nil {
		return nil, err
	}

	headers, multi := mergeHeaders(event.Headers, event.MultiValueHeaders)

	// ALB forwards query values exactly as the client sent them
	var pairs []string
	if len(event.MultiValueQueryStringParameters) > 0 {
		for k, values := range event.MultiValueQueryStringParameters {
			for _, v := range values {
				pairs = append(pairs, k+"="+v)
			}
		}
	} else {
		for k, v := range event.QueryStringParameters {
			pairs = append(pairs, k+"="+v)
		}
	}
	sort.Strings(pairs)

	return &Request{
		Source:     SourceALB,
		Method:     event.HTTPMethod,
		Path:       event.Path,
		RawQuery:   strings.Join(pairs, "&"),
		Headers:    headers,
		Body:       body,
		SourceIP:   firstForwardedFor(headers),
		MultiValue: multi,
	}, nil
}

func decodeBody(body string, isBase64 bool) ([]byte, error) {
	if !isBase64 {
		return []byte(body), nil
	}
	decoded, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return decoded, nil
}

func mergeHeaders(single map[string]string, multi map[string][]string) (http.Header, bool) {
	headers := make(http.Header)
	if len(multi) > 0 {
		for k, values := range multi {
			for _, v := range values {
				headers.Add(k, v)
			}
		}
		return headers, true
	}
	for k, v := range single {
		headers.Set(k, v)
	}
	return headers, false
}

func firstForwardedFor(headers http.Header) string {
	forwarded := headers.Get("X-Forwarded-For")
	if forwarded == "" {
		return ""
	}
	first, _, _ := strings.Cut(forwarded, ",")
	return strings.TrimSpace(first)
}
