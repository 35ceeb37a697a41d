// Package lambdaproxy runs an http.Handler behind API Gateway proxy integration.
package lambdaproxy

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog/log"
)

type RequestCreator func(ctx context.Context, method, url string, body io.Reader) (*http.Request, error)

// Proxy converts API Gateway events into requests against the wrapped handler.
type Proxy struct {
	handler        http.Handler
	requestCreator RequestCreator
}

func defaultRequestCreator(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	return http.NewRequestWithContext(ctx, method, url, body)
}

func New(handler http.Handler, requestCreator RequestCreator) *Proxy {
	if requestCreator == nil {
		requestCreator = defaultRequestCreator
	}
	return &Proxy{handler: handler, requestCreator: requestCreator}
}

func (p *Proxy) HandleRequest(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	method := event.HTTPMethod
	if method == "" {
		method = http.MethodGet
	}

	body, err := eventBody(event)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to decode request body")
		return textResponse(http.StatusBadRequest, `{"responseType":"error","error":"Invalid request body"}`), nil
	}

	req, err := p.requestCreator(ctx, method, eventURL(event), bytes.NewReader(body))
	if err != nil {
		log.Error().Err(err).Msg("Failed to create request")
		return textResponse(http.StatusInternalServerError, `{"responseType":"error","error":"Failed to create request"}`), err
	}

	for key, values := range event.MultiValueHeaders {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	for key, value := range event.Headers {
		if req.Header.Get(key) == "" {
			req.Header.Set(key, value)
		}
	}
	if event.RequestContext.Identity.SourceIP != "" {
		req.RemoteAddr = event.RequestContext.Identity.SourceIP
	}

	w := &responseWriter{
		headers: make(http.Header),
		body:    &bytes.Buffer{},
		code:    http.StatusOK,
	}
	p.handler.ServeHTTP(w, req)

	headers := make(map[string]string, len(w.headers))
	for key := range w.headers {
		headers[key] = w.headers.Get(key)
	}
	return events.APIGatewayProxyResponse{
		StatusCode:        w.code,
		Headers:           headers,
		MultiValueHeaders: w.headers,
		Body:              w.body.String(),
	}, nil
}

func eventBody(event events.APIGatewayProxyRequest) ([]byte, error) {
	if !event.IsBase64Encoded {
		return []byte(event.Body), nil
	}
	decoded, err := base64.StdEncoding.DecodeString(event.Body)
	if err != nil {
		return nil, fmt.Errorf("decoding base64 body: %w", err)
	}
	return decoded, nil
}

// eventURL rebuilds the request URL. Multi-value parameters win over single-value ones,
// which API Gateway also sends.
func eventURL(event events.APIGatewayProxyRequest) string {
	path := event.Path
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	query := url.Values{}
	for key, values := range event.MultiValueQueryStringParameters {
		for _, v := range values {
			query.Add(key, v)
		}
	}
	for key, value := range event.QueryStringParameters {
		if _, ok := query[key]; !ok {
			query.Set(key, value)
		}
	}

	u := url.URL{Scheme: "https", Host: "lambda.local", Path: path, RawQuery: query.Encode()}
	return u.String()
}

func textResponse(status int, body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       body,
	}
}

// responseWriter buffers a handler's response for the proxy reply.
type responseWriter struct {
	headers     http.Header
	body        *bytes.Buffer
	code        int
	wroteHeader bool
}

func (w *responseWriter) Header() http.Header {
	return w.headers
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.body.Write(b)
}

func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	w.code = statusCode
}
