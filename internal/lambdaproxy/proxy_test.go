package lambdaproxy

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoHandler reports what the proxy handed it.
func echoHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "text/plain")
		w.Header().Add("X-Seen", r.Header.Get("X-Client"))
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
		}
		_, _ = w.Write([]byte(r.Method + " " + r.URL.Path + "?" + r.URL.RawQuery + " " + string(body)))
	})
}

func TestProxy_HandleRequest(t *testing.T) {
	tests := []struct {
		name     string
		event    events.APIGatewayProxyRequest
		wantCode int
		wantBody string
	}{
		{
			name:     "get with query",
			event:    events.APIGatewayProxyRequest{HTTPMethod: "GET", Path: "/api/weather/stations", QueryStringParameters: map[string]string{"state": "WA"}},
			wantCode: http.StatusOK,
			wantBody: "GET /api/weather/stations?state=WA ",
		},
		{
			name: "multi value query wins",
			event: events.APIGatewayProxyRequest{
				HTTPMethod:                      "GET",
				Path:                            "/alerts",
				QueryStringParameters:           map[string]string{"stationId": "mia01"},
				MultiValueQueryStringParameters: map[string][]string{"stationId": {"chi01"}},
			},
			wantCode: http.StatusOK,
			wantBody: "GET /alerts?stationId=chi01 ",
		},
		{
			name:     "empty method and path",
			event:    events.APIGatewayProxyRequest{},
			wantCode: http.StatusOK,
			wantBody: "GET /? ",
		},
		{
			name:     "post body",
			event:    events.APIGatewayProxyRequest{HTTPMethod: "POST", Path: "/graphql", Body: `{"query":"{ stations { id } }"}`},
			wantCode: http.StatusOK,
			wantBody: `POST /graphql? {"query":"{ stations { id } }"}`,
		},
		{
			name: "base64 body",
			event: events.APIGatewayProxyRequest{
				HTTPMethod:      "POST",
				Path:            "/graphql",
				Body:            base64.StdEncoding.EncodeToString([]byte("hello")),
				IsBase64Encoded: true,
			},
			wantCode: http.StatusOK,
			wantBody: "POST /graphql? hello",
		},
		{
			name:     "status passes through",
			event:    events.APIGatewayProxyRequest{HTTPMethod: "GET", Path: "/missing"},
			wantCode: http.StatusNotFound,
			wantBody: "GET /missing? ",
		},
		{
			name:     "bad base64",
			event:    events.APIGatewayProxyRequest{HTTPMethod: "POST", Path: "/graphql", Body: "!!!", IsBase64Encoded: true},
			wantCode: http.StatusBadRequest,
			wantBody: `{"responseType":"error","error":"Invalid request body"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proxy := New(echoHandler(), nil)

			response, err := proxy.HandleRequest(context.Background(), tt.event)

			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, response.StatusCode)
			assert.Equal(t, tt.wantBody, response.Body)
		})
	}
}

func TestProxy_CopiesHeaders(t *testing.T) {
	proxy := New(echoHandler(), nil)

	response, err := proxy.HandleRequest(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: "GET",
		Path:       "/",
		Headers:    map[string]string{"X-Client": "lambda-test"},
	})
	require.NoError(t, err)
	assert.Equal(t, "lambda-test", response.Headers["X-Seen"])
	assert.Equal(t, "text/plain", response.Headers["Content-Type"])
	assert.Equal(t, []string{"lambda-test"}, response.MultiValueHeaders["X-Seen"])
}

func TestProxy_RequestCreatorError(t *testing.T) {
	mockRequestCreator := func(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
		return nil, errors.New("mock error")
	}
	proxy := New(echoHandler(), mockRequestCreator)

	response, err := proxy.HandleRequest(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: "GET", Path: "/"})

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, response.StatusCode)
	assert.Contains(t, response.Body, "Failed to create request")
}
