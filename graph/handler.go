package graph

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/99designs/gqlgen/graphql"
	"github.com/bbernstein/weatherhub/internal/cache"
	"github.com/bbernstein/weatherhub/internal/observability"
	"github.com/rs/zerolog/log"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

const maxBodyBytes = 1 << 20

// Handler serves GraphQL over HTTP: POST with a JSON body, or GET with query,
// operationName and variables parameters.
type Handler struct {
	executor *Executor
	cache    *cache.ResponseCache
	metrics  *observability.Metrics
}

// NewHandler builds the /graphql handler. responses may be nil to disable caching.
func NewHandler(resolver *Resolver, responses *cache.ResponseCache, metrics *observability.Metrics) *Handler {
	return &Handler{
		executor: NewExecutor(resolver),
		cache:    responses,
		metrics:  metrics,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	params, err := readParams(r)
	if err != nil {
		h.write(w, http.StatusBadRequest, &graphql.Response{Errors: gqlerror.List{gqlerror.Errorf("%s", err.Error())}})
		h.metrics.Observe("graphql", "invalid", "bad_request", time.Since(start).Seconds())
		return
	}

	key := ""
	if h.cache != nil {
		if key, err = cache.Key(params.OperationName, params.Query, params.Variables); err != nil {
			log.Warn().Err(err).Msg("Failed to build GraphQL cache key")
			key = ""
		} else if body, ok := h.cache.Get(r.Context(), key); ok {
			h.metrics.CacheResult(true)
			writeBody(w, http.StatusOK, body)
			h.observe(params.OperationName, "ok", start)
			return
		} else {
			h.metrics.CacheResult(false)
		}
	}

	op, errs := h.executor.Prepare(params)
	if len(errs) > 0 {
		h.write(w, http.StatusUnprocessableEntity, &graphql.Response{Errors: errs})
		h.observe(params.OperationName, "bad_request", start)
		return
	}

	resp := h.executor.Run(r.Context(), op)
	body, err := json.Marshal(resp)
	if err != nil {
		log.Error().Err(err).Msg("Error marshaling GraphQL response")
		http.Error(w, `{"errors":[{"message":"internal error"}]}`, http.StatusInternalServerError)
		h.observe(op.Name(), "error", start)
		return
	}

	outcome := "ok"
	if len(resp.Errors) > 0 {
		outcome = "error"
	} else if key != "" {
		h.cache.Add(r.Context(), key, body)
	}

	writeBody(w, http.StatusOK, body)
	h.observe(op.Name(), outcome, start)
}

func (h *Handler) observe(operation, outcome string, start time.Time) {
	if operation == "" {
		operation = "anonymous"
	}
	h.metrics.Observe("graphql", operation, outcome, time.Since(start).Seconds())
	log.Debug().
		Str("protocol", "graphql").
		Str("operation", operation).
		Str("outcome", outcome).
		Dur("duration", time.Since(start)).
		Msg("Handled request")
}

func (h *Handler) write(w http.ResponseWriter, status int, resp *graphql.Response) {
	body, err := json.Marshal(resp)
	if err != nil {
		log.Error().Err(err).Msg("Error marshaling GraphQL response")
		status = http.StatusInternalServerError
		body = []byte(`{"errors":[{"message":"internal error"}]}`)
	}
	writeBody(w, status, body)
}

func writeBody(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Debug().Err(err).Msg("Error writing response")
	}
}

// readParams decodes the request. Numbers in variables are kept as json.Number so integer
// arguments survive coercion exactly.
func readParams(r *http.Request) (*graphql.RawParams, error) {
	params := &graphql.RawParams{}

	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		params.Query = q.Get("query")
		params.OperationName = q.Get("operationName")
		if raw := q.Get("variables"); raw != "" {
			if err := decodeJSON(strings.NewReader(raw), &params.Variables); err != nil {
				return nil, errInvalid("variables could not be decoded")
			}
		}
	case http.MethodPost:
		if err := decodeJSON(io.LimitReader(r.Body, maxBodyBytes), params); err != nil {
			return nil, errInvalid("json request body could not be decoded: " + err.Error())
		}
	default:
		return nil, errInvalid("unsupported method " + r.Method)
	}

	return params, nil
}

func decodeJSON(r io.Reader, v interface{}) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return dec.Decode(v)
}

type errInvalid string

func (e errInvalid) Error() string { return string(e) }
