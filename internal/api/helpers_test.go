package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tally-api/internal/api/shared"
	"github.com/stretchr/testify/require"
)

// withPlayer stands in for the auth middleware. An empty player leaves the
// request unauthenticated.
func withPlayer(player string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if player != "" {
				r = r.WithContext(shared.WithPlayer(r.Context(), player))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// serve routes one request through a chi router built by register.
func serve(
	t *testing.T,
	player string,
	register func(r chi.Router),
	method, path string,
	body interface{},
	headers ...string,
) *httptest.ResponseRecorder {
	t.Helper()

	r := chi.NewRouter()
	r.Use(withPlayer(player))
	register(r)

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	decodeBody(t, rec, &resp)
	return resp
}
