package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/imjang/internal/apperr"
)

func TestCORSMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := CORSMiddleware(next, []string{"http://localhost:3000"})

	tests := []struct {
		name            string
		method          string
		origin          string
		wantStatus      int
		wantAllowOrigin string
	}{
		{name: "allowed origin", method: http.MethodGet, origin: "http://localhost:3000", wantStatus: http.StatusTeapot, wantAllowOrigin: "http://localhost:3000"},
		{name: "other origin", method: http.MethodGet, origin: "https://evil.example.com", wantStatus: http.StatusTeapot},
		{name: "preflight", method: http.MethodOptions, origin: "http://localhost:3000", wantStatus: http.StatusNoContent, wantAllowOrigin: "http://localhost:3000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/places", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantAllowOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			if tt.wantAllowOrigin != "" {
				assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
			}
		})
	}
}

func TestClientIP(t *testing.T) {
	trusted, err := parseTrustedProxies([]string{"10.0.0.0/8", "192.0.2.10"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "forwarded for from an untrusted peer", headers: map[string]string{"X-Forwarded-For": "203.0.113.7"}, remote: "198.51.100.4:1234", want: "198.51.100.4"},
		{name: "real ip from an untrusted peer", headers: map[string]string{"X-Real-IP": "203.0.113.8"}, remote: "198.51.100.4:1234", want: "198.51.100.4"},
		{name: "forwarded for from a trusted proxy", headers: map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2"}, remote: "10.0.0.1:1234", want: "203.0.113.7"},
		{name: "spoofed hops left of the nearest client are ignored", headers: map[string]string{"X-Forwarded-For": "1.1.1.1, 203.0.113.7"}, remote: "192.0.2.10:1234", want: "203.0.113.7"},
		{name: "only trusted hops", headers: map[string]string{"X-Forwarded-For": "10.0.0.3, 10.0.0.2"}, remote: "10.0.0.1:1234", want: "10.0.0.3"},
		{name: "real ip from a trusted proxy", headers: map[string]string{"X-Real-IP": "203.0.113.8"}, remote: "10.0.0.1:1234", want: "203.0.113.8"},
		{name: "trusted proxy without headers", remote: "10.0.0.1:1234", want: "10.0.0.1"},
		{name: "remote address", remote: "192.0.2.1:5555", want: "192.0.2.1"},
		{name: "remote address without port", remote: "192.0.2.1", want: "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientIP(req, trusted))
		})
	}
}

func TestParseTrustedProxies(t *testing.T) {
	tests := []struct {
		name    string
		values  []string
		want    []string
		wantErr bool
	}{
		{name: "none", want: []string{}},
		{name: "addresses and ranges", values: []string{"10.1.2.3/8", " 192.0.2.10 ", "2001:db8::1"}, want: []string{"10.0.0.0/8", "192.0.2.10/32", "2001:db8::1/128"}},
		{name: "host name", values: []string{"proxy.internal"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTrustedProxies(tt.values)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			gotStrings := make([]string, 0, len(got))
			for _, p := range got {
				gotStrings = append(gotStrings, p.String())
			}
			assert.Equal(t, tt.want, gotStrings)
		})
	}
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "missing required answers",
			err:        apperr.MissingRequired([]string{"q1", "q3"}),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":{"kind":"validation","message":"2 required question(s) are not answered","missing_question_ids":["q1","q3"]}}`,
		},
		{
			name:       "wrapped forbidden",
			err:        errors.Join(errors.New("context"), apperr.Forbidden("place %s belongs to another user", "p1")),
			wantStatus: http.StatusForbidden,
			wantBody:   `{"error":{"kind":"forbidden","message":"place p1 belongs to another user"}}`,
		},
		{name: "unauthorized", err: apperr.Unauthorized("sign-in is required"), wantStatus: http.StatusUnauthorized},
		{name: "not found", err: apperr.NotFound("note"), wantStatus: http.StatusNotFound},
		{name: "too many requests", err: apperr.TooManyRequests("locked"), wantStatus: http.StatusTooManyRequests},
		{
			name:       "unclassified errors are hidden",
			err:        errors.New("dial tcp: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":{"kind":"internal","message":"internal server error"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestRequestValidator(t *testing.T) {
	v, err := newRequestValidator()
	assert.NoError(t, err)

	err = v.Struct(&saveUnitRequest{})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Contains(t, err.Error(), "label is a required field")

	assert.NoError(t, v.Struct(&saveUnitRequest{Label: "101동"}))
}
