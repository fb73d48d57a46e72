package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/hsiuhsiu/cipherlab-go/pkg/cipherlab/logging"
)

func newTestServer(t *testing.T) (*Server, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	s, err := New(Options{
		MaxBodyBytes: 1024,
		Logger:       logging.Discard(),
		Registry:     reg,
	})
	require.NoError(t, err)
	return s, reg
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestSDESEncryptDefaults(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/sdes", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	resp := decode[cryptResponse](t, rec)
	require.True(t, resp.Success)
	require.Equal(t, "10111101", resp.Plaintext)
	require.Equal(t, "1010000010", resp.Key)
	require.Equal(t, "01110101", resp.Ciphertext)
	require.Equal(t, "10100100", resp.K1)
	require.Equal(t, "01000011", resp.K2)
	require.Equal(t, []int{4, 1, 3, 5, 7, 2, 8, 6}, resp.IPInv)
}

func TestSDESEncryptEmptyBody(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/sdes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "01110101", decode[cryptResponse](t, rec).Ciphertext)
}

func TestSDESEncryptCustomTables(t *testing.T) {
	s, _ := newTestServer(t)

	body := `{
		"plaintext": "10101010",
		"key": "0111111101",
		"P10": [3,5,2,7,4,10,1,9,8,6],
		"S0": [["01","00","11","10"],["11","10","01","00"],["00","10","01","11"],["11","01","11","10"]]
	}`
	rec := do(t, s, http.MethodPost, "/api/sdes", body)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[cryptResponse](t, rec)
	require.Equal(t, "00010110", resp.Ciphertext)
	require.Equal(t, "01011111", resp.K1)
	require.Equal(t, "11111100", resp.K2)
}

func TestCipherRoundTrip(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/ciphers/sdes/encrypt", `{"plaintext":"11111111","key":"0000000000"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	enc := decode[cryptResponse](t, rec)
	require.Equal(t, "00010100", enc.Ciphertext)
	require.Equal(t, "sdes", enc.Cipher)

	body := fmt.Sprintf(`{"ciphertext":%q,"key":"0000000000"}`, enc.Ciphertext)
	rec = do(t, s, http.MethodPost, "/api/ciphers/SDES/decrypt", body)
	require.Equal(t, http.StatusOK, rec.Code)
	dec := decode[cryptResponse](t, rec)
	require.Equal(t, "11111111", dec.Plaintext)
	require.Equal(t, enc.Ciphertext, dec.Ciphertext)
}

func TestCryptErrors(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		kind   string
	}{
		{"P10 contains 11", "/api/sdes", `{"P10":[3,5,2,7,4,11,1,9,8,6]}`, http.StatusBadRequest, "configuration"},
		{"EP length 7", "/api/sdes", `{"EP":[4,1,2,3,2,3,4]}`, http.StatusBadRequest, "configuration"},
		{"short plaintext", "/api/sdes", `{"plaintext":"1011110"}`, http.StatusBadRequest, "domain"},
		{"non binary key", "/api/sdes", `{"key":"10100000z0"}`, http.StatusBadRequest, "domain"},
		{"bad sbox", "/api/sdes", `{"S1":[["00"]]}`, http.StatusBadRequest, "configuration"},
		{"malformed json", "/api/sdes", `{"plaintext":`, http.StatusBadRequest, "bad_request"},
		{"wrong json type", "/api/sdes", `{"P10":"abc"}`, http.StatusBadRequest, "bad_request"},
		{"decrypt without ciphertext", "/api/ciphers/sdes/decrypt", `{"key":"1010000010"}`, http.StatusBadRequest, "domain"},
		{"unknown cipher", "/api/ciphers/caesar/encrypt", `{}`, http.StatusNotFound, "unknown_cipher"},
		{"body too large", "/api/sdes", `{"plaintext":"` + strings.Repeat("1", 2048) + `"}`, http.StatusRequestEntityTooLarge, "too_large"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, tc.path, tc.body)
			require.Equal(t, tc.status, rec.Code, rec.Body.String())
			resp := decode[errorResponse](t, rec)
			require.False(t, resp.Success)
			require.Equal(t, tc.kind, resp.Kind)
			require.NotEmpty(t, resp.Error)
		})
	}
}

func TestBannerAndListings(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/sdes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "S-DES API Endpoint - Use POST to encrypt", rec.Body.String())

	rec = do(t, s, http.MethodGet, "/api/ciphers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"ciphers":["sdes"]}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/api/sdes/defaults", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"P10":[3,5,2,7,4,10,1,9,8,6]`)

	rec = do(t, s, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", decode[map[string]string](t, rec)["status"])
}

func TestPreflightAndRouting(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodOptions, "/api/sdes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
	require.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")

	rec = do(t, s, http.MethodGet, "/nope", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodDelete, "/api/sdes", "")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestMetricsRecorded(t *testing.T) {
	s, reg := newTestServer(t)

	do(t, s, http.MethodPost, "/api/sdes", `{}`)
	do(t, s, http.MethodPost, "/api/sdes", `{"plaintext":"1"}`)

	require.Equal(t, 1.0, testutil.ToFloat64(s.metrics.operations.WithLabelValues("sdes", "encrypt", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(s.metrics.operations.WithLabelValues("sdes", "encrypt", "domain")))
	require.Equal(t, 1.0, testutil.ToFloat64(s.metrics.requests.WithLabelValues("/api/sdes", "POST", "400")))

	rec := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "cipherlab_cipher_operations_total")

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)
}

func TestNewRejectsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(Options{Registry: reg, Logger: logging.Discard()})
	require.NoError(t, err)
	_, err = New(Options{Registry: reg, Logger: logging.Discard()})
	require.Error(t, err)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s, _ := newTestServer(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/api/sdes"
	resp, err := http.Post(url, "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(data), `"ciphertext":"01110101"`)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
