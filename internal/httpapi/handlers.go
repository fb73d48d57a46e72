package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hsiuhsiu/cipherlab-go/pkg/cipherlab"
	"github.com/hsiuhsiu/cipherlab-go/pkg/cipherlab/logging"
	"github.com/hsiuhsiu/cipherlab-go/pkg/cipherlab/registry"
	"github.com/hsiuhsiu/cipherlab-go/pkg/cipherlab/sdes"
)

// Values substituted when a request omits them.
const (
	defaultPlaintext = "10111101"
	defaultKey       = "1010000010"
)

const (
	opEncrypt = "encrypt"
	opDecrypt = "decrypt"
)

// cryptRequest is the JSON body accepted by the encrypt and decrypt
// endpoints. The S-DES tables share the same object and are decoded
// separately into sdes.Tables.
type cryptRequest struct {
	Plaintext  *string `json:"plaintext"`
	Ciphertext *string `json:"ciphertext"`
	Key        *string `json:"key"`
}

type cryptResponse struct {
	Success    bool   `json:"success"`
	Cipher     string `json:"cipher"`
	Plaintext  string `json:"plaintext"`
	Key        string `json:"key"`
	Ciphertext string `json:"ciphertext"`
	K1         string `json:"K1,omitempty"`
	K2         string `json:"K2,omitempty"`
	IPInv      []int  `json:"IP_INV,omitempty"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Kind    string `json:"kind"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": cipherlab.BuildVersion(),
	})
}

func (s *Server) handleSDESBanner(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "S-DES API Endpoint - Use POST to encrypt")
}

func (s *Server) handleSDESDefaults(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, sdes.DefaultTables())
}

func (s *Server) handleListCiphers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]registry.CipherID{"ciphers": registry.IDs()})
}

func (s *Server) handleSDESEncrypt(w http.ResponseWriter, r *http.Request) {
	s.crypt(w, r, registry.SDES, opEncrypt)
}

func (s *Server) handleCipher(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := registry.ParseID(vars["cipher"])
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown_cipher", err.Error())
		return
	}
	s.crypt(w, r, id, vars["op"])
}

func (s *Server) crypt(w http.ResponseWriter, r *http.Request, id registry.CipherID, op string) {
	ctx := r.Context()

	c, err := registry.Lookup(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown_cipher", err.Error())
		return
	}

	body, err := readBody(w, r, s.opts.MaxBodyBytes)
	if err != nil {
		s.fail(ctx, w, id, op, err)
		return
	}

	var req cryptRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.fail(ctx, w, id, op, &badRequestError{err: err})
		return
	}
	params, err := paramsFor(id, op, &req, body)
	if err != nil {
		s.fail(ctx, w, id, op, err)
		return
	}

	var out *registry.Output
	if op == opDecrypt {
		out, err = c.Decrypt(ctx, params)
	} else {
		out, err = c.Encrypt(ctx, params)
	}
	if err != nil {
		s.fail(ctx, w, id, op, err)
		return
	}

	s.metrics.operation(string(id), op, "ok")
	s.logger.Debug(ctx, "cipher operation", "cipher", id, "op", op, logging.Redacted("key"))

	resp := cryptResponse{Success: true, Cipher: string(id), Key: params.Key}
	if op == opDecrypt {
		resp.Ciphertext, resp.Plaintext = params.Input, out.Text
	} else {
		resp.Plaintext, resp.Ciphertext = params.Input, out.Text
	}
	if out.SDES != nil {
		resp.K1 = out.SDES.K1.String()
		resp.K2 = out.SDES.K2.String()
		resp.IPInv = out.SDES.IPInverse
	}
	writeJSON(w, http.StatusOK, resp)
}

// paramsFor builds the registry parameters for id from a decoded request,
// substituting defaults for missing fields. body is decoded a second time
// for cipher-specific configuration.
func paramsFor(id registry.CipherID, op string, req *cryptRequest, body []byte) (registry.Params, error) {
	p := registry.Params{Key: defaultKey}
	if req.Key != nil {
		p.Key = *req.Key
	}
	switch op {
	case opDecrypt:
		if req.Ciphertext == nil {
			return p, cipherlab.NewDomainError("ciphertext", "required for decrypt")
		}
		p.Input = *req.Ciphertext
	default:
		p.Input = defaultPlaintext
		if req.Plaintext != nil {
			p.Input = *req.Plaintext
		}
	}

	switch id {
	case registry.SDES:
		tables := sdes.DefaultTables()
		if err := json.Unmarshal(body, tables); err != nil {
			return p, err
		}
		p.SDES = tables
	}
	return p, nil
}

// readBody reads at most limit bytes. An empty body is treated as "{}", so
// every field takes its default.
func readBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []byte("{}"), nil
	}
	return data, nil
}

type badRequestError struct {
	err error
}

func (e *badRequestError) Error() string { return "malformed request: " + e.err.Error() }
func (e *badRequestError) Unwrap() error { return e.err }

func (s *Server) fail(ctx context.Context, w http.ResponseWriter, id registry.CipherID, op string, err error) {
	status, kind := classify(err)
	s.metrics.operation(string(id), op, kind)
	if status >= http.StatusInternalServerError {
		s.logger.Error(ctx, "cipher operation failed", "cipher", id, "op", op, "err", err)
	} else {
		s.logger.Debug(ctx, "cipher request rejected", "cipher", id, "op", op, "kind", kind, "err", err)
	}
	writeError(w, status, kind, err.Error())
}

// classify maps an error to its HTTP status and response kind.
func classify(err error) (int, string) {
	var (
		maxBytes *http.MaxBytesError
		badReq   *badRequestError
		syntax   *json.SyntaxError
		typeErr  *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge, "too_large"
	case errors.Is(err, registry.ErrUnknownCipher):
		return http.StatusNotFound, "unknown_cipher"
	case errors.Is(err, cipherlab.ErrConfiguration),
		errors.Is(err, cipherlab.ErrDomain),
		errors.Is(err, cipherlab.ErrLengthMismatch):
		return http.StatusBadRequest, cipherlab.Kind(err)
	case errors.As(err, &badReq), errors.As(err, &syntax), errors.As(err, &typeErr):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "canceled"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, errorResponse{Success: false, Error: msg, Kind: kind})
}
