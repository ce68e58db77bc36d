// Package service exposes proof verification over HTTP so a client
// that holds validated headers but no networking stack of its own can
// delegate the merkle work. The core packages stay I/O free; this is
// the only place bytes meet a socket.
package service

import (
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/forestrie/go-merkleblock/merkle"
	"github.com/forestrie/go-merkleblock/spv"
)

// Server carries the handler dependencies. Handlers share nothing
// mutable, so the stock net/http per request goroutines need no
// further synchronization.
type Server struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Server {
	return &Server{log: log}
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.health).Methods(http.MethodGet)
	r.HandleFunc("/v1/merkleblock/verify", s.verify).Methods(http.MethodPost)
	return r
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

type verifyRequest struct {
	// MerkleBlock is the raw proof payload, plain hex.
	MerkleBlock string `json:"merkleblock"`
	// Root is the trusted merkle root in display order hex, as read
	// from a validated block header.
	Root string `json:"root"`
}

type matchedOut struct {
	Index uint64 `json:"index"`
	TxID  string `json:"txid"`
}

type verifyResponse struct {
	Root    string       `json:"root"`
	Matched []matchedOut `json:"matched"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) verify(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	log := s.log.With(
		zap.String("request_id", uuid.NewString()),
		zap.String("remote", r.RemoteAddr),
	)

	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("bad request body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json body"})
		return
	}
	payload, err := hex.DecodeString(req.MerkleBlock)
	if err != nil {
		log.Warn("bad merkleblock hex", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "merkleblock is not valid hex"})
		return
	}
	trusted, err := merkle.HashFromHex(req.Root)
	if err != nil {
		log.Warn("bad trusted root", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "root is not a valid hash"})
		return
	}

	matched, err := spv.Verify(payload, trusted)
	switch {
	case spv.IsRootMismatch(err):
		// A clean decode with the wrong root: the proof is well
		// formed but dishonest or stale. 422 rather than 400 so
		// clients can tell the cases apart without parsing text.
		log.Warn("root mismatch", zap.String("trusted_root", req.Root))
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	case err != nil:
		log.Warn("malformed proof", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	resp := verifyResponse{Root: req.Root, Matched: make([]matchedOut, 0, len(matched))}
	for _, m := range matched {
		resp.Matched = append(resp.Matched, matchedOut{Index: m.Index, TxID: m.Hash.String()})
	}
	log.Info("proof verified",
		zap.Int("matched", len(matched)),
		zap.Duration("elapsed", time.Since(start)),
	)
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
