package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"checkpoint-node/checkpoints"
	"checkpoint-node/logger"
	"checkpoint-node/models"
	"checkpoint-node/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Handler contains the HTTP handlers for the checkpoint API endpoints
type Handler struct {
	Service *service.Service
}

// NewHandler creates and returns a new Handler instance
func NewHandler(s *service.Service) *Handler {
	return &Handler{Service: s}
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respond(w, status, map[string]string{"error": msg})
}

// ListCheckpoints handles GET requests for the active checkpoint table
func (h *Handler) ListCheckpoints(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]interface{}{
		"network":               h.Service.Network(),
		"enabled":               h.Service.Enabled(),
		"checkpoints":           h.Service.Checkpoints(),
		"total_blocks_estimate": h.Service.TotalBlocksEstimate(),
	})
}

// CheckBlock handles GET requests asking whether a hash is allowed at a height
func (h *Handler) CheckBlock(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	height, err := strconv.ParseInt(q.Get("height"), 10, 64)
	if err != nil || height < 0 {
		respondError(w, http.StatusBadRequest, "invalid height")
		return
	}
	hash, err := models.ParseHash(q.Get("hash"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"height": height,
		"hash":   hash,
		"valid":  h.Service.CheckBlock(height, hash),
	})
}

// GetLastCheckpoint handles GET requests for the highest checkpoint block in the index
func (h *Handler) GetLastCheckpoint(w http.ResponseWriter, r *http.Request) {
	node, ok := h.Service.LastCheckpoint()
	if !ok {
		respondError(w, http.StatusNotFound, "no checkpoint block in index")
		return
	}
	respond(w, http.StatusOK, node)
}

// GetProgress handles GET requests estimating sync progress at a stored block
func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	hash, err := models.ParseHash(r.URL.Query().Get("hash"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.Service.Progress(hash)
	if errors.Is(err, service.ErrBlockNotFound) {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		logger.Logger.Error("Failed to estimate progress", zap.String("hash", hash.String()), zap.Error(err))
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond(w, http.StatusOK, report)
}

// AcceptBlock handles POST requests adding a block index node
func (h *Handler) AcceptBlock(w http.ResponseWriter, r *http.Request) {
	var node models.BlockIndexNode
	if err := json.NewDecoder(r.Body).Decode(&node); err != nil {
		logger.Logger.Error("Failed to decode block", zap.Error(err))
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	err := h.Service.AcceptBlock(&node)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidBlock):
		respondError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, service.ErrBlockExists):
		respondError(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, checkpoints.ErrCheckpointMismatch):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	default:
		logger.Logger.Error("Failed to accept block", zap.Error(err))
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respond(w, http.StatusCreated, map[string]interface{}{
		"message": "Block accepted",
		"block":   node,
	})
}

// GetBlock handles GET requests for a stored block index node
func (h *Handler) GetBlock(w http.ResponseWriter, r *http.Request) {
	hash, err := models.ParseHash(mux.Vars(r)["hash"])
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	node, err := h.Service.Block(hash)
	if errors.Is(err, service.ErrBlockNotFound) {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		logger.Logger.Error("Failed to get block", zap.String("hash", hash.String()), zap.Error(err))
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond(w, http.StatusOK, node)
}
