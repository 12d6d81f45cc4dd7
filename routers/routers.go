package routers

import (
	"checkpoint-node/handlers"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up all the HTTP routes for the checkpoint node
func RegisterRoutes(r *mux.Router, h *handlers.Handler) {

	// Active network, enforcement flag and checkpoint table
	r.HandleFunc("/checkpoints", h.ListCheckpoints).Methods("GET")

	// Whether a hash is allowed at a height
	r.HandleFunc("/checkpoints/check", h.CheckBlock).Methods("GET")

	// Highest checkpoint block already in the block index
	r.HandleFunc("/checkpoints/last", h.GetLastCheckpoint).Methods("GET")

	// Estimated sync progress at a stored block
	r.HandleFunc("/sync/progress", h.GetProgress).Methods("GET")

	// Adds a block index node, subject to the checkpoints
	r.HandleFunc("/blocks", h.AcceptBlock).Methods("POST")

	r.HandleFunc("/blocks/{hash}", h.GetBlock).Methods("GET")
}
