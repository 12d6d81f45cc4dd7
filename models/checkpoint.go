package models

// CheckpointEntry pins the canonical block hash at one height
type CheckpointEntry struct {
	Height int64 `json:"height"`
	Hash   Hash  `json:"hash"`
}
