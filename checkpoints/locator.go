package checkpoints

import "checkpoint-node/models"

// BlockIndex resolves block hashes to index nodes. Implementations are only read.
type BlockIndex interface {
	LookupNode(hash models.Hash) (*models.BlockIndexNode, bool)
}

// MapBlockIndex is an in-memory BlockIndex
type MapBlockIndex map[models.Hash]*models.BlockIndexNode

func (m MapBlockIndex) LookupNode(hash models.Hash) (*models.BlockIndexNode, bool) {
	n, ok := m[hash]
	return n, ok
}

// GetLastCheckpoint returns the index node of the highest checkpoint present in
// index, or nil if none is present or enforcement is disabled.
func GetLastCheckpoint(index BlockIndex, enabled bool, set *CheckpointSet) *models.BlockIndexNode {
	if !enabled {
		return nil
	}
	for i := len(set.entries) - 1; i >= 0; i-- {
		if node, ok := index.LookupNode(set.entries[i].Hash); ok {
			return node
		}
	}
	return nil
}

// TotalBlocksEstimate returns the highest checkpoint height, a rough
// denominator for sync progress display. It is 0 when enforcement is disabled.
func TotalBlocksEstimate(enabled bool, set *CheckpointSet) int64 {
	if !enabled {
		return 0
	}
	return set.Highest().Height
}
