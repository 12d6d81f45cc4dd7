package checkpoints

import (
	"errors"
	"fmt"

	"checkpoint-node/models"
)

// ErrCheckpointMismatch is returned when a block at a checkpointed height does
// not carry the checkpointed hash.
var ErrCheckpointMismatch = errors.New("block does not match checkpoint")

// CheckBlock reports whether a block with the given hash may sit at height.
// Heights without a checkpoint are always allowed, as is everything when
// enforcement is disabled.
func CheckBlock(set *CheckpointSet, height int64, hash models.Hash, enabled bool) bool {
	if !enabled {
		return true
	}
	want, ok := set.Lookup(height)
	if !ok {
		return true
	}
	return hash == want
}

// VerifyBlock is CheckBlock returning a descriptive error on mismatch
func VerifyBlock(set *CheckpointSet, height int64, hash models.Hash, enabled bool) error {
	if CheckBlock(set, height, hash, enabled) {
		return nil
	}
	want, _ := set.Lookup(height)
	return fmt.Errorf("%w: block %s at height %d, checkpoint %s", ErrCheckpointMismatch, hash, height, want)
}
