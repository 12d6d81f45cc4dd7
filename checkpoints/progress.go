package checkpoints

import "checkpoint-node/models"

// SigcheckVerificationFactor is how many times slower transactions after the
// last checkpoint are expected to verify. It cannot be right for every system:
// reindexing from a fast disk on a slow CPU can reach 20, downloading over a
// slow network on a fast multicore CPU stays close to 1.
const SigcheckVerificationFactor = 5.0

const secondsPerDay = 86400.0

// EstimateProgress guesses how far verification has got at node, as a fraction
// in [0, 1]. Work is 1 unit per transaction up to the last checkpoint and
// SigcheckVerificationFactor units per transaction after it. Transactions not
// yet seen are projected from the set's daily rate and the time elapsed until
// now (unix seconds).
//
// A nil node yields 0. When there is no work at all on either side the result
// is 1, since nothing is left to verify.
func EstimateProgress(node *models.BlockIndexNode, now int64, set *CheckpointSet) float64 {
	if node == nil {
		return 0.0
	}

	var workBefore, workAfter float64
	if node.ChainTx <= set.lastTx {
		cheapBefore := float64(node.ChainTx)
		cheapAfter := float64(set.lastTx - node.ChainTx)
		expensiveAfter := projectedTransactions(now, set.lastTime, set.txPerDay)
		workBefore = cheapBefore
		workAfter = cheapAfter + expensiveAfter*SigcheckVerificationFactor
	} else {
		cheapBefore := float64(set.lastTx)
		expensiveBefore := float64(node.ChainTx - set.lastTx)
		expensiveAfter := projectedTransactions(now, node.Time, set.txPerDay)
		workBefore = cheapBefore + expensiveBefore*SigcheckVerificationFactor
		workAfter = expensiveAfter * SigcheckVerificationFactor
	}

	total := workBefore + workAfter
	if total == 0 {
		return 1.0
	}
	return workBefore / total
}

// projectedTransactions estimates how many transactions appeared between since
// and now. A clock behind since projects nothing.
func projectedTransactions(now, since int64, perDay float64) float64 {
	elapsed := now - since
	if elapsed <= 0 {
		return 0
	}
	return float64(elapsed) / secondsPerDay * perDay
}
