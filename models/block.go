package models

// BlockIndexNode is the slice of a block-index entry the checkpoint code reads
type BlockIndexNode struct {
	Hash     Hash  `json:"hash"`      // block hash, also the index key
	PrevHash Hash  `json:"prev_hash"` // parent block hash
	Height   int64 `json:"height"`    // distance from genesis
	Time     int64 `json:"time"`      // block timestamp, unix seconds
	ChainTx  int64 `json:"chain_tx"`  // transactions from genesis up to and including this block
}
