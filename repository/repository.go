package repository

import (
	"encoding/json"
	"errors"

	"checkpoint-node/db"
	"checkpoint-node/logger"
	"checkpoint-node/models"

	"go.uber.org/zap"
)

// ErrBlockNotFound is returned when no block index node is stored under a hash
var ErrBlockNotFound = errors.New("block not found")

var blockPrefix = []byte("block:")

// It abstracts the block index storage from the node service
type BlockRepositoryInterface interface {
	PutBlock(node *models.BlockIndexNode) error
	GetBlock(hash models.Hash) (*models.BlockIndexNode, error)
	HasBlock(hash models.Hash) (bool, error)
	GetAllBlocks() ([]*models.BlockIndexNode, error)
	LookupNode(hash models.Hash) (*models.BlockIndexNode, bool)
}

// BlockRepository implements the BlockRepositoryInterface using LevelDB as the storage backend
type BlockRepository struct {
	db *db.LevelDB
}

// NewBlockRepository creates and returns a new BlockRepository instance
func NewBlockRepository(db *db.LevelDB) *BlockRepository {
	return &BlockRepository{db: db}
}

func blockKey(hash models.Hash) []byte {
	key := make([]byte, 0, len(blockPrefix)+models.HashSize)
	key = append(key, blockPrefix...)
	return append(key, hash[:]...)
}

// PutBlock stores a block index node keyed by its hash
func (r *BlockRepository) PutBlock(node *models.BlockIndexNode) error {
	data, err := json.Marshal(node)
	if err != nil {
		return err
	}
	return r.db.Put(blockKey(node.Hash), data)
}

// GetBlock retrieves a block index node by hash
func (r *BlockRepository) GetBlock(hash models.Hash) (*models.BlockIndexNode, error) {
	data, err := r.db.Get(blockKey(hash))
	if db.IsNotFound(err) {
		return nil, ErrBlockNotFound
	}
	if err != nil {
		return nil, err
	}
	var node models.BlockIndexNode
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	return &node, nil
}

// HasBlock reports whether a node is stored under hash
func (r *BlockRepository) HasBlock(hash models.Hash) (bool, error) {
	return r.db.Has(blockKey(hash))
}

// GetAllBlocks retrieves every stored block index node, in key order
func (r *BlockRepository) GetAllBlocks() ([]*models.BlockIndexNode, error) {
	iter := r.db.NewPrefixIterator(blockPrefix)
	defer iter.Release()

	var nodes []*models.BlockIndexNode
	for iter.Next() {
		var node models.BlockIndexNode
		if err := json.Unmarshal(iter.Value(), &node); err != nil {
			return nil, err
		}
		nodes = append(nodes, &node)
	}
	return nodes, iter.Error()
}

// LookupNode serves the repository as a read-only hash to node index.
// Storage errors are logged and reported as absent.
func (r *BlockRepository) LookupNode(hash models.Hash) (*models.BlockIndexNode, bool) {
	node, err := r.GetBlock(hash)
	if errors.Is(err, ErrBlockNotFound) {
		return nil, false
	}
	if err != nil {
		logger.Logger.Warn("Block index read failed",
			zap.String("hash", hash.String()), zap.Error(err))
		return nil, false
	}
	return node, true
}
