package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"checkpoint-node/checkpoints"
	"checkpoint-node/logger"
	"checkpoint-node/models"
	"checkpoint-node/repository"

	"go.uber.org/zap"
)

var (
	ErrBlockExists   = errors.New("block already in index")
	ErrBlockNotFound = repository.ErrBlockNotFound
	ErrInvalidBlock  = errors.New("invalid block")
)

// ProgressReport is the sync progress estimate at one block
type ProgressReport struct {
	Hash                models.Hash `json:"hash"`
	Height              int64       `json:"height"`
	Progress            float64     `json:"progress"`
	TotalBlocksEstimate int64       `json:"total_blocks_estimate"`
}

// Service binds one network's checkpoints and the enforcement toggle to the
// block index.
type Service struct {
	repo    repository.BlockRepositoryInterface
	set     *checkpoints.CheckpointSet
	network models.Network
	enabled bool
	now     func() time.Time
	mux     sync.Mutex
}

func NewService(repo repository.BlockRepositoryInterface, network models.Network, enabled bool, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:    repo,
		set:     checkpoints.Active(network),
		network: network,
		enabled: enabled,
		now:     now,
	}
}

func (s *Service) Network() models.Network {
	return s.network
}

func (s *Service) Enabled() bool {
	return s.enabled
}

// Checkpoints returns the active checkpoint table
func (s *Service) Checkpoints() []models.CheckpointEntry {
	return s.set.Entries()
}

func (s *Service) CheckBlock(height int64, hash models.Hash) bool {
	return checkpoints.CheckBlock(s.set, height, hash, s.enabled)
}

// AcceptBlock gates a block index node on the checkpoints and stores it
func (s *Service) AcceptBlock(node *models.BlockIndexNode) error {
	if node.Hash.IsZero() {
		return fmt.Errorf("%w: missing hash", ErrInvalidBlock)
	}
	if node.Height < 0 || node.ChainTx < 0 || node.Time < 0 {
		return fmt.Errorf("%w: negative height, time or chain_tx", ErrInvalidBlock)
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	exists, err := s.repo.HasBlock(node.Hash)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrBlockExists, node.Hash)
	}

	if err := checkpoints.VerifyBlock(s.set, node.Height, node.Hash, s.enabled); err != nil {
		logger.Logger.Warn("Rejected block failing checkpoint",
			zap.Int64("height", node.Height), zap.String("hash", node.Hash.String()))
		return err
	}

	if err := s.repo.PutBlock(node); err != nil {
		return err
	}
	logger.Logger.Debug("Accepted block",
		zap.Int64("height", node.Height), zap.String("hash", node.Hash.String()))
	return nil
}

func (s *Service) Block(hash models.Hash) (*models.BlockIndexNode, error) {
	return s.repo.GetBlock(hash)
}

// Progress estimates sync progress at the stored block with the given hash
func (s *Service) Progress(hash models.Hash) (*ProgressReport, error) {
	node, err := s.repo.GetBlock(hash)
	if err != nil {
		return nil, err
	}
	return &ProgressReport{
		Hash:                node.Hash,
		Height:              node.Height,
		Progress:            checkpoints.EstimateProgress(node, s.now().Unix(), s.set),
		TotalBlocksEstimate: s.TotalBlocksEstimate(),
	}, nil
}

// LastCheckpoint returns the highest checkpoint block already in the index
func (s *Service) LastCheckpoint() (*models.BlockIndexNode, bool) {
	node := checkpoints.GetLastCheckpoint(s.repo, s.enabled, s.set)
	return node, node != nil
}

func (s *Service) TotalBlocksEstimate() int64 {
	return checkpoints.TotalBlocksEstimate(s.enabled, s.set)
}
