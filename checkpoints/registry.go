package checkpoints

import (
	"errors"
	"fmt"

	"checkpoint-node/models"
)

// CheckpointSet is one network's checkpoint table. It is immutable once built.
type CheckpointSet struct {
	entries  []models.CheckpointEntry // ascending by height
	byHeight map[int64]models.Hash
	lastTime int64   // unix timestamp of the last checkpoint block
	lastTx   int64   // cumulative tx count at the last checkpoint
	txPerDay float64 // expected tx rate after the last checkpoint
}

// NewCheckpointSet validates and copies entries into a new set. Entries must be
// sorted by strictly increasing height and carry unique hashes.
func NewCheckpointSet(entries []models.CheckpointEntry, lastTime, lastTx int64, txPerDay float64) (*CheckpointSet, error) {
	if len(entries) == 0 {
		return nil, errors.New("checkpoint set has no entries")
	}
	if lastTime < 0 || lastTx < 0 || txPerDay < 0 {
		return nil, fmt.Errorf("negative checkpoint metadata: time=%d txs=%d txs/day=%f", lastTime, lastTx, txPerDay)
	}

	set := &CheckpointSet{
		entries:  make([]models.CheckpointEntry, len(entries)),
		byHeight: make(map[int64]models.Hash, len(entries)),
		lastTime: lastTime,
		lastTx:   lastTx,
		txPerDay: txPerDay,
	}
	seen := make(map[models.Hash]int64, len(entries))
	for i, e := range entries {
		if e.Height < 0 {
			return nil, fmt.Errorf("checkpoint %d has negative height %d", i, e.Height)
		}
		if i > 0 && e.Height <= entries[i-1].Height {
			return nil, fmt.Errorf("checkpoint heights not strictly increasing: %d follows %d", e.Height, entries[i-1].Height)
		}
		if h, ok := seen[e.Hash]; ok {
			return nil, fmt.Errorf("checkpoint hash %s repeated at heights %d and %d", e.Hash, h, e.Height)
		}
		seen[e.Hash] = e.Height
		set.entries[i] = e
		set.byHeight[e.Height] = e.Hash
	}
	return set, nil
}

// MustCheckpointSet is NewCheckpointSet for compiled-in tables. It panics on error.
func MustCheckpointSet(entries []models.CheckpointEntry, lastTime, lastTx int64, txPerDay float64) *CheckpointSet {
	set, err := NewCheckpointSet(entries, lastTime, lastTx, txPerDay)
	if err != nil {
		panic("invalid checkpoint table: " + err.Error())
	}
	return set
}

// Entries returns a copy of the table in ascending height order
func (s *CheckpointSet) Entries() []models.CheckpointEntry {
	out := make([]models.CheckpointEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *CheckpointSet) Len() int {
	return len(s.entries)
}

// Lookup returns the checkpointed hash at height, if there is one
func (s *CheckpointSet) Lookup(height int64) (models.Hash, bool) {
	h, ok := s.byHeight[height]
	return h, ok
}

// Highest returns the checkpoint with the greatest height
func (s *CheckpointSet) Highest() models.CheckpointEntry {
	return s.entries[len(s.entries)-1]
}

// LastCheckpointTime is the unix timestamp of the last checkpoint block
func (s *CheckpointSet) LastCheckpointTime() int64 {
	return s.lastTime
}

// TransactionsLastCheckpoint is the number of transactions between genesis and
// the last checkpoint
func (s *CheckpointSet) TransactionsLastCheckpoint() int64 {
	return s.lastTx
}

func (s *CheckpointSet) TransactionsPerDay() float64 {
	return s.txPerDay
}

func entry(height int64, hash string) models.CheckpointEntry {
	return models.CheckpointEntry{Height: height, Hash: models.MustParseHash(hash)}
}

// What makes a good checkpoint block?
// + surrounded by blocks with reasonable timestamps
// + contains no strange transactions
var mainNet = MustCheckpointSet([]models.CheckpointEntry{
	entry(0, "cb016c109bd77fcaa9db94f2bf7caf7d6db74646e0439d3760706d2fb47d9512"),
	entry(25, "6a1e03792d7fb1c8d6a3201fd1a9caaa3db51169723f6d3cda9438d680f584ce"),
	entry(50, "28fb8caec56a491d9427fe04a3b644ed85ba21b04cbc9a8ceca145c7b6c274b6"),
	entry(75, "a0cfd5fc18e9fded55a8095be9af519fcf9a21ada215fcfb02f87519456e817f"),
	entry(100, "6a3446a45883323b433eadde46cfb4dd0d56fbac94302db4170cec8b7455d447"),
	entry(250, "30639dcd17dff933d85388ff545546029286a563c2f8cdb83cd1ddb74d4df86e"),
	entry(500, "0bd2051da3e80080e40398a09ea88ed5b3a52e872e87b5bde78820662e557b12"),
	entry(750, "da1ddb7b9b5c4b8ed1714246f994cb64561500eeb91a88f4582164475ae5b06e"),
	entry(1000, "74442db27eb6fd5a7abd1b0e263a440754dda3e53bad5ab3af7345d9be502168"),
	entry(2500, "5d74d8a850cd5328c7ac753786dbb443829fd2477591edf7cae34dcc1a786a57"),
	entry(5000, "e8b5202a8205841ab77431341deef46fec87c1d5862c6e9aa77820192bf39502"),
	entry(7500, "4aeec0a3ac345cc83a193622372a26f85708a94634417235476459db157f0a1c"),
	entry(10000, "8d07c486c1f259722333f425b7eb3dd088e05672b352c2f7bbf383ed86256f56"),
	entry(20000, "80947326a70449622f0c2de2ae20373abcdb56e98853e82104d716ea4e1454bf"),
	entry(30000, "8ec0ba418e3bc88159e65a55bd0cafc5532c5dffc54edabf5d0cee726a8468cb"),
	entry(40000, "16501c373ced2d426d9b620f61b43f793f9ce422789d505f16b1d4c2730582b7"),
	entry(50000, "48c2e1c478b34b5ea1e957cc3301c46556edebee5127a1e814241e07e433e392"),
	entry(60000, "e2eeb07ca3535b00a5f63fd2aa5860682e488641e533e1b1ccf5293ef1a473d3"),
},
	1526196289, // unix timestamp of the last checkpoint block
	0,          // transactions between genesis and the last checkpoint
	1.0,        // estimated transactions per day after the last checkpoint
)

var testNet = MustCheckpointSet([]models.CheckpointEntry{
	entry(0, "afca7e37d42c8ac179edfdf671b86c151a537e9b045ba8e0f3a92b02b31d70c7"),
}, 1526196273, 0, 1.0)

// Active returns the checkpoint set for the given network. Anything other than
// the test network selects main.
func Active(net models.Network) *CheckpointSet {
	if net == models.TestNet {
		return testNet
	}
	return mainNet
}
