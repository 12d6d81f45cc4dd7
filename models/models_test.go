package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkpoint-node/models"
)

const genesis = "cb016c109bd77fcaa9db94f2bf7caf7d6db74646e0439d3760706d2fb47d9512"

func TestParseHash(t *testing.T) {
	h, err := models.ParseHash(genesis)
	require.NoError(t, err)
	assert.Equal(t, genesis, h.String())
	assert.Equal(t, byte(0xcb), h[0])

	prefixed, err := models.ParseHash("0x" + genesis)
	require.NoError(t, err)
	assert.Equal(t, h, prefixed)

	for _, bad := range []string{"", "cb01", genesis + "00", "zz" + genesis[2:]} {
		_, err := models.ParseHash(bad)
		assert.Error(t, err, "input %q", bad)
	}
	assert.Panics(t, func() { models.MustParseHash("nope") })
}

func TestHashJSON(t *testing.T) {
	node := models.BlockIndexNode{Hash: models.MustParseHash(genesis), Height: 0, ChainTx: 1}
	data, err := json.Marshal(node)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"hash":"`+genesis+`"`)

	var back models.BlockIndexNode
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, node, back)
	assert.True(t, back.PrevHash.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"hash":"abc"}`), &back))
}

func TestParseNetwork(t *testing.T) {
	for in, want := range map[string]models.Network{
		"main": models.MainNet, "mainnet": models.MainNet,
		"test": models.TestNet, "testnet": models.TestNet,
	} {
		got, err := models.ParseNetwork(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := models.ParseNetwork("regtest")
	assert.Error(t, err)
}
