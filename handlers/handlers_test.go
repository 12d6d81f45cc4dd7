package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"checkpoint-node/checkpoints"
	"checkpoint-node/db"
	"checkpoint-node/handlers"
	"checkpoint-node/logger"
	"checkpoint-node/models"
	"checkpoint-node/repository"
	"checkpoint-node/routers"
	"checkpoint-node/service"
)

const lastCheckpointTime = 1526196289

func testServer(t *testing.T, enabled bool) *mux.Router {
	t.Helper()
	logger.Logger = zap.NewNop()

	ldb, err := db.NewMemLevelDB()
	require.NoError(t, err)
	t.Cleanup(func() { ldb.Close() })

	repo := repository.NewBlockRepository(ldb)
	now := func() time.Time { return time.Unix(lastCheckpointTime+86400, 0) }
	svc := service.NewService(repo, models.MainNet, enabled, now)
	handler := handlers.NewHandler(svc)
	router := mux.NewRouter()
	routers.RegisterRoutes(router, handler)
	return router
}

func do(router *mux.Router, method, target string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func decode(t *testing.T, res *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &out), res.Body.String())
	return out
}

func checkpointHash(height int64) models.Hash {
	h, _ := checkpoints.Active(models.MainNet).Lookup(height)
	return h
}

func TestListCheckpoints(t *testing.T) {
	router := testServer(t, true)

	res := do(router, http.MethodGet, "/checkpoints", nil)
	require.Equal(t, http.StatusOK, res.Code)

	body := decode(t, res)
	assert.Equal(t, "main", body["network"])
	assert.Equal(t, true, body["enabled"])
	assert.Equal(t, float64(60000), body["total_blocks_estimate"])
	assert.Len(t, body["checkpoints"], 18)
}

func TestCheckBlock(t *testing.T) {
	router := testServer(t, true)
	good := checkpointHash(100).String()
	bad := models.Hash{1}.String()

	tests := []struct {
		name   string
		query  string
		status int
		valid  bool
	}{
		{"matching checkpoint", "?height=100&hash=" + good, http.StatusOK, true},
		{"wrong hash", "?height=100&hash=" + bad, http.StatusOK, false},
		{"no checkpoint at height", "?height=101&hash=" + bad, http.StatusOK, true},
		{"bad height", "?height=abc&hash=" + bad, http.StatusBadRequest, false},
		{"bad hash", "?height=100&hash=xyz", http.StatusBadRequest, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := do(router, http.MethodGet, "/checkpoints/check"+tt.query, nil)
			require.Equal(t, tt.status, res.Code, res.Body.String())
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.valid, decode(t, res)["valid"])
			}
		})
	}
}

func TestAcceptBlock(t *testing.T) {
	router := testServer(t, true)

	genesis := models.BlockIndexNode{Hash: checkpointHash(0), Height: 0, ChainTx: 1}
	res := do(router, http.MethodPost, "/blocks", genesis)
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())

	res = do(router, http.MethodPost, "/blocks", genesis)
	assert.Equal(t, http.StatusConflict, res.Code)

	res = do(router, http.MethodPost, "/blocks", models.BlockIndexNode{Hash: models.Hash{5}, Height: 25})
	assert.Equal(t, http.StatusUnprocessableEntity, res.Code)

	res = do(router, http.MethodPost, "/blocks", models.BlockIndexNode{Height: 3})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	req := httptest.NewRequest(http.MethodPost, "/blocks", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	res = do(router, http.MethodGet, "/blocks/"+genesis.Hash.String(), nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, genesis.Hash.String(), decode(t, res)["hash"])

	res = do(router, http.MethodGet, "/blocks/"+models.Hash{5}.String(), nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestAcceptBlock_EnforcementDisabled(t *testing.T) {
	router := testServer(t, false)

	res := do(router, http.MethodPost, "/blocks", models.BlockIndexNode{Hash: models.Hash{5}, Height: 25})
	assert.Equal(t, http.StatusCreated, res.Code)

	res = do(router, http.MethodGet, "/checkpoints/last", nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestGetLastCheckpoint(t *testing.T) {
	router := testServer(t, true)

	res := do(router, http.MethodGet, "/checkpoints/last", nil)
	assert.Equal(t, http.StatusNotFound, res.Code)

	for _, height := range []int64{0, 25} {
		res = do(router, http.MethodPost, "/blocks", models.BlockIndexNode{Hash: checkpointHash(height), Height: height})
		require.Equal(t, http.StatusCreated, res.Code)
	}

	res = do(router, http.MethodGet, "/checkpoints/last", nil)
	require.Equal(t, http.StatusOK, res.Code)
	body := decode(t, res)
	assert.Equal(t, float64(25), body["height"])
	assert.Equal(t, checkpointHash(25).String(), body["hash"])
}

func TestGetProgress(t *testing.T) {
	router := testServer(t, true)
	tip := models.BlockIndexNode{Hash: models.Hash{7}, Height: 60100, Time: lastCheckpointTime, ChainTx: 50}
	require.Equal(t, http.StatusCreated, do(router, http.MethodPost, "/blocks", tip).Code)

	res := do(router, http.MethodGet, "/sync/progress?hash="+tip.Hash.String(), nil)
	require.Equal(t, http.StatusOK, res.Code)
	body := decode(t, res)
	assert.InDelta(t, 250.0/255.0, body["progress"], 1e-9)
	assert.Equal(t, float64(60100), body["height"])
	assert.Equal(t, float64(60000), body["total_blocks_estimate"])

	res = do(router, http.MethodGet, "/sync/progress?hash="+models.Hash{8}.String(), nil)
	assert.Equal(t, http.StatusNotFound, res.Code)

	res = do(router, http.MethodGet, "/sync/progress", nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}
