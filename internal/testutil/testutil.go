package testutil

import (
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/rafa/digimon-searcher/internal/api"
	"github.com/rafa/digimon-searcher/internal/config"
	"github.com/rafa/digimon-searcher/internal/dataset"
	"github.com/rafa/digimon-searcher/internal/domain"
	"github.com/rafa/digimon-searcher/internal/service"
)

// TestServer runs the full router over an in-memory store.
type TestServer struct {
	Server *httptest.Server
	Config *config.Config
	Store  *dataset.Store
}

// NewTestServer wires config, store, service and router the way
// cmd/server does, seeded with the given records.
func NewTestServer(t *testing.T, digimons []domain.Digimon) *TestServer {
	t.Helper()

	cfg := TestConfig()
	log := zap.NewNop().Sugar()
	store := dataset.New(digimons)
	svc := service.NewDigimonService(store, cfg, log)
	router := api.NewRouter(svc, cfg, log)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &TestServer{Server: srv, Config: cfg, Store: store}
}

// TestConfig returns the configuration handlers see in tests.
func TestConfig() *config.Config {
	return &config.Config{
		Port:               "0",
		Environment:        "test",
		DefaultListLimit:   20,
		DefaultSearchLimit: 8,
		ListOrder:          config.OrderStable,
		FuzzyThreshold:     3,
	}
}

// APIURL builds a URL under the versioned API prefix.
func (ts *TestServer) APIURL(path string) string {
	return ts.Server.URL + "/api/v1" + path
}
