package basketball

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"MatchPulse/internal/config"
	"MatchPulse/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestAdapter(t *testing.T, payload string) *Adapter {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)

	cfg := &config.SourceConfig{BaseURL: srv.URL, Path: "/games", Timeout: 5}
	return NewBasketballAdapter(cfg, testLogger()).(*Adapter)
}

func TestFetchMatchesNormalizes(t *testing.T) {
	payload := `{"games":[
		{"gameId":"BKB-200","teams":{"home":{"name":"Riverside Hawks","points":55},"away":{"name":"Metro Kings","points":48}},"state":"LIVE","period":3,"clock":"04:21"},
		{"gameId":"BKB-201","teams":{"home":{"name":"Bayside Storm"},"away":{"name":"Summit Wolves"}},"state":"SCHEDULED"},
		{"gameId":"BKB-202","teams":{"home":{"name":"Ironworks","points":99},"away":{"name":"Lakeshore Comets","points":101}},"state":"FINAL","period":4}
	]}`
	ad := newTestAdapter(t, payload)

	matches, err := ad.FetchMatches(context.Background())
	require.NoError(t, err)
	require.Len(t, matches, 3)

	m := matches[0]
	assert.Equal(t, "basketball-BKB-200", m.ID)
	assert.Equal(t, model.CategoryBasketball, m.Category)
	assert.Equal(t, 55, m.HomeScore)
	assert.Equal(t, 48, m.AwayScore)
	assert.Equal(t, model.StatusActive, m.Status)
	assert.Equal(t, "Period 3 (04:21)", m.Progress)

	assert.Equal(t, model.StatusPending, matches[1].Status)
	assert.Equal(t, model.StatusConcluded, matches[2].Status)
	assert.Equal(t, "Final", matches[2].Progress)
}

func TestUnknownStateFallsBackToPending(t *testing.T) {
	payload := `{"games":[{"gameId":"BKB-203","teams":{"home":{"name":"Redhill Giants"},"away":{"name":"Canyon Heat"}},"state":"SUSPENDED"}]}`
	ad := newTestAdapter(t, payload)

	matches, err := ad.FetchMatches(context.Background())
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, model.StatusPending, matches[0].Status)
}
