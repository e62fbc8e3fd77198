package research

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/futig/legaldoc-assistant/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const resultPage = `<html><body>
<div class="result results_links results_links_deep web-result">
  <h2 class="result__title">
    <a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.de%2Fmietrecht&amp;rut=abc">German <b>rental</b> law</a>
  </h2>
  <a class="result__snippet" href="#">A lease must include the names of both parties.</a>
</div>
<div class="result results_links web-result">
  <a class="result__a" href="https://example.org/lease">Lease guide</a>
  <a class="result__snippet" href="#">Template structure overview.</a>
</div>
<div class="result results_links web-result">
  <a class="result__a" href="https://example.org/third">Third</a>
</div>
</body></html>`

func TestParseResults(t *testing.T) {
	results, err := parseResults(resultPage, 5)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "German rental law", results[0].Title)
	assert.Equal(t, "https://example.de/mietrecht", results[0].Link)
	assert.Equal(t, "A lease must include the names of both parties.", results[0].Body)

	assert.Equal(t, "https://example.org/lease", results[1].Link)
	assert.Empty(t, results[2].Body)
}

func TestParseResults_Limit(t *testing.T) {
	results, err := parseResults(resultPage, 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestDuckDuckGoSearcher_Search(t *testing.T) {
	var gotQuery, gotAgent string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/html/", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(resultPage)) //nolint:errcheck
	}))
	defer ts.Close()

	cfg := config.ResearchConfig{
		SearchEndpoint:    "/html/",
		RequestsPerSecond: 100,
		Burst:             1,
	}
	cfg.Url = ts.URL
	cfg.RequestTimeout = 5 * time.Second

	s := NewDuckDuckGoSearcher(cfg, zap.NewNop())
	results, err := s.Search(context.Background(), "Germany NDA template", 2)
	require.NoError(t, err)

	assert.Len(t, results, 2)
	assert.Equal(t, "Germany NDA template", gotQuery)
	assert.Contains(t, gotAgent, "Mozilla/5.0")
}

func TestDuckDuckGoSearcher_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer ts.Close()

	cfg := config.ResearchConfig{SearchEndpoint: "/html/", RequestsPerSecond: 100, Burst: 1}
	cfg.Url = ts.URL

	_, err := NewDuckDuckGoSearcher(cfg, zap.NewNop()).Search(context.Background(), "q", 5)
	assert.Error(t, err)
}

func TestDecodeRedirect(t *testing.T) {
	assert.Equal(t, "https://a.example/x?y=1", decodeRedirect("//duckduckgo.com/l/?uddg=https%3A%2F%2Fa.example%2Fx%3Fy%3D1&rut=z"))
	assert.Equal(t, "https://plain.example", decodeRedirect("https://plain.example"))
}
