package research

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/futig/legaldoc-assistant/internal/config"
	"github.com/futig/legaldoc-assistant/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSearcher struct {
	queries []string
	results map[string][]entity.SearchResult
	err     error
}

func (f *fakeSearcher) Search(_ context.Context, query string, _ int) ([]entity.SearchResult, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.results[query]; ok {
		return r, nil
	}
	return f.results["*"], nil
}

var fixedNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func newTestEngine(s Searcher, outputDir string) *Engine {
	cfg := config.ResearchConfig{MaxResults: 5, CacheTTL: time.Hour, OutputDir: outputDir}
	return NewEngine(cfg, s, zap.NewNop(), WithClock(func() time.Time { return fixedNow }))
}

func TestExtract(t *testing.T) {
	results := []entity.SearchResult{
		{Body: "Short one. An NDA must include a definition of confidential information! Other text here"},
		{Body: "An NDA must include a definition of confidential information. It is mandatory to sign it in writing."},
	}

	got := extract(aspectLegalRequirements, results)

	assert.Equal(t, []string{
		"An NDA must include a definition of confidential information",
		"It is mandatory to sign it in writing",
	}, got)
}

func TestExtract_Cap(t *testing.T) {
	var results []entity.SearchResult
	for i := 0; i < 15; i++ {
		results = append(results, entity.SearchResult{
			Body: "Compliance with regulation number " + strings.Repeat("x", i+1) + " is expected",
		})
	}

	assert.Len(t, extract(aspectCompliance, results), maxFindings)
}

func TestBuildQueries(t *testing.T) {
	q := buildQueries(entity.DocumentNDA, "Germany")
	assert.Equal(t, "Germany NDA legal requirements confidentiality agreement law", q[aspectLegalRequirements])
	assert.Len(t, q, 4)

	generic := buildQueries("lease_extension", "France")
	assert.Equal(t, "France lease_extension compliance requirements", generic[aspectCompliance])
}

func TestEngine_Research(t *testing.T) {
	s := &fakeSearcher{results: map[string][]entity.SearchResult{
		"*": {
			{Title: "Guide", Link: "https://a.example", Body: "Every lease agreement must include the rent amount. The structure follows a template."},
			{Title: "Guide copy", Link: "https://a.example", Body: "duplicate link"},
			{Title: "Law", Link: "https://b.example", Body: "Tenancy law regulation applies to all residential contracts."},
		},
	}}
	dir := t.TempDir()
	e := newTestEngine(s, dir)

	r, err := e.Research(context.Background(), entity.DocumentResidentialLease, "Germany")
	require.NoError(t, err)

	assert.Len(t, s.queries, 4)
	assert.Equal(t, fixedNow, r.LastUpdated)
	assert.Contains(t, r.LegalRequirements, "Every lease agreement must include the rent amount")
	assert.NotEmpty(t, r.ComplianceNotes)
	require.Len(t, r.Sources, 2)
	assert.True(t, strings.HasSuffix(r.Sources[0].Snippet, "..."))

	// cached by type and case-insensitive country
	_, err = e.Research(context.Background(), entity.DocumentResidentialLease, "germany")
	require.NoError(t, err)
	assert.Len(t, s.queries, 4)

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "localization_research_residential_lease_Germany_20240301_093000.json", files[0].Name())

	data, err := os.ReadFile(filepath.Join(dir, files[0].Name()))
	require.NoError(t, err)
	var saved entity.ResearchRecord
	require.NoError(t, sonic.Unmarshal(data, &saved))
	assert.Equal(t, "Germany", saved.Country)
}

func TestEngine_ResearchUnavailable(t *testing.T) {
	t.Run("all searches fail", func(t *testing.T) {
		e := newTestEngine(&fakeSearcher{err: errors.New("offline")}, "")

		_, err := e.Research(context.Background(), entity.DocumentNDA, "Japan")
		assert.ErrorIs(t, err, entity.ErrResearchUnavailable)
	})

	t.Run("no results", func(t *testing.T) {
		e := newTestEngine(&fakeSearcher{}, "")

		_, err := e.Guidance(context.Background(), entity.DocumentNDA, "Japan")
		assert.ErrorIs(t, err, entity.ErrResearchUnavailable)
	})
}

func TestFormatGuidance(t *testing.T) {
	r := &entity.ResearchRecord{
		Country:           "Germany",
		DocumentType:      entity.DocumentResidentialLease,
		LegalRequirements: []string{"a", "b", "c", "d", "e", "f"},
		Sources: []entity.Source{
			{Title: "One", URL: "https://1.example"},
			{Title: "Two", URL: "https://2.example"},
			{Title: "Three", URL: "https://3.example"},
			{Title: "Four", URL: "https://4.example"},
		},
		LastUpdated: fixedNow,
	}

	g := FormatGuidance(r)

	assert.True(t, strings.HasPrefix(g, "🌍 **LOCALIZATION RESEARCH FOR GERMANY - Residential Lease**"))
	assert.Contains(t, g, "• e\n")
	assert.NotContains(t, g, "• f\n")
	assert.Contains(t, g, "• Standard template structure recommended")
	assert.Contains(t, g, "• Standard clauses recommended")
	assert.Contains(t, g, "• General compliance standards apply")
	assert.Contains(t, g, "• Three: https://3.example")
	assert.NotContains(t, g, "Four")
	assert.True(t, strings.HasSuffix(g, "⏰ **Research completed:** 2024-03-01 09:30:00"))
}

func TestEngine_SaveKeepsRecordInOutputDir(t *testing.T) {
	s := &fakeSearcher{results: map[string][]entity.SearchResult{
		"*": {{Title: "Law", Link: "https://b.example", Body: "Confidentiality law regulation applies to every agreement."}},
	}}
	root := t.TempDir()
	dir := filepath.Join(root, "research", "out")
	e := newTestEngine(s, dir)

	_, err := e.Guidance(context.Background(), entity.DocumentNDA, "x/../../../escaped")
	require.NoError(t, err)

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "localization_research_nda_x_escaped_20240301_093000.json", files[0].Name())

	_, err = os.Stat(filepath.Join(root, "escaped_20240301_093000.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestFileSlug(t *testing.T) {
	assert.Equal(t, "United_States", fileSlug("United States"))
	assert.Equal(t, "Österreich", fileSlug("Österreich"))
	assert.Equal(t, "etc_passwd", fileSlug("../../etc/passwd"))
	assert.Equal(t, "unknown", fileSlug("../.."))
}
