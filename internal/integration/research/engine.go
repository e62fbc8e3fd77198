package research

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/bytedance/sonic"
	"github.com/futig/legaldoc-assistant/internal/config"
	"github.com/futig/legaldoc-assistant/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const timestampLayout = "2006-01-02 15:04:05"

// Engine researches jurisdiction specific requirements for a document type
type Engine struct {
	searcher   Searcher
	cache      *cache.Cache
	maxResults int
	outputDir  string
	now        func() time.Time
	logger     *zap.Logger
}

type EngineOption func(*Engine)

// WithClock replaces time.Now, used by tests
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

func NewEngine(cfg config.ResearchConfig, searcher Searcher, logger *zap.Logger, opts ...EngineOption) *Engine {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 5
	}

	e := &Engine{
		searcher:   searcher,
		cache:      cache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		maxResults: maxResults,
		outputDir:  cfg.OutputDir,
		now:        time.Now,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Research runs the four aspect queries and assembles a record.
// Failing queries are skipped, ErrResearchUnavailable is returned only
// when none of them produced results.
func (e *Engine) Research(ctx context.Context, docType entity.DocumentTypeID, country string) (*entity.ResearchRecord, error) {
	key := cacheKey(docType, country)
	if cached, ok := e.cache.Get(key); ok {
		ctxzap.Debug(ctx, "research cache hit", zap.String("key", key))
		return cached.(*entity.ResearchRecord), nil
	}

	ctxzap.Info(ctx, "researching localization requirements",
		zap.String("document_type", string(docType)),
		zap.String("country", country),
	)

	record := &entity.ResearchRecord{
		Country:           country,
		DocumentType:      docType,
		LegalRequirements: []string{},
		TemplateStructure: []string{},
		KeyClauses:        []string{},
		ComplianceNotes:   []string{},
		Sources:           []entity.Source{},
		LastUpdated:       e.now(),
	}

	queries := buildQueries(docType, country)
	var (
		answered int
		lastErr  error
	)
	for _, a := range aspects {
		results, err := e.searcher.Search(ctx, queries[a], e.maxResults)
		if err != nil {
			ctxzap.Warn(ctx, "search failed", zap.String("query", queries[a]), zap.Error(err))
			lastErr = err
			continue
		}
		if len(results) == 0 {
			continue
		}
		answered++

		findings := extract(a, results)
		switch a {
		case aspectLegalRequirements:
			record.LegalRequirements = findings
		case aspectTemplateStructure:
			record.TemplateStructure = findings
		case aspectKeyClauses:
			record.KeyClauses = findings
		case aspectCompliance:
			record.ComplianceNotes = findings
		}
		record.Sources = appendSources(record.Sources, results)
	}

	if answered == 0 {
		if lastErr != nil {
			return nil, fmt.Errorf("%w: %v", entity.ErrResearchUnavailable, lastErr)
		}
		return nil, entity.ErrResearchUnavailable
	}

	e.cache.SetDefault(key, record)

	if e.outputDir != "" {
		if path, err := e.save(record); err != nil {
			ctxzap.Warn(ctx, "save research record failed", zap.Error(err))
		} else {
			ctxzap.Info(ctx, "research record saved", zap.String("path", path))
		}
	}

	return record, nil
}

// Guidance returns the research formatted for display and prompting
func (e *Engine) Guidance(ctx context.Context, docType entity.DocumentTypeID, country string) (string, error) {
	record, err := e.Research(ctx, docType, country)
	if err != nil {
		return "", err
	}
	return FormatGuidance(record), nil
}

func (e *Engine) save(record *entity.ResearchRecord) (string, error) {
	if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create research dir: %w", err)
	}

	data, err := sonic.ConfigStd.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal research record: %w", err)
	}

	name := fmt.Sprintf("localization_research_%s_%s_%s.json",
		fileSlug(string(record.DocumentType)),
		fileSlug(record.Country),
		record.LastUpdated.Format("20060102_150405"),
	)
	path := filepath.Join(e.outputDir, name)
	if rel, err := filepath.Rel(e.outputDir, path); err != nil || rel != name {
		return "", fmt.Errorf("research record path %q outside %q", path, e.outputDir)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write research record: %w", err)
	}
	return path, nil
}

// fileSlug keeps letters and digits, everything else collapses into one underscore
func fileSlug(s string) string {
	var b strings.Builder
	pending := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	if b.Len() == 0 {
		return "unknown"
	}
	return b.String()
}

func cacheKey(docType entity.DocumentTypeID, country string) string {
	return string(docType) + ":" + strings.ToLower(strings.TrimSpace(country))
}
