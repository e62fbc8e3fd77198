package research

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/futig/legaldoc-assistant/internal/config"
	"github.com/futig/legaldoc-assistant/internal/entity"
	"github.com/futig/legaldoc-assistant/internal/integration/common"
	pkghttp "github.com/futig/legaldoc-assistant/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/time/rate"
)

// Searcher runs a web text search
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]entity.SearchResult, error)
}

const (
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	uddgPrefix       = "//duckduckgo.com/l/?uddg="
)

// DuckDuckGoSearcher queries the DuckDuckGo HTML endpoint, no API key needed
type DuckDuckGoSearcher struct {
	connector *pkghttp.Connector
	endpoint  string
	limiter   *rate.Limiter
}

func NewDuckDuckGoSearcher(cfg config.ResearchConfig, logger *zap.Logger) *DuckDuckGoSearcher {
	return &DuckDuckGoSearcher{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger,
			pkghttp.WithDefaultHeader("User-Agent", browserUserAgent),
			pkghttp.WithDefaultHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"),
			pkghttp.WithDefaultHeader("Accept-Language", "en-US,en;q=0.5"),
		),
		endpoint:  cfg.SearchEndpoint,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}
}

func (s *DuckDuckGoSearcher) Search(ctx context.Context, query string, maxResults int) ([]entity.SearchResult, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("search rate limit: %w", err)
	}

	ctxzap.Debug(ctx, "web search", zap.String("query", query))

	body, err := s.connector.DoRaw(ctx, http.MethodGet, s.endpoint, url.Values{"q": {query}})
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}

	return parseResults(string(body), maxResults)
}

// parseResults extracts hits from the DuckDuckGo result page
func parseResults(page string, maxResults int) ([]entity.SearchResult, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse search page: %w", err)
	}

	var results []entity.SearchResult

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if len(results) >= maxResults {
			return
		}
		if n.Type == html.ElementNode && n.Data == "div" && hasClass(n, "result") && hasClass(n, "results_links") {
			if r := extractResult(n); r.Link != "" && r.Title != "" {
				results = append(results, r)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return results, nil
}

func extractResult(n *html.Node) entity.SearchResult {
	var r entity.SearchResult

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case hasClass(n, "result__a"):
				r.Link = attr(n, "href")
				r.Title = textContent(n)
			case hasClass(n, "result__snippet"):
				r.Body = textContent(n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	r.Link = decodeRedirect(r.Link)
	return r
}

// decodeRedirect unwraps the uddg redirect links DuckDuckGo returns
func decodeRedirect(link string) string {
	if !strings.HasPrefix(link, uddgPrefix) {
		return link
	}
	decoded, err := url.QueryUnescape(strings.TrimPrefix(link, uddgPrefix))
	if err != nil {
		return link
	}
	if idx := strings.Index(decoded, "&"); idx > 0 {
		decoded = decoded[:idx]
	}
	return decoded
}

func hasClass(n *html.Node, class string) bool {
	for _, f := range strings.Fields(attr(n, "class")) {
		if f == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				sb.WriteString(t)
				sb.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
