package common

import (
	"github.com/futig/legaldoc-assistant/internal/config"
	pkgHTTP "github.com/futig/legaldoc-assistant/pkg/http"
	"go.uber.org/zap"
)

// NewBaseConnector builds a connector for an outbound service from its env settings.
// Extra options are applied after the configured ones.
func NewBaseConnector(cfg config.HTTPClientConfig, logger *zap.Logger, extra ...pkgHTTP.HttpOpts) *pkgHTTP.Connector {
	opts := []pkgHTTP.HttpOpts{
		pkgHTTP.WithRequestTimeout(cfg.RequestTimeout),
		pkgHTTP.WithConnClientTimeout(cfg.ConnTimeout),
		pkgHTTP.WithClientKeepAlive(cfg.KeepAlive),
		pkgHTTP.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkgHTTP.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkgHTTP.WithAuthToken(cfg.Token),
		pkgHTTP.WithRequestLogging(),
	}

	return pkgHTTP.NewConnector(
		&pkgHTTP.ConnectorConfig{Logger: logger, BaseURL: cfg.Url},
		append(opts, extra...)...,
	)
}
