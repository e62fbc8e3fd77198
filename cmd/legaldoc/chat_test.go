package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/futig/legaldoc-assistant/internal/builder"
	"github.com/futig/legaldoc-assistant/internal/config"
	"github.com/futig/legaldoc-assistant/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestComponents(t *testing.T) *builder.Components {
	t.Helper()

	cfg := &config.Config{
		EnableMocks: true,
		ConversationCfg: config.ConversationConfig{
			DefaultLanguage:  entity.LanguageEN,
			HistoryWindow:    10,
			MaxMessageLength: 4000,
		},
		SessionStoreCfg: config.SessionStoreConfig{TTL: time.Hour},
		ExportCfg: config.ExportConfig{
			Folder:        t.TempDir(),
			DefaultFormat: entity.FormatMarkdown,
		},
	}

	c, err := builder.NewComponents(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	return c
}

func newTestChat(c *builder.Components, out *bytes.Buffer) *chat {
	return &chat{
		sessions:      c.Sessions,
		exporter:      c.Exporter,
		defaultFormat: c.Config.ExportCfg.DefaultFormat,
		out:           out,
	}
}

func TestChat_DraftAndExport(t *testing.T) {
	c := newTestComponents(t)
	var out bytes.Buffer

	script := strings.Join([]string{
		"hello",
		"I need an NDA",
		"/state",
		"Acme GmbH",
		"Beta LLC",
		"customer lists",
		"partnership evaluation",
		"2024-01-15",
		"5 years",
		"Germany",
		"go ahead",
		"/fields",
		"/export",
		"/quit",
		"never read",
	}, "\n")

	require.NoError(t, newTestChat(c, &out).run(context.Background(), entity.LanguageEN, strings.NewReader(script)))

	output := out.String()
	assert.Contains(t, output, "state: INFORMATION_GATHERING")
	assert.Contains(t, output, "document type: nda")
	assert.Contains(t, output, "DISCLOSING PARTY: Acme GmbH")
	assert.Contains(t, output, "/export docx")
	assert.Contains(t, output, "disclosing_party: Acme GmbH")
	assert.Contains(t, output, "saved ")

	files, err := os.ReadDir(c.Config.ExportCfg.Folder)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, ".md", filepath.Ext(files[0].Name()))
}

func TestChat_Commands(t *testing.T) {
	c := newTestComponents(t)
	var out bytes.Buffer

	script := "/export pdf\n/language fr\n/language de\n/fields\n/bogus\n"

	require.NoError(t, newTestChat(c, &out).run(context.Background(), entity.LanguageEN, strings.NewReader(script)))

	output := out.String()
	assert.Contains(t, output, "error: document is not generated yet")
	assert.Contains(t, output, "error: unsupported language")
	assert.Contains(t, output, "assistant> Hallo!")
	assert.Contains(t, output, "no answers collected yet")
	assert.Contains(t, output, `unknown command "bogus"`)
}

func TestPrintCatalog(t *testing.T) {
	c := newTestComponents(t)
	var out bytes.Buffer

	require.NoError(t, printCatalog(&out, c.Sessions.ListDocumentTypes(entity.LanguageEN)))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.True(t, strings.HasPrefix(lines[1], "residential_lease"))
}
