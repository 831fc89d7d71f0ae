package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesxoliver/jamesxoliver.github.io/internal/config"
)

func newParser(t *testing.T, cli *CLI) *kong.Kong {
	t.Helper()
	parser, err := kong.New(cli, kong.Name("essaysite"), kong.Vars{"version": "test"})
	require.NoError(t, err)
	return parser
}

func TestParseConvertFlags(t *testing.T) {
	cli := &CLI{}
	ctx, err := newParser(t, cli).Parse([]string{"-c", "custom.yaml", "convert", "--source", "drafts", "--no-history"})
	require.NoError(t, err)

	assert.Equal(t, "convert", ctx.Command())
	assert.Equal(t, "custom.yaml", cli.Config)
	assert.Equal(t, "drafts", cli.Convert.Source)
	assert.True(t, cli.Convert.NoHistory)

	cfg := config.Default()
	cli.Convert.apply(cfg)
	assert.Equal(t, "drafts", cfg.Source.Dir)
	assert.Equal(t, config.HistoryNone, cfg.Source.History)
}

func TestParseDefaults(t *testing.T) {
	cli := &CLI{}
	ctx, err := newParser(t, cli).Parse([]string{"watch"})
	require.NoError(t, err)

	assert.Equal(t, "watch", ctx.Command())
	assert.Equal(t, "site.yaml", cli.Config)
	assert.Equal(t, 300*time.Millisecond, cli.Watch.Debounce)
	assert.False(t, cli.Verbose)
}

func TestParseSiteConfigCommandName(t *testing.T) {
	cli := &CLI{}
	ctx, err := newParser(t, cli).Parse([]string{"config", "-o", "out.yml"})
	require.NoError(t, err)
	assert.Equal(t, "config", ctx.Command())
	assert.Equal(t, "out.yml", cli.SiteConfig.Output)
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestSiteConfigCmdWritesConfig(t *testing.T) {
	dir := t.TempDir()
	docs := filepath.Join(dir, "docs")
	require.NoError(t, os.MkdirAll(docs, 0o750))
	nav := "nav_essays:\n  - Essays:\n      - Alpha: essays/essays/alpha.md\n"
	require.NoError(t, os.WriteFile(filepath.Join(docs, "_nav.yml"), []byte(nav), 0o600))

	out := filepath.Join(dir, "mkdocs.yml")
	cfgPath := writeConfig(t, dir, "output:\n  docs_dir: "+docs+"\n  site_config_file: "+out+"\n")

	require.NoError(t, (&SiteConfigCmd{}).Run(&Global{}, &CLI{Config: cfgPath}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "site_name: James Oliver")
	assert.Contains(t, string(data), "essays/essays/alpha.md")
}

func TestSiteConfigCmdWithoutFragment(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "mkdocs.yml")
	cfgPath := writeConfig(t, dir, "output:\n  docs_dir: "+filepath.Join(dir, "docs")+"\n  site_config_file: "+out+"\n")

	require.NoError(t, (&SiteConfigCmd{}).Run(&Global{}, &CLI{Config: cfgPath}))
	assert.NoFileExists(t, out)
}

func TestEnrichCmdInjectsAndWritesMetrics(t *testing.T) {
	dir := t.TempDir()
	site := filepath.Join(dir, "site")
	require.NoError(t, os.MkdirAll(site, 0o750))
	page := "<html>\n<head>\n<title>Home - James Oliver</title>\n</head>\n<body></body>\n</html>\n"
	require.NoError(t, os.WriteFile(filepath.Join(site, "index.html"), []byte(page), 0o600))

	metricsPath := filepath.Join(dir, "metrics", "enrich.prom")
	cfgPath := writeConfig(t, dir, "seo:\n  site_dir: "+site+"\n")

	cli := &CLI{Config: cfgPath, MetricsFile: metricsPath}
	require.NoError(t, (&EnrichCmd{}).Run(&Global{}, cli))

	html, err := os.ReadFile(filepath.Join(site, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), `<link rel="canonical" href="https://jamesxoliver.github.io/" />`)
	assert.FileExists(t, filepath.Join(site, "feed.xml"))

	prom, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "essaysite_pages_total")
}

func TestEnrichCmdMissingSiteDir(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "seo:\n  site_dir: "+filepath.Join(dir, "absent")+"\n")

	err := (&EnrichCmd{}).Run(&Global{}, &CLI{Config: cfgPath})
	require.Error(t, err)
}

func TestMetricsSinkDisabled(t *testing.T) {
	sink := (&CLI{}).newMetricsSink(config.Default())
	assert.Nil(t, sink.registry)
	sink.flush()
}
