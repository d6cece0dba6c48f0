package transit_web

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func noEnvFile(t *testing.T) []string {
	return []string{"-env", filepath.Join(t.TempDir(), "missing.env")}
}

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestParseArgsDefaults(t *testing.T) {
	cfg, err := ParseArgs("transit-web", noEnvFile(t), io.Discard)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddress)
	assert.Equal(t, ":9091", cfg.TelemetryAddress)
	assert.Empty(t, cfg.CatalogPath)
	assert.False(t, cfg.Pprof)
	assert.Equal(t, DefaultConfig().Map, cfg.Map)
}

const devToml = `
listen = "127.0.0.1:9000"
catalog = "/srv/transit/catalog.yaml"
cors_origins = ["https://transit.example"]
pprof = true

[map]
zoom = 12
`

func TestParseArgsToml(t *testing.T) {
	path := writeFile(t, "transit.toml", devToml)

	cfg, err := ParseArgs("transit-web", append(noEnvFile(t), "-toml", path), io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddress)
	assert.Equal(t, ":9091", cfg.TelemetryAddress)
	assert.Equal(t, "/srv/transit/catalog.yaml", cfg.CatalogPath)
	assert.Equal(t, []string{"https://transit.example"}, cfg.CORSOrigins)
	assert.Equal(t, 12, cfg.Map.Zoom)
	assert.Equal(t, DefaultConfig().Map.TileURL, cfg.Map.TileURL)
	assert.True(t, cfg.Pprof)

	cfg, err = ParseArgs("transit-web", append(noEnvFile(t), "-toml", path, "-pprof=false"), io.Discard)
	require.NoError(t, err)
	assert.False(t, cfg.Pprof)
}

func TestParseArgsPrecedence(t *testing.T) {
	path := writeFile(t, "transit.toml", devToml)
	t.Setenv("TRANSIT_LISTEN_ADDR", "127.0.0.1:9100")
	t.Setenv("TRANSIT_CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("TRANSIT_MAP_ZOOM", "15")

	cfg, err := ParseArgs("transit-web", append(noEnvFile(t), "-toml", path), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9100", cfg.ListenAddress)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 15, cfg.Map.Zoom)

	cfg, err = ParseArgs("transit-web", append(noEnvFile(t), "-toml", path, "-listen", "127.0.0.1:9200", "-telemetry", ""), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9200", cfg.ListenAddress)
	assert.Empty(t, cfg.TelemetryAddress)
}

func TestParseArgsLoadsEnvFile(t *testing.T) {
	// godotenv writes into the process environment; register cleanup first.
	t.Setenv("TRANSIT_TILE_URL", "")
	require.NoError(t, os.Unsetenv("TRANSIT_TILE_URL"))

	envFile := writeFile(t, ".env", "TRANSIT_TILE_URL=https://tiles.example/{z}/{x}/{y}.png\n")

	cfg, err := ParseArgs("transit-web", []string{"-env", envFile}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "https://tiles.example/{z}/{x}/{y}.png", cfg.Map.TileURL)
}

func TestParseArgsVersion(t *testing.T) {
	var errOut bytes.Buffer
	_, err := ParseArgs("transit-web", []string{"-version"}, &errOut)
	assert.True(t, errors.Is(err, flag.ErrHelp))
	assert.Contains(t, errOut.String(), "transit-web: version dev")
}

func TestParseArgsRejectsInvalid(t *testing.T) {
	_, err := ParseArgs("transit-web", append(noEnvFile(t), "-listen", "nope"), io.Discard)
	assert.Error(t, err)

	t.Setenv("TRANSIT_MAP_ZOOM", "far")
	_, err = ParseArgs("transit-web", noEnvFile(t), io.Discard)
	assert.Error(t, err)

	t.Setenv("TRANSIT_MAP_ZOOM", "25")
	_, err = ParseArgs("transit-web", noEnvFile(t), io.Discard)
	assert.Error(t, err)
}

func TestParseArgsMissingToml(t *testing.T) {
	_, err := ParseArgs("transit-web", append(noEnvFile(t), "-toml", filepath.Join(t.TempDir(), "absent.toml")), io.Discard)
	assert.Error(t, err)
}

func TestMainExitCodes(t *testing.T) {
	assert.Equal(t, 0, Main("transit-web", []string{"-version"}, io.Discard, io.Discard))

	var errOut bytes.Buffer
	assert.Equal(t, -1, Main("transit-web", append(noEnvFile(t), "-listen", "nope"), io.Discard, &errOut))
	assert.Contains(t, errOut.String(), "Error:")
}
