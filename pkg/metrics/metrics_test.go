package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteToTextfile(t *testing.T) {
	CatalogAssetsCounter.WithLabelValues("PNG").Inc()
	CatalogDuration.WithLabelValues("test").Observe(0.5)

	filename := filepath.Join(t.TempDir(), "assets.prom")
	require.NoError(t, WriteToTextfile(filename))

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(data), `assets_catalog_assets_count{asset_type="PNG"}`)
	assert.Contains(t, string(data), `assets_catalog_run_duration_seconds_count{source="test"} 1`)
}
