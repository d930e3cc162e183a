package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/foomo/assets/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func decodeOutput(t *testing.T, out string) []*content.Asset {
	t.Helper()
	var assets []*content.Asset
	require.NoError(t, json.Unmarshal([]byte(out), &assets))
	return assets
}

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))
	return path
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "latest\n", out)
}

func TestInspectStdin(t *testing.T) {
	out, err := execute(t, `{"display_name":"photo.JPG","locked":true}`, "inspect")
	require.NoError(t, err)

	assets := decodeOutput(t, out)
	require.Len(t, assets, 1)
	assert.Equal(t, "JPG", assets[0].AssetType())
	assert.True(t, assets[0].Locked())
}

func TestInspectFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `[{"display_name":"archive.tar.gz"},{"display_name":"README"}]`)
	b := writeFile(t, dir, "b.json", `{"display_name":"slides.pdf","course":"DemoX"}`)

	out, err := execute(t, "", "inspect", "--indent=false", a, b)
	require.NoError(t, err)

	assets := decodeOutput(t, out)
	require.Len(t, assets, 3)
	assert.Equal(t, "GZ", assets[0].AssetType())
	assert.Equal(t, "", assets[1].AssetType())
	assert.Equal(t, "PDF", assets[2].AssetType())
	assert.Equal(t, "DemoX", assets[2].Get("course"))
}

func TestInspectSource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "meta/a.json", `{"display_name":"clip.mp4"}`)

	out, err := execute(t, "", "inspect", "--source", dir, "meta/a.json")
	require.NoError(t, err)
	assets := decodeOutput(t, out)
	require.Len(t, assets, 1)
	assert.Equal(t, "MP4", assets[0].AssetType())
}

func TestInspectErrors(t *testing.T) {
	dir := t.TempDir()
	broken := writeFile(t, dir, "broken.json", `{"display_name":`)
	alsoBroken := writeFile(t, dir, "also.json", `nope`)

	_, err := execute(t, "", "inspect", broken, alsoBroken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.json")
	assert.Contains(t, err.Error(), "also.json")

	_, err = execute(t, "", "inspect", filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "images/a.png", "a")
	writeFile(t, dir, "images/b.JPG", "b")
	writeFile(t, dir, "docs/c.pdf", "c")
	metricsFile := filepath.Join(t.TempDir(), "assets.prom")

	out, err := execute(t, "", "scan", dir,
		"--type", "png", "--type", "jpg",
		"--url-prefix", "/c4x/edX/DemoX/asset/",
		"--metrics-file", metricsFile,
	)
	require.NoError(t, err)

	assets := decodeOutput(t, out)
	require.Len(t, assets, 2)
	assert.Equal(t, "a.png", assets[0].DisplayName())
	assert.Equal(t, "PNG", assets[0].AssetType())
	assert.Equal(t, "/c4x/edX/DemoX/asset/images/a.png", assets[0].URL())
	assert.Equal(t, "/static/a.png", assets[0].PortableURL())
	assert.NotEmpty(t, assets[0].DateAdded())
	assert.Equal(t, "JPG", assets[1].AssetType())

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "assets_catalog_assets_count")
}

func TestScanPrefix(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "images/a.png", "a")
	writeFile(t, dir, "docs/c.pdf", "c")

	out, err := execute(t, "", "scan", dir, "--prefix", "docs/")
	require.NoError(t, err)
	assets := decodeOutput(t, out)
	require.Len(t, assets, 1)
	assert.Equal(t, "PDF", assets[0].AssetType())
}

func TestScanMaxSize(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.png", "a")
	writeFile(t, dir, "b.png", "too large")

	out, err := execute(t, "", "scan", dir, "--max-size", "4")
	require.NoError(t, err)
	assets := decodeOutput(t, out)
	require.Len(t, assets, 1)
	assert.Equal(t, "a.png", assets[0].DisplayName())
}

func TestScanMissingDir(t *testing.T) {
	_, err := execute(t, "", "scan", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
