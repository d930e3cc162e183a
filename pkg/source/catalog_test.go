package source

import (
	"context"
	"testing"
	"time"

	"github.com/foomo/assets/content"
	"github.com/foomo/assets/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type staticSource struct {
	objects []Object
	err     error
}

func (s *staticSource) List(context.Context, string) ([]Object, error) {
	return s.objects, s.err
}

func (s *staticSource) Read(context.Context, string) ([]byte, error) {
	return nil, s.err
}

func (s *staticSource) Close() error {
	return nil
}

func TestCatalog_Asset(t *testing.T) {
	modTime := time.Date(2015, 3, 14, 9, 26, 53, 0, time.FixedZone("CET", 3600))
	c := NewCatalog(zaptest.NewLogger(t), "test", &staticSource{},
		WithURLPrefix("/c4x/edX/DemoX/asset/"),
	)

	a := c.Asset(Object{Key: "images/photo.JPG", ModTime: modTime})
	assert.Equal(t, "photo.JPG", a.DisplayName())
	assert.Equal(t, "JPG", a.AssetType())
	assert.Equal(t, "/c4x/edX/DemoX/asset/images/photo.JPG", a.URL())
	assert.Equal(t, "/static/photo.JPG", a.PortableURL())
	assert.Equal(t, "2015-03-14T08:26:53Z", a.DateAdded())
	assert.False(t, a.Locked())

	a = c.Asset(Object{Key: "README"})
	assert.Equal(t, "", a.AssetType())
	assert.Equal(t, "", a.DateAdded())
}

func TestCatalog_AssetDateLayout(t *testing.T) {
	c := NewCatalog(zaptest.NewLogger(t), "test", &staticSource{},
		WithDateLayout("Jan 02, 2006"),
		WithPortablePrefix("/assets/"),
	)
	a := c.Asset(Object{Key: "a.png", ModTime: time.Date(2015, 3, 14, 0, 0, 0, 0, time.UTC)})
	assert.Equal(t, "Mar 14, 2015", a.DateAdded())
	assert.Equal(t, "/assets/a.png", a.PortableURL())
}

func TestCatalog_Assets(t *testing.T) {
	ctx := context.Background()
	source := newTestBlobSource(t, "", map[string]string{
		"a.png":    "a",
		"b.PNG":    "b",
		"c.pdf":    "c",
		"d.tar.gz": "d",
	})
	c := NewCatalog(zaptest.NewLogger(t), "test", source, WithTypes(".png", "gz", " "))

	before := testutil.ToFloat64(metrics.CatalogAssetsCounter.WithLabelValues("PNG"))
	skipped := testutil.ToFloat64(metrics.CatalogSkippedCounter.WithLabelValues("PDF", SkipReasonType))

	assets, err := c.Assets(ctx, "")
	require.NoError(t, err)
	require.Len(t, assets, 3)
	assert.Equal(t, "a.png", assets[0].DisplayName())
	assert.Equal(t, "b.PNG", assets[1].DisplayName())
	assert.Equal(t, "GZ", assets[2].AssetType())

	assert.Equal(t, before+2, testutil.ToFloat64(metrics.CatalogAssetsCounter.WithLabelValues("PNG")))
	assert.Equal(t, skipped+1, testutil.ToFloat64(metrics.CatalogSkippedCounter.WithLabelValues("PDF", SkipReasonType)))
}

func TestCatalog_AssetsMaxSize(t *testing.T) {
	ctx := context.Background()
	source := &staticSource{objects: []Object{
		{Key: "small.png", Size: 10},
		{Key: "exact.png", Size: 100},
		{Key: "huge.mov", Size: 101},
	}}
	c := NewCatalog(zaptest.NewLogger(t), "test", source, WithMaxSize(100))

	skipped := testutil.ToFloat64(metrics.CatalogSkippedCounter.WithLabelValues("MOV", SkipReasonSize))
	assets, err := c.Assets(ctx, "")
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, "small.png", assets[0].DisplayName())
	assert.Equal(t, "exact.png", assets[1].DisplayName())
	assert.Equal(t, skipped+1, testutil.ToFloat64(metrics.CatalogSkippedCounter.WithLabelValues("MOV", SkipReasonSize)))

	// no limit by default
	assets, err = NewCatalog(zaptest.NewLogger(t), "test", source).Assets(ctx, "")
	require.NoError(t, err)
	assert.Len(t, assets, 3)
}

func TestCatalog_AssetsAreObservable(t *testing.T) {
	c := NewCatalog(zaptest.NewLogger(t), "test", &staticSource{})
	a := c.Asset(Object{Key: "a.png"})
	a.Set(content.FieldDisplayName, "a.webp")
	assert.Equal(t, "WEBP", a.AssetType())
}

func TestCatalog_AssetsError(t *testing.T) {
	ctx := context.Background()
	c := NewCatalog(zaptest.NewLogger(t), "broken", &staticSource{err: context.DeadlineExceeded})

	before := testutil.ToFloat64(metrics.CatalogFailedCounter.WithLabelValues("broken"))
	_, err := c.Assets(ctx, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.CatalogFailedCounter.WithLabelValues("broken")))
}
