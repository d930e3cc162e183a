package source

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/foomo/assets/content"
	"github.com/foomo/assets/pkg/metrics"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultPortablePrefix is prepended to the file name for portable urls
const DefaultPortablePrefix = "/static/"

// skip reasons
const (
	SkipReasonType = "type"
	SkipReasonSize = "size"
)

type (
	// Catalog turns the objects of a Source into assets
	Catalog struct {
		l              *zap.Logger
		name           string
		source         Source
		urlPrefix      string
		portablePrefix string
		dateLayout     string
		maxSize        int64
		types          map[string]struct{}
	}
	CatalogOption func(*Catalog)
)

// ------------------------------------------------------------------------------------------------
// ~ Options
// ------------------------------------------------------------------------------------------------

func WithURLPrefix(v string) CatalogOption {
	return func(o *Catalog) {
		o.urlPrefix = v
	}
}

func WithPortablePrefix(v string) CatalogOption {
	return func(o *Catalog) {
		o.portablePrefix = v
	}
}

func WithDateLayout(v string) CatalogOption {
	return func(o *Catalog) {
		o.dateLayout = v
	}
}

// WithMaxSize drops objects larger than v bytes, 0 disables the limit
func WithMaxSize(v int64) CatalogOption {
	return func(o *Catalog) {
		o.maxSize = v
	}
}

// WithTypes keeps only assets of the given types, compared case insensitive.
// No types means everything is kept.
func WithTypes(v ...string) CatalogOption {
	return func(o *Catalog) {
		for _, t := range v {
			if t = strings.TrimSpace(t); t != "" {
				o.types[strings.ToUpper(strings.TrimPrefix(t, content.ExtensionSeparator))] = struct{}{}
			}
		}
	}
}

// ------------------------------------------------------------------------------------------------
// ~ Constructor
// ------------------------------------------------------------------------------------------------

// NewCatalog name labels log entries and metrics of this catalog
func NewCatalog(l *zap.Logger, name string, source Source, opts ...CatalogOption) *Catalog {
	inst := &Catalog{
		l:              l.Named("catalog"),
		name:           name,
		source:         source,
		portablePrefix: DefaultPortablePrefix,
		dateLayout:     time.RFC3339,
		types:          map[string]struct{}{},
	}

	for _, opt := range opts {
		opt(inst)
	}

	return inst
}

// ------------------------------------------------------------------------------------------------
// ~ Public methods
// ------------------------------------------------------------------------------------------------

// Assets lists the source below prefix and returns one asset per object
func (c *Catalog) Assets(ctx context.Context, prefix string) ([]*content.Asset, error) {
	start := time.Now()
	l := c.l.With(zap.String("source", c.name), zap.String("prefix", prefix))

	objects, err := c.source.List(ctx, prefix)
	if err != nil {
		metrics.CatalogFailedCounter.WithLabelValues(c.name).Inc()
		return nil, errors.Wrap(err, "failed to list source")
	}

	assets := make([]*content.Asset, 0, len(objects))
	for _, obj := range objects {
		asset := c.Asset(obj)
		assetType := asset.AssetType()
		if reason := c.skip(obj, assetType); reason != "" {
			l.Debug("skipping object",
				zap.String("key", obj.Key),
				zap.String("asset_type", assetType),
				zap.Int64("size", obj.Size),
				zap.String("reason", reason),
			)
			metrics.CatalogSkippedCounter.WithLabelValues(assetType, reason).Inc()
			continue
		}
		metrics.CatalogAssetsCounter.WithLabelValues(assetType).Inc()
		assets = append(assets, asset)
	}

	l.Info("catalog complete",
		zap.Int("objects", len(objects)),
		zap.Int("assets", len(assets)),
		zap.Duration("duration", time.Since(start)),
	)
	metrics.CatalogDuration.WithLabelValues(c.name).Observe(time.Since(start).Seconds())
	return assets, nil
}

// Asset maps a single object to an asset
func (c *Catalog) Asset(obj Object) *content.Asset {
	name := path.Base(obj.Key)
	attrs := content.Attributes{
		content.FieldDisplayName: name,
		content.FieldURL:         c.urlPrefix + obj.Key,
		content.FieldPortableURL: c.portablePrefix + name,
	}
	if !obj.ModTime.IsZero() {
		attrs[content.FieldDateAdded] = obj.ModTime.UTC().Format(c.dateLayout)
	}
	return content.NewAsset(attrs)
}

// ------------------------------------------------------------------------------------------------
// ~ Private methods
// ------------------------------------------------------------------------------------------------

// skip returns the reason to drop obj or "" to keep it
func (c *Catalog) skip(obj Object, assetType string) string {
	if len(c.types) > 0 {
		if _, ok := c.types[assetType]; !ok {
			return SkipReasonType
		}
	}
	if c.maxSize > 0 && obj.Size > c.maxSize {
		return SkipReasonSize
	}
	return ""
}
