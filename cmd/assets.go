package cmd

import (
	"bytes"
	"context"
	"io"

	"github.com/foomo/assets/content"
	"github.com/foomo/assets/pkg/source"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// openSource opens target as bucket url or local directory
func openSource(ctx context.Context, l *zap.Logger, target string) (source.Source, error) {
	if source.IsBlobURL(target) {
		l.Info("using blob source", zap.String("bucket", target))
		return source.NewBlobSource(ctx, target, "")
	}
	l.Info("using filesystem source", zap.String("dir", target))
	return source.NewFilesystemSource(target)
}

func closeSource(l *zap.Logger, s source.Source) {
	if err := s.Close(); err != nil {
		l.Warn("failed to close source", zap.Error(err))
	}
}

// decodeAssets accepts a single attribute object or an array of them
func decodeAssets(data []byte) ([]*content.Asset, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var assets []*content.Asset
		if err := json.Unmarshal(data, &assets); err != nil {
			return nil, err
		}
		return assets, nil
	}
	asset := &content.Asset{}
	if err := json.Unmarshal(data, asset); err != nil {
		return nil, err
	}
	return []*content.Asset{asset}, nil
}

func writeAssets(w io.Writer, assets []*content.Asset, indent bool) error {
	if assets == nil {
		assets = []*content.Asset{}
	}
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(assets)
}
