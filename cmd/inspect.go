package cmd

import (
	"context"
	"io"
	"os"

	"github.com/foomo/assets/content"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const stdinArg = "-"

func NewInspectCommand() *cobra.Command {
	v := newViper()
	cmd := &cobra.Command{
		Use:   "inspect [file|-]...",
		Short: "Print assets built from json attribute documents",
		Long: "Reads json objects or arrays of objects holding asset attributes and prints\n" +
			"the resulting assets including their derived asset_type. Without arguments\n" +
			"the documents are read from stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := zap.L().Named("inspect")
			if len(args) == 0 {
				args = []string{stdinArg}
			}

			read := func(_ context.Context, name string) ([]byte, error) {
				if name == stdinArg {
					return io.ReadAll(cmd.InOrStdin())
				}
				return os.ReadFile(name)
			}
			if target := sourceFlag(v); target != "" {
				s, err := openSource(ctx, l, target)
				if err != nil {
					return errors.Wrap(err, "failed to open source")
				}
				defer closeSource(l, s)
				read = s.Read
			}

			docs := make([][]byte, len(args))
			g, gCtx := errgroup.WithContext(ctx)
			g.SetLimit(max(concurrencyFlag(v), 1))
			for i, name := range args {
				g.Go(func() error {
					data, err := read(gCtx, name)
					if err != nil {
						return errors.Wrap(err, "failed to read "+name)
					}
					docs[i] = data
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			var (
				assets []*content.Asset
				errs   error
			)
			for i, data := range docs {
				decoded, err := decodeAssets(data)
				if err != nil {
					errs = multierr.Append(errs, errors.Wrap(err, "failed to decode "+args[i]))
					continue
				}
				l.Debug("decoded document", zap.String("name", args[i]), zap.Int("assets", len(decoded)))
				assets = append(assets, decoded...)
			}
			if errs != nil {
				return errs
			}

			return writeAssets(cmd.OutOrStdout(), assets, indentFlag(v))
		},
	}

	flags := cmd.Flags()
	addSourceFlag(flags, v)
	addConcurrencyFlag(flags, v)
	addIndentFlag(flags, v)

	return cmd
}
