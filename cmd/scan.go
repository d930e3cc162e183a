package cmd

import (
	"github.com/foomo/assets/pkg/metrics"
	"github.com/foomo/assets/pkg/source"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewScanCommand() *cobra.Command {
	v := newViper()
	cmd := &cobra.Command{
		Use:   "scan <dir|bucket-url>",
		Short: "Print an asset for every file of a directory or bucket",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			var comps []string
			if len(args) == 0 {
				comps = cobra.AppendActiveHelp(comps, "You must specify the directory or bucket url to scan")
			} else {
				comps = cobra.AppendActiveHelp(comps, "This command does not take any more arguments")
			}
			return comps, cobra.ShellCompDirectiveFilterDirs
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := zap.L().Named("scan")

			s, err := openSource(ctx, l, args[0])
			if err != nil {
				return errors.Wrap(err, "failed to open source")
			}
			defer closeSource(l, s)

			catalog := source.NewCatalog(l, args[0], s,
				source.WithURLPrefix(urlPrefixFlag(v)),
				source.WithPortablePrefix(portablePrefixFlag(v)),
				source.WithTypes(typesFlag(v)...),
				source.WithMaxSize(maxSizeFlag(v)),
			)

			assets, err := catalog.Assets(ctx, prefixFlag(v))
			if err != nil {
				return err
			}

			if err := writeAssets(cmd.OutOrStdout(), assets, indentFlag(v)); err != nil {
				return errors.Wrap(err, "failed to write assets")
			}

			if filename := metricsFileFlag(v); filename != "" {
				if err := metrics.WriteToTextfile(filename); err != nil {
					return errors.Wrap(err, "failed to write metrics")
				}
				l.Debug("wrote metrics", zap.String("file", filename))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	addPrefixFlag(flags, v)
	addURLPrefixFlag(flags, v)
	addPortablePrefixFlag(flags, v)
	addTypesFlag(flags, v)
	addMaxSizeFlag(flags, v)
	addMetricsFileFlag(flags, v)
	addIndentFlag(flags, v)

	return cmd
}
