package cmd

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func logLevelFlag(v *viper.Viper) string {
	return v.GetString("log.level")
}

func addLogLevelFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("log-level", "info", "log level")
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = v.BindEnv("log.level", "LOG_LEVEL")
}

func logFormatFlag(v *viper.Viper) string {
	return v.GetString("log.format")
}

func addLogFormatFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("log-format", "json", "log format")
	_ = v.BindPFlag("log.format", flags.Lookup("log-format"))
	_ = v.BindEnv("log.format", "LOG_FORMAT")
}

func sourceFlag(v *viper.Viper) string {
	return v.GetString("source")
}

func addSourceFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("source", "", "Directory or bucket url (gs://, s3://, azblob://, file://) to read the documents from")
	_ = v.BindPFlag("source", flags.Lookup("source"))
	_ = v.BindEnv("source", "ASSETS_SOURCE")
}

func concurrencyFlag(v *viper.Viper) int {
	return v.GetInt("concurrency")
}

func addConcurrencyFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Int("concurrency", 4, "Number of documents to read in parallel")
	_ = v.BindPFlag("concurrency", flags.Lookup("concurrency"))
}

func prefixFlag(v *viper.Viper) string {
	return v.GetString("prefix")
}

func addPrefixFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("prefix", "", "Only list keys starting with this prefix")
	_ = v.BindPFlag("prefix", flags.Lookup("prefix"))
}

func urlPrefixFlag(v *viper.Viper) string {
	return v.GetString("url_prefix")
}

func addURLPrefixFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("url-prefix", "", "Prepended to the key to build the asset url")
	_ = v.BindPFlag("url_prefix", flags.Lookup("url-prefix"))
	_ = v.BindEnv("url_prefix", "ASSETS_URL_PREFIX")
}

func portablePrefixFlag(v *viper.Viper) string {
	return v.GetString("portable_prefix")
}

func addPortablePrefixFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("portable-prefix", "/static/", "Prepended to the file name to build the portable url")
	_ = v.BindPFlag("portable_prefix", flags.Lookup("portable-prefix"))
	_ = v.BindEnv("portable_prefix", "ASSETS_PORTABLE_PREFIX")
}

func typesFlag(v *viper.Viper) []string {
	return v.GetStringSlice("types")
}

func addTypesFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.StringSlice("type", nil, "Only keep assets of this type, e.g. PNG (repeatable)")
	_ = v.BindPFlag("types", flags.Lookup("type"))
}

func maxSizeFlag(v *viper.Viper) int64 {
	return v.GetInt64("max_size")
}

func addMaxSizeFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Int64("max-size", 0, "Skip files larger than this many bytes (0 for no limit)")
	_ = v.BindPFlag("max_size", flags.Lookup("max-size"))
	_ = v.BindEnv("max_size", "ASSETS_MAX_SIZE")
}

func metricsFileFlag(v *viper.Viper) string {
	return v.GetString("metrics.file")
}

func addMetricsFileFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("metrics-file", "", "Write prometheus metrics to this file when done")
	_ = v.BindPFlag("metrics.file", flags.Lookup("metrics-file"))
}

func indentFlag(v *viper.Viper) bool {
	return v.GetBool("indent")
}

func addIndentFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Bool("indent", true, "Indent the json output")
	_ = v.BindPFlag("indent", flags.Lookup("indent"))
}
