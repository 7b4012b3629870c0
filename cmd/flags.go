package cmd

import (
	"strings"
	"time"

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

func configFlag(v *viper.Viper) string {
	return v.GetString("config")
}

func addConfigFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("config", "", "Config file (yaml, json or toml) with the plugin options and siteMapEntries")
	_ = v.BindPFlag("config", flags.Lookup("config"))
	_ = v.BindEnv("config", "SITEMAP_CONFIG")
}

func baseURLFlag(v *viper.Viper) string {
	return v.GetString("baseUrl")
}

func addBaseURLFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("base-url", "", "Base url of all sitemap locations, required for the sitemap index")
	_ = v.BindPFlag("baseUrl", flags.Lookup("base-url"))
	_ = v.BindEnv("baseUrl", "SITEMAP_BASE_URL")
}

func outDirFlag(v *viper.Viper) string {
	return v.GetString("outDir")
}

func addOutDirFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("out-dir", "dist", "Output directory of the build")
	_ = v.BindPFlag("outDir", flags.Lookup("out-dir"))
	_ = v.BindEnv("outDir", "SITEMAP_OUT_DIR")
}

func maxEntriesFlag(v *viper.Viper) int {
	return v.GetInt("maxEntries")
}

func addMaxEntriesFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Int("max-entries", 0, "Maximum entries per sitemap file, 0 selects the default of 5000")
	_ = v.BindPFlag("maxEntries", flags.Lookup("max-entries"))
	_ = v.BindEnv("maxEntries", "SITEMAP_MAX_ENTRIES")
}

func authorizedExtensionsFlag(v *viper.Viper) []string {
	if !v.IsSet("authorizedExtensions") {
		return nil
	}
	// env values arrive as a single comma separated string
	ret := []string{}
	for _, value := range v.GetStringSlice("authorizedExtensions") {
		for _, ext := range strings.Split(value, ",") {
			if ext = strings.TrimSpace(ext); ext != "" {
				ret = append(ret, ext)
			}
		}
	}
	return ret
}

func addAuthorizedExtensionsFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.StringSlice("authorized-extensions", nil, "Extensions of build outputs that become sitemap entries (default html,js,txt,md,mdx)")
	_ = v.BindPFlag("authorizedExtensions", flags.Lookup("authorized-extensions"))
	_ = v.BindEnv("authorizedExtensions", "SITEMAP_AUTHORIZED_EXTENSIONS")
}

func disableAutoEntriesFlag(v *viper.Viper) bool {
	return v.GetBool("disableAutoEntries")
}

func addDisableAutoEntriesFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Bool("disable-auto-entries", false, "Only use the siteMapEntries of the config file")
	_ = v.BindPFlag("disableAutoEntries", flags.Lookup("disable-auto-entries"))
	_ = v.BindEnv("disableAutoEntries", "SITEMAP_DISABLE_AUTO_ENTRIES")
}

func stripPrefixFlag(v *viper.Viper) string {
	return v.GetString("stripPrefix")
}

func addStripPrefixFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("strip-prefix", "", "Path prefix removed from output paths, defaults to the output directory")
	_ = v.BindPFlag("stripPrefix", flags.Lookup("strip-prefix"))
	_ = v.BindEnv("stripPrefix", "SITEMAP_STRIP_PREFIX")
}

func manifestFlag(v *viper.Viper) string {
	return v.GetString("manifest.in")
}

func addManifestFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("manifest", "", "Build manifest with the outputs, the output directory is scanned if empty")
	_ = v.BindPFlag("manifest.in", flags.Lookup("manifest"))
	_ = v.BindEnv("manifest.in", "SITEMAP_MANIFEST")
}

func manifestOutFlag(v *viper.Viper) string {
	return v.GetString("manifest.out")
}

func addManifestOutFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("manifest-out", "", "Write the build manifest including the sitemap files")
	_ = v.BindPFlag("manifest.out", flags.Lookup("manifest-out"))
	_ = v.BindEnv("manifest.out", "SITEMAP_MANIFEST_OUT")
}

func watchFlag(v *viper.Viper) bool {
	return v.GetBool("watch.enabled")
}

func addWatchFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Bool("watch", false, "Regenerate the sitemap whenever the output directory changes")
	_ = v.BindPFlag("watch.enabled", flags.Lookup("watch"))
	_ = v.BindEnv("watch.enabled", "SITEMAP_WATCH")
}

func watchDebounceFlag(v *viper.Viper) time.Duration {
	return v.GetDuration("watch.debounce")
}

func addWatchDebounceFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Duration("watch-debounce", 300*time.Millisecond, "Quiet period before regenerating after a change")
	_ = v.BindPFlag("watch.debounce", flags.Lookup("watch-debounce"))
	_ = v.BindEnv("watch.debounce", "SITEMAP_WATCH_DEBOUNCE")
}

func writeConcurrencyFlag(v *viper.Viper) int {
	return v.GetInt("write_concurrency")
}

func addWriteConcurrencyFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Int("write-concurrency", 4, "Number of sitemap files written in parallel")
	_ = v.BindPFlag("write_concurrency", flags.Lookup("write-concurrency"))
	_ = v.BindEnv("write_concurrency", "SITEMAP_WRITE_CONCURRENCY")
}

func addressFlag(v *viper.Viper) string {
	return v.GetString("address")
}

func addAddressFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("address", ":8080", "Address to bind to (host:port)")
	_ = v.BindPFlag("address", flags.Lookup("address"))
	_ = v.BindEnv("address", "SITEMAP_ADDRESS")
}

func basePathFlag(v *viper.Viper) string {
	return v.GetString("base_path")
}

func addBasePathFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("base-path", "", "Base path to serve the sitemap files on")
	_ = v.BindPFlag("base_path", flags.Lookup("base-path"))
	_ = v.BindEnv("base_path", "SITEMAP_BASE_PATH")
}

func gracefulPeriodFlag(v *viper.Viper) time.Duration {
	return v.GetDuration("graceful_period")
}

func addGracefulPeriodFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Duration("graceful-period", 0, "Graceful period before shutdown")
	_ = v.BindPFlag("graceful_period", flags.Lookup("graceful-period"))
	_ = v.BindEnv("graceful_period", "SITEMAP_GRACEFUL_PERIOD")
}

func gzipLevelFlag(v *viper.Viper) int {
	return v.GetInt("gzip.level")
}

func addGzipLevelFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Int("gzip-level", 6, "Compression level of the gzip middleware")
	_ = v.BindPFlag("gzip.level", flags.Lookup("gzip-level"))
	_ = v.BindEnv("gzip.level", "SITEMAP_GZIP_LEVEL")
}

func serviceHealthzEnabledFlag(v *viper.Viper) bool {
	return v.GetBool("service.healthz.enabled")
}

func addServiceHealthzEnabledFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Bool("service-healthz-enabled", false, "Enable healthz service")
	_ = v.BindPFlag("service.healthz.enabled", flags.Lookup("service-healthz-enabled"))
}

func servicePrometheusEnabledFlag(v *viper.Viper) bool {
	return v.GetBool("service.prometheus.enabled")
}

func addServicePrometheusEnabledFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Bool("service-prometheus-enabled", false, "Enable prometheus service")
	_ = v.BindPFlag("service.prometheus.enabled", flags.Lookup("service-prometheus-enabled"))
}

func storageTypeFlag(v *viper.Viper) string {
	return v.GetString("storage.type")
}

func addStorageTypeFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("storage-type", "filesystem", "Storage of the sitemap files (filesystem, blob)")
	_ = v.BindPFlag("storage.type", flags.Lookup("storage-type"))
	_ = v.BindEnv("storage.type", "SITEMAP_STORAGE_TYPE")
}

func storageBlobBucketFlag(v *viper.Viper) string {
	return v.GetString("storage.blob.bucket")
}

func addStorageBlobBucketFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("storage-blob-bucket", "", "Blob bucket url (gs://, s3://, azblob://, file://)")
	_ = v.BindPFlag("storage.blob.bucket", flags.Lookup("storage-blob-bucket"))
	_ = v.BindEnv("storage.blob.bucket", "SITEMAP_STORAGE_BLOB_BUCKET")
}

func storageBlobPrefixFlag(v *viper.Viper) string {
	return v.GetString("storage.blob.prefix")
}

func addStorageBlobPrefixFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("storage-blob-prefix", "", "Key prefix of the sitemap files in the bucket")
	_ = v.BindPFlag("storage.blob.prefix", flags.Lookup("storage-blob-prefix"))
	_ = v.BindEnv("storage.blob.prefix", "SITEMAP_STORAGE_BLOB_PREFIX")
}
