// Package config provides the typed view over the viper-backed
// configuration: strict-mode, superuser override, and output format,
// resolved from flags, ARCHIVEHDR_* environment variables, and
// $HOME/.archivehdr.yaml, in that precedence order (flags highest, since
// cobra/viper binds flags over the config file and viper.AutomaticEnv
// sits beneath them once bound).
package config

import "github.com/spf13/viper"

// Config is the resolved set of ambient knobs the CLI subcommands need.
type Config struct {
	// Strict aborts tar verification on the first ChecksumMismatch
	// instead of only warning about it.
	Strict bool
	// Superuser forces the USTAR owner-name reconciliation policy of §4.2
	// on even when os.Geteuid() != 0. When false, reconciliation still
	// applies if the process runs with effective uid 0.
	Superuser bool
	// OutputFormat is "text" or "json".
	OutputFormat string
}

// Load reads the current viper state into a Config.
func Load() Config {
	format := viper.GetString("output-format")
	if format == "" {
		format = "text"
	}
	return Config{
		Strict:       viper.GetBool("strict"),
		Superuser:    viper.GetBool("superuser"),
		OutputFormat: format,
	}
}
