package cmd

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "archivehdr",
	Short: "Decode and encode ZIP EOCD and Tar (V7/USTAR/GNU) headers",
	Long: `archivehdr drives the header codecs in this module against real
archive files on disk: it walks a Tar stream block by block, or locates
and decodes a ZIP end-of-central-directory record.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the root command; main.go's sole job is to call this.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "%+v\n", err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.archivehdr.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print full error causal chains")
	rootCmd.PersistentFlags().Bool("strict", true, "abort on checksum mismatch instead of warning")
	rootCmd.PersistentFlags().Bool("superuser", false, "force USTAR owner-name reconciliation regardless of os.Geteuid()")

	_ = viper.BindPFlag("strict", rootCmd.PersistentFlags().Lookup("strict"))
	_ = viper.BindPFlag("superuser", rootCmd.PersistentFlags().Lookup("superuser"))

	viper.SetDefault("verify-workers", 4)
	viper.SetDefault("output-format", "text")
}

// initConfig loads $HOME/.archivehdr.yaml (home resolved via go-homedir)
// or the --config file, then ARCHIVEHDR_* environment variables, with
// flags taking highest precedence.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return errors.Wrap(err, "cmd: resolving home directory")
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".archivehdr")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("ARCHIVEHDR")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return errors.Wrap(err, "cmd: reading config file")
		}
	}
	return nil
}
