/*
Copyright © 2021 Billy G. Allie <bill.allie@defiant.mug.org>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/bgallie/saes/cryptors"
	"github.com/bgallie/saes/cryptors/framing"
)

var (
	cfgFile    string
	logLevel   string
	encoding   string
	appFs      = afero.NewOsFs()
	logger     = jww.NewNotepad(jww.LevelWarn, jww.LevelTrace, os.Stderr, io.Discard, "saes", log.Ltime)
	GitCommit  string = "not set"
	GitBranch  string = "not set"
	GitState   string = "not set"
	GitSummary string = "not set"
	BuildDate  string = "not set"
	Version    string = "dev"
)

var logLevels = map[string]jww.Threshold{
	"trace":    jww.LevelTrace,
	"debug":    jww.LevelDebug,
	"info":     jww.LevelInfo,
	"warn":     jww.LevelWarn,
	"error":    jww.LevelError,
	"critical": jww.LevelCritical,
	"fatal":    jww.LevelFatal,
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "saes",
	Short:   "A simplified AES workbench",
	Long:    `saes encrypts and decrypts 16 bit blocks with simplified AES, chains them in double, triple and CBC modes, and breaks double encryption with a meet-in-the-middle attack.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := strings.ToLower(viper.GetString("loglevel"))
		t, ok := logLevels[level]
		if !ok {
			return fmt.Errorf("unknown log level %q", level)
		}
		logger.SetStdoutThreshold(t)
		logger.DEBUG.Printf("version %s (%s) built %s", Version, GitCommit, BuildDate)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.saes.yaml)")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "loglevel", "l", "warn", "log level: trace, debug, info, warn, error, critical or fatal")
	rootCmd.PersistentFlags().StringVarP(&encoding, "encoding", "e", "utf-8", "text encoding: utf-8, iso-8859-1 or windows-1252")
	cobra.CheckErr(viper.BindPFlag("loglevel", rootCmd.PersistentFlags().Lookup("loglevel")))
	cobra.CheckErr(viper.BindPFlag("encoding", rootCmd.PersistentFlags().Lookup("encoding")))
	viper.SetDefault("workers", runtime.NumCPU())
	viper.SetDefault("armor", "pem")
	viper.SetDefault("compress", false)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".saes" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".saes")
	}

	viper.SetEnvPrefix("SAES")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		logger.INFO.Println("Using config file:", viper.ConfigFileUsed())
	}
}

// textCodec returns the codec selected by --encoding or the config file.
func textCodec() (*framing.Codec, error) {
	return framing.Lookup(viper.GetString("encoding"))
}

/*
	resolveKey returns the key named by the flag name.  The key is taken from:
	1. The command line flag.
	2. The 'SAES_KEY' environment variable or the config file (for --key only).
	3. User input from the terminal.
*/
func resolveKey(cmd *cobra.Command, name string) (cryptors.Key, error) {
	if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
		return cryptors.Key(f.Value.(*hexValue).Block()), nil
	}
	if name == "key" && viper.IsSet("key") {
		blk, err := framing.ParseBlock(viper.GetString("key"))
		if err != nil {
			return 0, fmt.Errorf("key from environment/config: %w", err)
		}
		return cryptors.Key(blk), nil
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintf(os.Stderr, "Enter the %s (4 hex digits): ", name)
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr, "")
		if err != nil {
			return 0, err
		}
		blk, err := framing.ParseBlock(strings.TrimSpace(string(secret)))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", name, err)
		}
		return cryptors.Key(blk), nil
	}
	return 0, fmt.Errorf("you must supply --%s", name)
}

// optionalKey reports whether the flag name was given and its value.
func optionalKey(cmd *cobra.Command, name string) (cryptors.Key, bool) {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return 0, false
	}
	return cryptors.Key(f.Value.(*hexValue).Block()), true
}
