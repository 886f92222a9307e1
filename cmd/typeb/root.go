package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/typeb/internal/cli"
	"github.com/aretw0/typeb/internal/logging"
	"github.com/aretw0/typeb/pkg/ports"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "typeb",
	Short: "typeb emulates the Type B stepping-switch cipher machine",
	Long: `typeb enciphers and deciphers text the way the Type B ("Purple") machine did:
a plugboard, a sixes switch for six letters, three chained twenties switches for the rest,
and switches that step after every letter.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().Bool("debug", false, "Log at debug level, including every letter's switch positions")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")
	rootCmd.PersistentFlags().String("store", "file", "Key store backend: file, redis or memory")
	rootCmd.PersistentFlags().String("keys-dir", "", "Directory of the file key store (default .typeb/keys)")
	rootCmd.PersistentFlags().String("redis-addr", "", "Redis address for the redis key store")
	rootCmd.PersistentFlags().Int("redis-db", 0, "Redis database number")
}

// sealKeyEnv names the variable holding base64 AES-256 keys for sealing stored sheets,
// active key first, older keys after commas.
const sealKeyEnv = "TYPEB_STORE_KEY"

// newLogger builds the logger from the persistent flags. Logs go to stderr.
func newLogger(cmd *cobra.Command) (*slog.Logger, bool) {
	debug, _ := cmd.Flags().GetBool("debug")
	levelName, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")

	level := logging.ParseLevel(levelName)
	if debug {
		level = slog.LevelDebug
	}
	return logging.NewWithWriter(os.Stderr, level, logging.Format(format)), debug
}

func openStore(cmd *cobra.Command) (ports.KeyStore, error) {
	backend, _ := cmd.Flags().GetString("store")
	dir, _ := cmd.Flags().GetString("keys-dir")
	addr, _ := cmd.Flags().GetString("redis-addr")
	db, _ := cmd.Flags().GetInt("redis-db")

	active, old, err := cli.DecodeSealKeys(os.Getenv(sealKeyEnv))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sealKeyEnv, err)
	}
	return cli.OpenStore(cli.StoreOptions{
		Backend:     backend,
		Dir:         dir,
		RedisAddr:   addr,
		RedisDB:     db,
		SealKey:     active,
		OldSealKeys: old,
	})
}
