package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/statekit/persist/internal/cliconfig"
	"github.com/statekit/persist/pkg/log"
	"github.com/statekit/persist/pkg/persist"
	"github.com/statekit/persist/pkg/storage"
)

const longHelp = `statectl inspects and manages state snapshots saved by the persist library.

The store is a single JSON file of namespaced keys. Configure the store path
and namespace via flags, STATECTL_* environment variables, or a TOML config
file (default ~/.statectl/config.toml); flags win over env, env over file.`

var exampleUsage = strings.TrimSpace(`
  statectl keys --store ./store.json
  statectl get app_user --store ./store.json
  statectl clear --namespace app --strict
  statectl watch --store ./store.json
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func newLogger(level string) *log.ZerologAdapter {
	lvl := zerolog.InfoLevel
	switch level {
	case "debug":
		lvl = zerolog.DebugLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	}
	return log.NewZerologAdapterWithLogger(log.NewZerologAdapter().Logger().Level(lvl))
}

func main() {
	// Optional .env files for local development; missing files are fine.
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:           "statectl",
		Short:         "Inspect and manage saved state snapshots",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Build set of changed flags for precedence handling.
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })
			cmd.InheritedFlags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}
			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				cliconfig.ApplyFileConfig(&cfg, fc, changed)
			}

			cliconfig.ApplyEnvConfig(&cfg, changed)

			if err := cfg.Validate(); err != nil {
				return err
			}

			persist.SetDefaultLogger(newLogger(cfg.LogLevel))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to TOML config file")
	root.PersistentFlags().StringVar(&cfg.StorePath, "store", cfg.StorePath, "path to the JSON store file")
	root.PersistentFlags().StringVar(&cfg.Namespace, "namespace", cfg.Namespace, "key namespace")
	root.PersistentFlags().BoolVar(&cfg.Strict, "strict", cfg.Strict, "delimiter-aware namespace matching for clear")
	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	root.AddCommand(
		newKeysCmd(&cfg),
		newGetCmd(&cfg),
		newSetCmd(&cfg),
		newDeleteCmd(&cfg),
		newClearCmd(&cfg),
		newWatchCmd(&cfg),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func openStore(cfg *cliconfig.Config) (*storage.FileStore, error) {
	return storage.NewFileStore(cfg.StorePath)
}

func newKeysCmd(cfg *cliconfig.Config) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List keys in the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			keys, err := store.Keys()
			if err != nil {
				return err
			}
			sort.Strings(keys)
			for _, k := range keys {
				if !all && !strings.HasPrefix(k, cfg.Namespace) {
					continue
				}
				fmt.Println(k)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "list every key, not only the configured namespace")
	return cmd
}

func newGetCmd(cfg *cliconfig.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the stored value for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			v, ok, err := store.Get(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("key %q not found", args[0])
			}
			fmt.Println(v)
			return nil
		},
	}
}

func newSetCmd(cfg *cliconfig.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Write a raw value under a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			return store.Set(args[0], args[1])
		},
	}
}

func newDeleteCmd(cfg *cliconfig.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>",
		Short: "Remove a single key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			return store.Delete(args[0])
		},
	}
}

func newClearCmd(cfg *cliconfig.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every key in the configured namespace",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			persist.Clear(store, persist.ClearConfig{
				Namespace: cfg.Namespace,
				Strict:    cfg.Strict,
			}, persist.WithLogger(newLogger(cfg.LogLevel)))
			return nil
		},
	}
}

func newWatchCmd(cfg *cliconfig.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the store file and print keys on every change",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cfg)
			if err != nil {
				return err
			}

			logger := newLogger(cfg.LogLevel)
			printKeys := func() {
				keys, err := store.Keys()
				if err != nil {
					logger.Error("list keys", log.Err(err))
					return
				}
				sort.Strings(keys)
				fmt.Printf("%s: %d key(s)\n", cfg.StorePath, len(keys))
				for _, k := range keys {
					fmt.Println(" ", k)
				}
			}
			printKeys()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			watcher := storage.NewFileWatcher(store, logger, printKeys)
			if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}
}
