package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	goruntime "runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/vessel-labs/vessel/internal/cliconfig"
	"github.com/vessel-labs/vessel/pkg/condition"
	"github.com/vessel-labs/vessel/pkg/event"
	"github.com/vessel-labs/vessel/pkg/log"
	"github.com/vessel-labs/vessel/pkg/registry"
	"github.com/vessel-labs/vessel/pkg/runtime"
	"github.com/vessel-labs/vessel/plugins/propwatcher"
)

const helpDescription = `
Run a vessel container from the command line.

Highlights:
  - Conditional component registration driven by properties, profiles and versions.
  - Phased startup and exact-reverse shutdown with a bounded stop timeout.
  - Live property reloads via the built-in file watcher.
  - Configure via file, env, or flags.
`

var longHelp = strings.TrimSpace(helpDescription)

var exampleUsage = strings.TrimSpace(`
  vessel --properties application.yaml --profiles production
  vessel --config $HOME/.vessel/config.toml --once
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	cliLog := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "vessel",
		Short:   "Run a vessel container with conditional components and a phased lifecycle",
		Long:    longHelp,
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), goruntime.GOOS, goruntime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.vessel/config.toml), then apply flag overrides
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// Apply environment variables (VESSEL_CLI_*)
			// These override file config but are overridden by flags (checked via changed map)
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			// Validate and set derived defaults
			if err := cfg.Validate(); err != nil {
				return err
			}

			cliLog.Info().Interface("config", cfg).Msg("configuration")

			logger := log.NewZerologAdapterWithOptions(os.Stderr, cfg.LogLevel, cfg.LogConsole)

			rt, err := runtime.New(runtime.Config{
				Name:          cfg.Name,
				PropertyFiles: cfg.PropertyFiles,
				EnvPrefix:     cfg.EnvPrefix,
				Profiles:      cfg.Profiles,
				ResourceBase:  cfg.ResourceBase,
				StopTimeout:   cfg.StopTimeout,
			}, runtime.WithLogger(logger))
			if err != nil {
				return fmt.Errorf("create container: %w", err)
			}

			if err := registerComponents(rt, cfg, logger); err != nil {
				return fmt.Errorf("register components: %w", err)
			}

			// Setup signal handling for graceful shutdown
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			if err := rt.Start(ctx); err != nil {
				return fmt.Errorf("start container: %w", err)
			}

			if !cfg.Once {
				<-sigCh
				cliLog.Info().Msg("received signal, stopping...")
			}

			// Graceful shutdown
			if err := rt.Stop(context.Background()); err != nil {
				return fmt.Errorf("stop container: %w", err)
			}
			return nil
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.vessel/config.toml)")
	root.Flags().StringVar(&cfg.Name, "name", cfg.Name, "container name")
	root.Flags().StringSliceVar(&cfg.PropertyFiles, "properties", cfg.PropertyFiles, "YAML property files to load, in order")
	root.Flags().StringSliceVar(&cfg.Profiles, "profiles", cfg.Profiles, "profiles to activate")
	root.Flags().StringVar(&cfg.EnvPrefix, "env-prefix", cfg.EnvPrefix, "environment variable prefix merged into properties")
	root.Flags().StringVar(&cfg.ResourceBase, "resource-base", cfg.ResourceBase, "base directory for resource existence checks")
	root.Flags().DurationVar(&cfg.StopTimeout, "stop-timeout", cfg.StopTimeout, "maximum wait per participant during shutdown")
	root.Flags().DurationVar(&cfg.HeartbeatInterval, "heartbeat-interval", cfg.HeartbeatInterval, "interval between heartbeat log lines")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (trace, debug, info, warn, error)")
	root.Flags().BoolVar(&cfg.LogConsole, "log-console", cfg.LogConsole, "write human-readable console logs")
	root.Flags().BoolVar(&cfg.WatchProperties, "watch", cfg.WatchProperties, "reload property files when they change")
	root.Flags().BoolVar(&cfg.Once, "once", cfg.Once, "start, then stop immediately and exit")

	if err := root.Execute(); err != nil {
		cliLog.Error().Err(err).Msg("vessel")
		os.Exit(1)
	}
}

// registerComponents wires the built-in components. The heartbeat is
// gated on the heartbeat.enabled property and defaults to on; the
// property watcher follows the --watch flag.
func registerComponents(rt *runtime.Runtime, cfg cliconfig.Config, logger log.Logger) error {
	if _, err := rt.Register(&registry.Definition{
		Name:      "heartbeat",
		Component: newHeartbeat(cfg.HeartbeatInterval, logger),
		ConditionSets: []condition.Set{{
			condition.OnProperty("heartbeat", []string{"enabled"}, "true", true),
		}},
	}); err != nil {
		return err
	}

	if cfg.WatchProperties && len(cfg.PropertyFiles) > 0 {
		watcher := propwatcher.New(propwatcher.Config{
			Paths:         cfg.PropertyFiles,
			DebounceDelay: propwatcher.DefaultConfig().DebounceDelay,
			Phase:         propwatcher.DefaultConfig().Phase,
		}, rt.Environment(), rt.Bus(), logger)
		if _, err := rt.Register(&registry.Definition{
			Name:      "propwatcher",
			Component: watcher,
		}); err != nil {
			return err
		}
	}

	if _, err := rt.Register(&registry.Definition{
		Name: "statelog",
		Component: event.ListenerOf(func(e runtime.StateChangeEvent) error {
			logger.Info("lifecycle state changed",
				log.String("previous", e.Previous.String()),
				log.String("current", e.Current.String()),
				log.String("reason", e.Reason))
			return nil
		}),
	}); err != nil {
		return err
	}

	return nil
}
