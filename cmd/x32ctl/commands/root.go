// Package commands implements the x32ctl command line interface.
package commands

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/x32kit/x32kit/internal/config"
	"github.com/x32kit/x32kit/internal/printer"
	"github.com/x32kit/x32kit/x32"
)

var (
	cfgFile     string
	flagHost    string
	flagPort    int
	flagTimeout time.Duration
	verbose     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "x32ctl",
	Short: "x32ctl - remote control for X32 family mixing consoles",
	Long: `x32ctl talks to a Behringer X32 family console over its OSC/UDP
remote protocol. It can read and write any console parameter by OSC
address, and provides typed convenience commands for faders, pan and
scribble-strip colors.

The console endpoint comes from --host/--port, or from a YAML config
file (--config, default ~/.x32ctl.yaml).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.x32ctl.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagHost, "host", "", "console network address")
	rootCmd.PersistentFlags().IntVar(&flagPort, "port", 0, "console UDP port (default 10023)")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 0, "per-request reply timeout (default 5s)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log engine activity to stderr")
}

// engineConfig merges the config file and the endpoint flags; flags win.
func engineConfig() (x32.Config, error) {
	var cfg x32.Config

	path := cfgFile
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			def := filepath.Join(home, ".x32ctl.yaml")
			if _, err := os.Stat(def); err == nil {
				path = def
			}
		}
	}
	if path != "" {
		fileCfg, err := config.Load(path)
		if err != nil {
			return x32.Config{}, err
		}
		if err := config.Validate(fileCfg); err != nil {
			return x32.Config{}, err
		}
		cfg = fileCfg.Console.Engine()
	}

	if flagHost != "" {
		cfg.Host = flagHost
	}
	if flagPort != 0 {
		cfg.Port = flagPort
	}
	if flagTimeout != 0 {
		cfg.RequestTimeout = flagTimeout
	}

	if cfg.Host == "" {
		return x32.Config{}, printer.Error("no console address: pass --host or set console.host in the config file")
	}
	return cfg, nil
}

// dial connects to the configured console. The returned cleanup disconnects.
func dial(cmd *cobra.Command, opts ...x32.Option) (*x32.Conn, func(), error) {
	cfg, err := engineConfig()
	if err != nil {
		return nil, nil, err
	}

	if verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, x32.WithLogger(log))
	}

	conn := x32.New(cfg, opts...)
	if err := conn.Connect(cmd.Context()); err != nil {
		return nil, nil, printer.Error("connect failed: %v", err)
	}
	return conn, func() { conn.Disconnect() }, nil
}
