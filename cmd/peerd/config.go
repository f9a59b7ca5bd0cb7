package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-envparse"
	"github.com/spf13/pflag"
)

// Config is peerd's full runtime configuration: local bind address,
// mode, host address (clients only), and ambient-stack knobs.
type Config struct {
	Mode       string
	ListenAddr string
	HostAddr   string
	LocalID    int64
	LogLevel   string
	LogFormat  string
	MetricsAddr string
}

var opt struct {
	Help     bool
	EnvFile  string
}

func init() {
	pflag.BoolVarP(&opt.Help, "help", "h", false, "Show this help text")
	pflag.StringVar(&opt.EnvFile, "env-file", "", "Read configuration from this file instead of the environment")
}

// loadConfig parses flags, then layers environment (or an --env-file)
// on top of the defaults below — the same flags-then-env precedence the
// config-loading pack example uses.
func loadConfig() (Config, error) {
	pflag.Parse()

	if opt.Help {
		fmt.Fprintf(os.Stderr, "usage: %s [options]\n\noptions:\n%s", os.Args[0], pflag.CommandLine.FlagUsages())
		os.Exit(2)
	}

	var env []string
	if opt.EnvFile != "" {
		f, err := os.Open(opt.EnvFile)
		if err != nil {
			return Config{}, fmt.Errorf("open env file: %w", err)
		}
		defer f.Close()
		m, err := envparse.Parse(f)
		if err != nil {
			return Config{}, fmt.Errorf("parse env file: %w", err)
		}
		for k, v := range m {
			env = append(env, k+"="+v)
		}
	} else {
		env = os.Environ()
	}

	cfg := Config{
		Mode:        "host",
		ListenAddr:  ":9000",
		HostAddr:    "",
		LocalID:     1,
		LogLevel:    "info",
		LogFormat:   "console",
		MetricsAddr: ":9100",
	}

	get := func(key string) (string, bool) {
		for _, kv := range env {
			if k, v, ok := strings.Cut(kv, "="); ok && k == key {
				return v, true
			}
		}
		return "", false
	}

	if v, ok := get("PEERD_MODE"); ok {
		cfg.Mode = v
	}
	if v, ok := get("PEERD_LISTEN_ADDR"); ok {
		cfg.ListenAddr = v
	}
	if v, ok := get("PEERD_HOST_ADDR"); ok {
		cfg.HostAddr = v
	}
	if v, ok := get("PEERD_LOCAL_ID"); ok {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.LocalID = id
		}
	}
	if v, ok := get("PEERD_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := get("PEERD_LOG_FORMAT"); ok {
		cfg.LogFormat = v
	}
	if v, ok := get("PEERD_METRICS_ADDR"); ok {
		cfg.MetricsAddr = v
	}

	return cfg, nil
}
