package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/postkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Note: args are filtered to the flags handled here with flagx.FilterArgs,
// so -c/-config and unknown flags do not interfere.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-p", "-d", "-i", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.KeyValURL, "a", cfg.KeyValURL, "base URL of the KeyVal API")
	fs.StringVar(&cfg.ProfileURL, "p", cfg.ProfileURL, "random profile API URL")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "path of the local store")
	refresh := fs.Int("i", int(cfg.ProfileRefreshInterval.Seconds()), "profile refresh interval (in seconds)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Only explicit flags override, so sub-second values from earlier
	// layers survive.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i":
			cfg.ProfileRefreshInterval = time.Duration(*refresh) * time.Second
		case "t":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
