package config

import (
	"flag"
	"os"
	"time"

	"authstack/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend server
//	-m string   session transport mode ("cookie" or "bearer")
//	-f string   local database path
//	-t int      request timeout in seconds
//
// The args are filtered through flagx.FilterArgs first so flags owned by
// other components (including -c/-config) pass through untouched.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-m", "-f", "-t"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)

	fs.StringVar(&config.ServerBaseURL, "a", config.ServerBaseURL, "base URL of the backend server")
	fs.StringVar(&config.SessionTransport, "m", config.SessionTransport, "session transport mode")
	fs.StringVar(&config.DatabasePath, "f", config.DatabasePath, "local database path")

	requestTimeout := fs.Int("t", int(config.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
