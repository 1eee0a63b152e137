package config

import (
	"flag"

	"github.com/dmitrijs2005/postkeeper/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-g string   gRPC health bind address (e.g., ":50051")
//	-b string   storage backend: memory, postgres, redis, s3
//	-d string   PostgreSQL DSN
//	-r string   Redis address
//	-u string   S3 root user
//	-p string   S3 root password
//	-s string   S3 bucket name
//	-n string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-k int      max key length
//	-v int      max value length
//	-q float    per-client rate limit, requests per second (0 disables)
//	-l string   log level
//
// Notes:
//   - The function first filters args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config, args []string) {
	// Filter args to include only the flags handled here.
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-b", "-d", "-r", "-u", "-p", "-s", "-n", "-e", "-k", "-v", "-q", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run HTTP server")
	fs.StringVar(&config.HealthAddr, "g", config.HealthAddr, "address and port to run gRPC health server")
	fs.StringVar(&config.Backend, "b", config.Backend, "storage backend (memory, postgres, redis, s3)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "s", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "n", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	fs.IntVar(&config.MaxKeyLength, "k", config.MaxKeyLength, "max key length")
	fs.IntVar(&config.MaxValueLength, "v", config.MaxValueLength, "max value length")
	fs.Float64Var(&config.RateLimit, "q", config.RateLimit, "requests per second per client (0 disables)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
