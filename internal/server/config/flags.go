package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/userbase/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   gRPC bind address (e.g. ":50051")
//	-w string   health probe bind address, empty to disable
//	-d string   PostgreSQL DSN
//	-l string   log level
//	-t uint     Argon2id time cost
//	-m uint     Argon2id memory, KiB
//	-p uint     Argon2id threads
//	-s int      shutdown timeout, seconds
//
// Unknown flags are filtered out first so other components (the -c config
// flag, the admin console) can share the command line.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-w", "-d", "-l", "-t", "-m", "-p", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.EndpointAddrHTTP, "w", config.EndpointAddrHTTP, "address and port for health probes")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level (debug, info, warn, error)")

	hashTime := fs.Uint("t", uint(config.HashTime), "argon2id time cost")
	hashMemory := fs.Uint("m", uint(config.HashMemory), "argon2id memory (KiB)")
	hashThreads := fs.Uint("p", uint(config.HashThreads), "argon2id threads")
	shutdown := fs.Int("s", int(config.ShutdownTimeout.Seconds()), "shutdown timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.HashTime = uint32(*hashTime)
	config.HashMemory = uint32(*hashMemory)
	config.HashThreads = uint8(*hashThreads)
	config.ShutdownTimeout = time.Duration(*shutdown) * time.Second
}
