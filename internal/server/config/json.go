package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/userbase/internal/flagx"
	"github.com/dmitrijs2005/userbase/internal/timex"
)

// JsonConfig mirrors Config for unmarshalling. Pointer fields tell an absent
// key apart from a zero value, so a file only overrides what it sets.
type JsonConfig struct {
	EndpointAddrGRPC *string         `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP *string         `json:"endpoint_addr_http"`
	DatabaseDSN      *string         `json:"database_dsn"`
	LogLevel         *string         `json:"log_level"`
	HashTime         *uint32         `json:"hash_time"`
	HashMemory       *uint32         `json:"hash_memory_kib"`
	HashThreads      *uint8          `json:"hash_threads"`
	ShutdownTimeout  *timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays values from the JSON file named by -c or -config in
// args. Nothing happens if neither flag is given. An unreadable or invalid
// file panics, like a bad flag does.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigFile(args)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrGRPC != nil {
		config.EndpointAddrGRPC = *c.EndpointAddrGRPC
	}
	if c.EndpointAddrHTTP != nil {
		config.EndpointAddrHTTP = *c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.LogLevel != nil {
		config.LogLevel = *c.LogLevel
	}
	if c.HashTime != nil {
		config.HashTime = *c.HashTime
	}
	if c.HashMemory != nil {
		config.HashMemory = *c.HashMemory
	}
	if c.HashThreads != nil {
		config.HashThreads = *c.HashThreads
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}
