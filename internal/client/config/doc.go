// Package config loads runtime configuration for the auction CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the primary
//	-k string   directory holding key files
//	-u string   username to log in as at startup
//	-t int      per-request timeout (seconds)
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "key_dir": ".auctionhouse",
//	  "username": "alice",
//	  "request_timeout": "10s"
//	}
package config
