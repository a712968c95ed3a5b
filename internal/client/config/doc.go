// Package config loads runtime configuration for the movieapi CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file passed to LoadConfig (the CLI's --config flag).
//  3. Environment: MOVIEAPI_SERVER_URL, MOVIEAPI_REQUEST_TIMEOUT.
//  4. Command-line flags, applied by cmd/cli on top of the result.
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:3000",
//	  "request_timeout": "10s"
//	}
package config
