// Package config provides configuration loading for the a11ydemo server.
//
// Configuration is layered: built-in defaults, then an optional
// a11ydemo.json file, then A11YDEMO_* environment variables, then
// command-line flags (applied by cmd/a11ydemo). Durations are strings
// in Go syntax.
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "host": "0.0.0.0",
//	    "port": 8080,
//	    "maxSessions": 500,
//	    "idleTimeout": "10m"
//	  },
//	  "announce": {
//	    "clearDelay": "100ms",
//	    "dismissAfter": "5s"
//	  },
//	  "ui": {
//	    "brand": "Accessibility Demo",
//	    "alertDuration": "3s"
//	  },
//	  "log": {
//	    "level": "debug",
//	    "format": "json"
//	  }
//	}
//
// # Environment
//
// Every field has an environment variable named after its path, for
// example A11YDEMO_SERVER_PORT, A11YDEMO_ANNOUNCE_CLEAR_DELAY or
// A11YDEMO_LOG_FORMAT.
//
// # Usage
//
//	cfg, err := config.LoadFile("a11ydemo.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.ApplyEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
