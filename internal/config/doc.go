// Package config provides centralized configuration management for the
// attendance report tool. It handles loading configuration from multiple
// sources, validation, and provides a type-safe API for accessing
// configuration values throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration file (YAML or TOML, chosen by extension)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern ATTEND_* for namespacing:
//
//	ATTEND_ENGINE_OUTLIER_FACTOR=1.5
//	ATTEND_ENGINE_CLUSTERS=3
//	ATTEND_ENGINE_SEED=42
//	ATTEND_ENGINE_LOCATION=Europe/Madrid
//	ATTEND_LOGGING_LEVEL=debug
//	ATTEND_OUTPUT_FORMATS=json,xlsx
//
// # Configuration File
//
//	engine:
//	  outlier_factor: 1.5
//	  clusters: 3
//	  seed: 42
//	  holidays: ["2025-06-12", "2025-06-13"]
//	  non_worked_days: ["2025-06-04"]
//	output:
//	  dir: reports
//	  formats: [json, csv, xlsx]
//
// # Usage
//
// Load configuration at application startup:
//
//	cfg, err := config.Load("attendance.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Testing
//
// Use config.Default() to obtain a configuration with sensible defaults that
// does not read the environment or the file system.
package config
