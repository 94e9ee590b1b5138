// Package cli contains the command line interface for dotenv.
//
// # Usage
//
//	dotenv [flags] [print] [NAME...]
//	dotenv [flags] check --require NAME --assert EXPR
//	dotenv [flags] exec [--path DIR] -- COMMAND [ARG...]
//	dotenv [flags] browse
//	dotenv [flags] init [--force]
//	dotenv version
//
// Sources are given with --file (default ".env"); repeat it to load several
// files in order. "-" reads stdin after all files.
//
// # Configuration
//
// Flag defaults are read from $XDG_CONFIG_HOME/dotenv/config, itself a
// dotenv file, and from config.json in the same directory. Use init to write
// one with the current values:
//
//	log_level=debug
//	log_format=text
//	log_pretty=false
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     $XDG_CACHE_HOME/dotenv/pprof)
package cli
