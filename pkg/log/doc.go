/*
Package log provides structured logging for warrenchain using zerolog.

The log package wraps the zerolog library to provide JSON-structured logging with
component-specific loggers, configurable log levels, and helper functions for
common logging patterns. All logs include timestamps and support filtering by
severity level for production debugging.

# Architecture

warrenchain's logging system provides structured JSON logging with minimal overhead:

	┌──────────────────── LOGGING SYSTEM ──────────────────────┐
	│                                                            │
	│  ┌────────────────────────────────────────────┐          │
	│  │            Global Logger                    │          │
	│  │  - Zerolog instance                         │          │
	│  │  - Initialized via log.Init()               │          │
	│  │  - Thread-safe for concurrent use           │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │           Configuration                     │          │
	│  │  - Level: debug/info/warn/error             │          │
	│  │  - Format: JSON or console (human)          │          │
	│  │  - Output: stdout, file, or custom writer   │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │         Component Loggers                   │          │
	│  │  - WithComponent("chainnode")                │          │
	│  │  - WithNodeID("node-abc123")                │          │
	│  │  - WithServiceID("rendezvous")               │          │
	│  │  - WithTaskID("mine-block-482")              │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │            Log Output                       │          │
	│  │                                              │          │
	│  │  JSON Format:                               │          │
	│  │  {                                           │          │
	│  │    "level": "info",                         │          │
	│  │    "component": "chainnode",                │          │
	│  │    "time": "2026-07-31T10:30:00Z",         │          │
	│  │    "message": "block mined"                 │          │
	│  │  }                                           │          │
	│  │                                              │          │
	│  │  Console Format:                            │          │
	│  │  2026-07-31T10:30:00Z INF block mined        │       │
	│  │    component=chainnode                      │       │
	│  └────────────────────────────────────────────┘           │
	└────────────────────────────────────────────────────────┘

# Core Components

Global Logger:
  - Package-level zerolog.Logger instance
  - Initialized once via log.Init()
  - Accessible from all warrenchain packages
  - Thread-safe concurrent writes

Log Levels:
  - Debug: Detailed debugging information
  - Info: General informational messages
  - Warn: Warning messages (potential issues)
  - Error: Error messages (operation failed)
  - Fatal: Critical errors (process exits)

Configuration:
  - Level: Filter messages below threshold
  - JSONOutput: JSON vs human-readable console
  - Output: io.Writer for log destination (stdout, file)

Context Loggers:
  - WithComponent: Add component name to all logs
  - WithNodeID: Add node ID context
  - WithServiceID: Add service ID context
  - WithTaskID: Add task ID context

# Log Levels

Debug Level:
  - Purpose: Detailed debugging information
  - Usage: Development and troubleshooting
  - Performance: Verbose, may impact production
  - Example: "Evaluating transaction against mempool: nonce=4"

Info Level:
  - Purpose: General informational messages
  - Usage: Default production level
  - Performance: Moderate volume
  - Example: "Block mined: height=482 txs=3"

Warn Level:
  - Purpose: Potential issues or unexpected conditions
  - Usage: Situations that may require attention
  - Performance: Low volume
  - Example: "Mempool full, rejecting transaction"

Error Level:
  - Purpose: Operation failures that need investigation
  - Usage: Failed operations, exceptions
  - Performance: Low volume
  - Example: "Failed to persist block: bbolt transaction aborted"

Fatal Level:
  - Purpose: Critical errors causing process termination
  - Usage: Unrecoverable errors only
  - Behavior: Logs message and exits process (os.Exit(1))
  - Example: "Failed to open chain database: %v"

# Usage

Initializing the Logger:

	import "github.com/cuemby/warrenchain/pkg/log"

	// JSON output (production)
	log.Init(log.Config{
		Level:      log.InfoLevel,
		JSONOutput: true,
		Output:     os.Stdout,
	})

	// Console output (development)
	log.Init(log.Config{
		Level:      log.DebugLevel,
		JSONOutput: false,
		Output:     os.Stdout,
	})

	// Custom output (file)
	file, _ := os.OpenFile("/var/log/warren-node.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	log.Init(log.Config{
		Level:      log.InfoLevel,
		JSONOutput: true,
		Output:     file,
	})

Simple Logging:

	log.Info("Chain node started")
	log.Debug("Checking mempool occupancy")
	log.Warn("High mempool occupancy detected")
	log.Error("Failed to dial rendezvous host")
	log.Fatal("Cannot start without a chain database") // Exits process

Structured Logging:

	log.Logger.Info().
		Uint64("height", 482).
		Int("tx_count", 3).
		Msg("Block mined")

	log.Logger.Error().
		Err(err).
		Str("peer_addr", "10.0.0.4:9443").
		Msg("Rendezvous peer exchange failed")

Component Loggers:

	// Create component-specific logger
	chainLog := log.WithComponent("chainnode")
	chainLog.Info().Msg("Starting mining loop")
	chainLog.Debug().Uint64("height", 482).Msg("Evaluating mempool for next block")

	// Multiple context fields
	peerLog := log.WithComponent("rendezvous").
		With().Str("peer_addr", "10.0.0.4:9443").
		Logger()
	peerLog.Info().Msg("Peer connected")
	peerLog.Error().Err(err).Msg("Peer exchange failed")

Context Logger Helpers:

	// Node-specific logs
	nodeLog := log.WithNodeID("node-abc123")
	nodeLog.Info().Msg("Node resumed from existing database")

	// Service-specific logs
	svcLog := log.WithServiceID("rendezvous")
	svcLog.Info().Msg("Rendezvous host listening")

	// Task-specific logs
	taskLog := log.WithTaskID("mine-block-482")
	taskLog.Info().Msg("Mining attempt started")

Complete Example:

	package main

	import (
		"errors"
		"os"

		"github.com/cuemby/warrenchain/pkg/log"
	)

	func main() {
		// Initialize logger
		log.Init(log.Config{
			Level:      log.InfoLevel,
			JSONOutput: true,
			Output:     os.Stdout,
		})

		log.Info("warren-node starting")

		// Component-specific logging
		chainLog := log.WithComponent("chainnode")
		chainLog.Info().
			Str("node_id", "node-1").
			Int("tx_count", 5).
			Msg("Mining block")

		// Error logging
		err := errors.New("connection refused")
		log.Logger.Error().
			Err(err).
			Str("component", "rendezvous").
			Msg("Failed to connect to peer")

		log.Info("warren-node stopped")
	}

# Integration Points

This package integrates with:

  - pkg/chainnode: Logs block production, mempool rejections, skipped transactions and resume events
  - pkg/dispatcher: Logs command dispatch and middleware timing
  - pkg/rendezvous: Logs listen, peer connect/disconnect and dial failures
  - cmd/warren-node: Logs process lifecycle and CLI subcommand execution

pkg/mempool and pkg/api do not log.

# Log Output Examples

JSON Format (Production):

	{"level":"info","component":"chainnode","time":"2026-07-31T10:30:00Z","message":"Block mined"}
	{"level":"info","component":"chainnode","height":482,"tx_count":3,"time":"2026-07-31T10:30:01Z","message":"block mined"}
	{"level":"error","component":"rendezvous","peer_addr":"10.0.0.4:9443","error":"connection refused","time":"2026-07-31T10:30:02Z","message":"Peer exchange failed"}

Console Format (Development):

	2026-07-31T10:30:00Z INF Block mined component=chainnode
	2026-07-31T10:30:01Z INF block mined component=chainnode height=482 tx_count=3
	2026-07-31T10:30:02Z ERR Peer exchange failed error="connection refused" component=rendezvous peer_addr=10.0.0.4:9443

# Design Patterns

Global Logger Pattern:
  - Single package-level Logger instance
  - Initialized once at application start
  - Accessible from all packages without passing
  - Simplifies logging in deeply nested calls

Context Logger Pattern:
  - Create child loggers with context fields
  - Pass context loggers to functions
  - Automatically includes context in all logs
  - Avoids repetitive field specification

Structured Logging Pattern:
  - Use typed fields (.Str, .Int, .Err)
  - Enables log aggregation and querying
  - Better than string concatenation
  - Parseable by log analysis tools

Error Logging Pattern:
  - Always use .Err(err) for error objects
  - Provides stack trace information
  - Enables error tracking and alerting
  - Consistent error format across codebase

# Performance Characteristics

Logging Overhead:
  - Disabled level: 0ns (compile-time optimization)
  - JSON encode: ~500ns per log line
  - Console format: ~1µs per log line
  - String field: +50ns per field
  - Int field: +30ns per field

Memory Allocation:
  - Zero allocation for disabled levels
  - ~100 bytes per log line (JSON)
  - ~200 bytes per log line (console)
  - Amortized by buffer pooling

Throughput:
  - JSON: ~2M log lines per second
  - Console: ~1M log lines per second
  - Bottleneck: I/O write speed
  - Async writes recommended for high volume

Log Level Impact:
  - Debug: High volume, use in development only
  - Info: Moderate volume, suitable for production
  - Warn/Error: Low volume, minimal impact
  - Recommendation: Info level in production

# Troubleshooting

Common Issues:

No Log Output:
  - Symptom: No logs appearing
  - Check: log.Init() called before logging
  - Check: Log level set appropriately (Debug < Info < Warn < Error)
  - Solution: Initialize logger in main() before any logging

Excessive Log Volume:
  - Symptom: Disk space fills quickly
  - Cause: Debug level in production
  - Check: Log level configuration
  - Solution: Use Info level in production, rotate logs

Missing Context Fields:
  - Symptom: Logs missing component or ID fields
  - Cause: Using global Logger instead of context logger
  - Solution: Use WithComponent() or create child loggers

Log Parsing Fails:
  - Symptom: Cannot parse JSON logs
  - Cause: Invalid JSON in message field
  - Check: Embedded quotes or control characters
  - Solution: Use .Str() instead of string interpolation

Performance Degradation:
  - Symptom: Slow application performance
  - Cause: Excessive logging in hot path
  - Check: Log statements in tight loops (e.g. the mining loop)
  - Solution: Reduce log frequency, use sampling

# Log Rotation

File-Based Logging:

warrenchain doesn't include built-in log rotation. Use external tools:

Logrotate (Linux):
	# /etc/logrotate.d/warren-node
	/var/log/warren-node/*.log {
	    daily
	    rotate 7
	    compress
	    delaycompress
	    missingok
	    notifempty
	    copytruncate
	}

Systemd Journal:
	# Automatic rotation by systemd
	journalctl -u warren-node -f

Docker/Kubernetes:
	# Use container runtime log drivers
	# JSON logs to stdout (already implemented)

# Log Aggregation

Recommended Tools:

Elasticsearch + Filebeat:
  - Filebeat ships logs to Elasticsearch
  - Kibana for visualization and search
  - Query: component:"chainnode" AND level:"error"

Loki + Promtail:
  - Lightweight log aggregation
  - Grafana integration
  - Query: {component="chainnode"} |= "error"

CloudWatch Logs:
  - AWS native log aggregation
  - Metric filters for alerting
  - Query: fields @message | filter component = "chainnode"

Datadog:
  - Full-stack observability
  - APM and log correlation
  - Query: service:warren-node component:chainnode status:error

# Monitoring

Log-Based Alerts:

High Error Rate:
  - Query: rate(log entries with level="error"[5m]) > 10
  - Description: More than 10 errors per second
  - Action: Check recent errors, investigate root cause

No Logs:
  - Query: absent(log entries[1m])
  - Description: No logs received in 1 minute
  - Action: Check warren-node process, log pipeline

Specific Error Pattern:
  - Query: log entries containing "failed to connect to peer"
  - Description: Rendezvous connectivity issues
  - Action: Check rendezvous host status, TLS configuration

# Security

Log Content:
  - Never log secrets or sensitive data
  - Redact private keys and TLS material
  - Use log scrubbing for compliance (GDPR, PCI)
  - Review logs before sharing externally

Log Access:
  - Restrict log file permissions (0640)
  - Limit log aggregation access (RBAC)
  - Audit log access in production
  - Encrypt logs at rest and in transit

Log Injection:
  - Use structured logging (prevents injection)
  - Never concatenate user input into log messages
  - Use typed fields (.Str, .Int) for user data
  - Validate/sanitize before logging if necessary

# Best Practices

Do:
  - Use Info level for production
  - Use structured fields for queryable data
  - Create component-specific loggers
  - Log errors with .Err() for stack traces
  - Include context (node ID, peer address, block height)

Don't:
  - Log sensitive data (private keys, TLS material)
  - Use Debug level in production
  - Log in tight loops (use sampling)
  - Concatenate strings (use .Str, .Int)
  - Block on log writes (use buffered output)

# See Also

  - Zerolog documentation: https://github.com/rs/zerolog
  - Structured logging: https://www.thoughtworks.com/radar/techniques/structured-logging
  - 12-Factor App Logs: https://12factor.net/logs
  - Log aggregation: https://www.elastic.co/what-is/log-aggregation
*/
package log
