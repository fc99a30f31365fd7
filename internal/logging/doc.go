// Package logging provides structured logging for chatvault.
//
// # Overview
//
// Logging package wraps Zap with:
//   - Custom Trace level (-2, below Debug), for per-message detail from
//     a provider adapter's Stream implementation
//   - Automatic request-id field injection, one id per Vault method call
//   - Level-aware sampling (errors never sampled)
//
// # Usage
//
// Create logger from config:
//
//	cfg := logging.NewDefaultConfig()
//	logger, err := logging.NewLogger(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer logger.Sync()
//
// Log with context:
//
//	ctx := logging.WithRequestID(ctx, "req_123")
//	logger.Info(ctx, "search completed", zap.Int("results", n))
//
// Output includes automatic correlation:
//
//	{
//	  "ts": "2026-07-30T10:15:30Z",
//	  "level": "info",
//	  "msg": "search completed",
//	  "request.id": "req_123",
//	  "results": 12
//	}
//
// # Configuration Precedence
//
//  1. Defaults (NewDefaultConfig)
//  2. File (config.yaml, via internal/config)
//  3. Environment variables (CHATVAULT_LOGGING_*)
//
// # Sampling
//
// Level-aware sampling prevents log floods:
//   - Trace, Debug, Info and Warn share one sampler, configured from the
//     Info entry of Sampling.Levels (by default: first 100 per message per
//     tick, then 1 every 10); the other entries of Sampling.Levels are not
//     consulted
//   - Error+: never sampled
//
// Disable for debugging:
//
//	cfg.Sampling.Enabled = false
//
// # Testing
//
// Use TestLogger for test assertions:
//
//	tl := logging.NewTestLogger()
//	tl.Info(ctx, "test message", zap.String("key", "value"))
//	tl.AssertLogged(t, zapcore.InfoLevel, "test message")
//	tl.AssertField(t, "test message", "key", "value")
//	tl.AssertRequestIDLogged(t, "test message")
//
// # Concurrency Safety
//
// Logger is safe for concurrent use. Child loggers (With, Named) are
// independent and do not affect parent or siblings.
package logging
