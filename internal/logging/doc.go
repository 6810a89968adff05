// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

// Package logging provides centralized zerolog-based structured logging for Audiencia.
//
// A single global logger is configured once at startup with Init and used
// through the level helpers:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("organizer_id", id).Msg("Loaded active events")
//	logging.Warn().Err(err).Str("kind", "city").Msg("Report degraded to empty table")
//
// Request-scoped fields (request_id, correlation_id) travel in the context
// and are attached with Ctx:
//
//	logging.Ctx(ctx).Info().Int("rows", n).Msg("Report normalized")
//
// # Configuration
//
// Environment Variables (mapped through internal/config):
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json, console (default: json)
//	LOG_CALLER  - include caller file:line (default: false)
//
// # slog interop
//
// NewSlogLogger returns an *slog.Logger backed by zerolog. The supervisor
// tree hands it to sutureslog so supervisor events land in the same stream.
//
// Always terminate log chains with .Msg() or .Send(); an unterminated event
// is never written.
package logging
