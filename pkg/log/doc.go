/*
Package log provides structured logging using zerolog.

A single global logger is initialised via Init and filtered by level.
Console output (the default) is meant for interactive hook debugging; JSON
output suits log aggregation. Child loggers carry hook context:

	hookLog := log.WithService("keystone")
	hookLog.Debug().Str("vip", vip).Msg("building VIP resource")

	relLog := log.WithRelation("ha:1")
	relLog.Info().Int("keys", len(payload)).Msg("relation data published")

Logs go to stderr by default so they never interleave with payload output
on stdout.
*/
package log
