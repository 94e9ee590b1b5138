// Package log is the structured logger shared by the dotenv engine and the
// dotenv command. It wraps [log/slog] with a [Logger] whose configuration is
// fixed at creation by functional options, plus a process-wide default used
// by the package-level functions.
//
// # Loggers
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339Nano"))
//
//	logger = logger.With(slog.String("source", ".env"))
//	logger.InfoContext(ctx, "loaded", slog.Int("committed", 3))
//
// Messages take [slog.Attr] arguments only. Every level has a
// context-aware method and one that uses [DefaultContextProvider].
//
// The zero [Logger] discards everything, so a library can hold one as an
// optional dependency without checking for nil.
//
// # Default logger
//
// [Debug], [Info], [Warn], [Error] and their Context forms write through
// [Default], which logs text to stderr at [LevelInfo] until [Config]
// replaces its options. Commands call Config once flags are parsed.
//
// # Levels
//
// [LevelTrace] sits below [LevelDebug] and is rendered as "TRACE". The
// engine logs each committed assignment at trace and each load at debug.
//
// # Output
//
// [FormatText] is the default; [FormatJSON] emits one object per record.
// Both are colorized unless [WithPretty] disables it, in which case the
// [slog] text and JSON handlers are used as is.
package log
