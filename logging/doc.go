// Package logging provides a tiny abstraction over slog so taleweaver
// components can depend on a minimal interface (Logger) while allowing users
// to plug any structured logger. It also offers a richer StoryLogger with
// contextual helpers (session, component) and domain specific logging for
// model calls and media subtasks.
package logging
