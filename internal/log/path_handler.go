package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// HomeShorthand replaces the home directory in logged paths.
const HomeShorthand = "~"

// PathHandler wraps an slog.Handler and rewrites string attributes that start
// with the user's home directory so they start with "~" instead.
type PathHandler struct {
	// handler receives the rewritten records.
	handler slog.Handler
	// home is the prefix to shorten. Empty disables rewriting.
	home string
}

// NewPathHandler creates a PathHandler around handler using home as the
// directory to shorten. If handler is nil, slog.Default().Handler() is used.
func NewPathHandler(handler slog.Handler, home string) *PathHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	home = strings.TrimSuffix(home, string(filepath.Separator))
	return &PathHandler{handler: handler, home: home}
}

// Enabled delegates to the underlying handler.
func (h *PathHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle rewrites the record's attributes and passes it on.
func (h *PathHandler) Handle(ctx context.Context, r slog.Record) error {
	rewritten := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		rewritten.AddAttrs(h.rewriteAttr(a))
		return true
	})
	return h.handler.Handle(ctx, rewritten)
}

// WithAttrs returns a new handler with the rewritten attributes added.
func (h *PathHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = h.rewriteAttr(a)
	}
	return &PathHandler{handler: h.handler.WithAttrs(out), home: h.home}
}

// WithGroup returns a new handler with the given group name.
func (h *PathHandler) WithGroup(name string) slog.Handler {
	return &PathHandler{handler: h.handler.WithGroup(name), home: h.home}
}

func (h *PathHandler) rewriteAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			out[i] = h.rewriteAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}

	if a.Value.Kind() == slog.KindString {
		return slog.String(a.Key, ShortenHome(a.Value.String(), h.home))
	}

	// Errors usually carry the offending path in their message.
	if err, ok := a.Value.Any().(error); ok && err != nil {
		return slog.String(a.Key, ShortenHome(err.Error(), h.home))
	}
	return a
}

// ShortenHome replaces every occurrence of home in s with "~" when it is
// followed by a path separator or ends s. An empty home returns s unchanged.
func ShortenHome(s, home string) string {
	if home == "" || home == string(filepath.Separator) || !strings.Contains(s, home) {
		return s
	}

	var b strings.Builder
	for {
		i := strings.Index(s, home)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		end := i + len(home)
		if end == len(s) || os.IsPathSeparator(s[end]) {
			b.WriteString(s[:i])
			b.WriteString(HomeShorthand)
		} else {
			b.WriteString(s[:end])
		}
		s = s[end:]
	}
}

// NewLogger creates a text logger writing to w. Level is Debug when verbose
// is true and Warn otherwise.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewPathHandler(slog.NewTextHandler(w, handlerOptions(verbose)), xdg.Home))
}

// NewJSONLogger is NewLogger with JSON output.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewPathHandler(slog.NewJSONHandler(w, handlerOptions(verbose)), xdg.Home))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
