package transport

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/dmitrymomot/wired/core/pipeline"
	"github.com/dmitrymomot/wired/core/scope"
	"github.com/dmitrymomot/wired/core/store"
)

// RemainingPath holds the path segments not yet consumed by Routes.
type RemainingPath struct {
	segments []string
}

// NewRemainingPath splits an URL path into segments. Empty segments are dropped.
func NewRemainingPath(path string) RemainingPath {
	var segs []string
	for seg := range strings.SplitSeq(path, "/") {
		if seg != "" {
			segs = append(segs, seg)
		}
	}
	return RemainingPath{segments: segs}
}

// Clone implements store.Cloner.
func (p RemainingPath) Clone() RemainingPath {
	return RemainingPath{segments: slices.Clone(p.segments)}
}

// Empty reports whether every segment was consumed.
func (p RemainingPath) Empty() bool {
	return len(p.segments) == 0
}

// String returns the unconsumed part of the path.
func (p RemainingPath) String() string {
	return "/" + strings.Join(p.segments, "/")
}

// Remaining returns the path left for the current unit of work.
func Remaining(c scope.RequestScoped) RemainingPath {
	p, _ := store.GetCloned[RemainingPath](c.RequestScope())
	return p
}

// NextSegment consumes the next path segment. It returns "" and false once the
// path is exhausted.
func NextSegment(c scope.RequestScoped) (string, bool) {
	h, ok := store.GetMut[RemainingPath](c.RequestScope())
	if !ok {
		return "", false
	}
	defer h.Release()

	p := h.Ptr()
	if len(p.segments) == 0 {
		return "", false
	}
	seg := p.segments[0]
	p.segments = p.segments[1:]
	return seg, true
}

// Routes dispatches on the next path segment. The empty key matches an
// exhausted path. An unknown segment is a 404 for GET and HEAD and a 501 for
// every other method.
func Routes[C scope.RequestScoped](routes map[string]pipeline.Handler[C]) pipeline.Handler[C] {
	return func(ctx context.Context, c C) (pipeline.Outcome, error) {
		seg, _ := NextSegment(c)
		h, ok := routes[seg]
		if !ok || h == nil {
			return pipeline.Break, unknownRoute(c)
		}
		return h(ctx, c)
	}
}

// Methods dispatches on the HTTP method once the path is fully consumed.
// OPTIONS is answered with the Allow header unless a handler is registered for
// it, and HEAD falls back to the GET handler.
func Methods[C scope.RequestScoped](handlers map[string]pipeline.Handler[C]) pipeline.Handler[C] {
	allow := allowed(handlers)
	return func(ctx context.Context, c C) (pipeline.Outcome, error) {
		if !Remaining(c).Empty() {
			return pipeline.Break, unknownRoute(c)
		}

		method := methodOf(c)
		if h, ok := handlers[method]; ok && h != nil {
			return h(ctx, c)
		}
		switch method {
		case http.MethodHead:
			if h, ok := handlers[http.MethodGet]; ok && h != nil {
				return h(ctx, c)
			}
		case http.MethodOptions:
			return Stop(c, Response{
				Status: http.StatusNoContent,
				Header: http.Header{"Allow": {allow}},
			})
		}
		return pipeline.Break, ErrMethodNotAllowed.WithDetails(map[string]any{"allow": allow})
	}
}

func allowed[C any](handlers map[string]pipeline.Handler[C]) string {
	methods := make([]string, 0, len(handlers)+2)
	for m := range handlers {
		methods = append(methods, m)
	}
	if _, ok := handlers[http.MethodGet]; ok && !slices.Contains(methods, http.MethodHead) {
		methods = append(methods, http.MethodHead)
	}
	if !slices.Contains(methods, http.MethodOptions) {
		methods = append(methods, http.MethodOptions)
	}
	slices.Sort(methods)
	return strings.Join(methods, ", ")
}

func unknownRoute(c scope.RequestScoped) error {
	switch methodOf(c) {
	case http.MethodGet, http.MethodHead, "":
		return ErrNotFound
	default:
		return ErrNotImplemented
	}
}

func methodOf(c scope.RequestScoped) string {
	if r, ok := HTTPRequest(c); ok {
		return r.Method
	}
	return ""
}
