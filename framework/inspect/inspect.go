// Package inspect serves a read-only HTTP view of an injector's bindings.
//
//	GET /healthz          injector id and binding count
//	GET /bindings         every binding, sorted by type name
//	GET /bindings/{type}  one binding, with a dump of the held or cached instance
//
// The type is the package-qualified name returned by container.TypeName, e.g.
// /bindings/*github.com/acme/app/logging.FileLogger.
package inspect

import (
	"net/http"
	"net/url"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/km-arc/go-inject/framework/container"
)

// BindingView is the JSON form of one binding.
type BindingView struct {
	Type         string `json:"type"`
	Kind         string `json:"kind"`
	Target       string `json:"target,omitempty"`
	Capabilities string `json:"capabilities"`
	Cached       *bool  `json:"cached,omitempty"`
	Dump         string `json:"dump,omitempty"`
}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	MaxDepth:                3,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Handler returns the inspector routes for inj.
func Handler(inj *container.Injector, logger *zap.Logger) http.Handler {
	h := &handlers{inj: inj}
	r := NewRouter(logger)
	// Bindings change at runtime.
	r.Middleware(middleware.NoCache)
	r.Get("/healthz", h.health)
	r.Prefix("/bindings", func(r *Router) {
		r.Get("/", h.list)
		r.Get("/*", h.show)
	})
	return r
}

type handlers struct {
	inj *container.Injector
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	NewResponse(w).Success(map[string]any{
		"injector": h.inj.ID().String(),
		"bindings": h.inj.Bindings().Len(),
	})
}

func (h *handlers) list(w http.ResponseWriter, _ *http.Request) {
	entries := h.inj.Bindings().Entries()
	views := make([]BindingView, 0, len(entries))
	for _, e := range entries {
		views = append(views, view(e, false))
	}
	NewResponse(w).Success(views)
}

func (h *handlers) show(w http.ResponseWriter, r *http.Request) {
	res := NewResponse(w)
	name := Param(r, "*")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	if name == "" {
		res.Error(http.StatusBadRequest, "Missing type name.")
		return
	}

	for _, e := range h.inj.Bindings().Entries() {
		if container.TypeName(e.Type) == name {
			res.Success(view(e, true))
			return
		}
	}
	res.NotFound("No binding for " + name + ".")
}

// view never produces an instance: only objects and already cached
// singletons are dumped.
func view(e container.Entry, dump bool) BindingView {
	v := BindingView{
		Type:         container.TypeName(e.Type),
		Kind:         e.Binding.Kind().String(),
		Capabilities: container.Capabilities(e.Type).String(),
	}

	var instance any
	switch b := e.Binding.(type) {
	case *container.ObjectBinding:
		instance = b.Object()
	case *container.SingletonBinding:
		v.Target = container.TypeName(b.Target())
		obj, cached := b.Cached()
		v.Cached = &cached
		instance = obj
	case *container.TypeBinding:
		v.Target = container.TypeName(b.Target())
	}

	if dump && instance != nil {
		v.Dump = dumper.Sdump(instance)
	}
	return v
}
