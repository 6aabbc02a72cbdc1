package resolver

import (
	"sync"

	"github.com/dolthub/swiss"
)

// Globals is the set of recognized ambient names. A free identifier found
// in this set is not a cell reference, it resolves against the host
// environment instead.
type Globals struct {
	m *swiss.Map[string, struct{}]
}

// NewGlobals returns the set of the given names. A nil slice means the
// default set.
func NewGlobals(names []string) *Globals {
	if names == nil {
		return Default()
	}
	g := &Globals{m: swiss.NewMap[string, struct{}](uint32(len(names)))}
	for _, n := range names {
		g.m.Put(n, struct{}{})
	}
	return g
}

// Has returns true if name is in the set.
func (g *Globals) Has(name string) bool {
	_, ok := g.m.Get(name)
	return ok
}

var (
	defaultOnce sync.Once
	defaultSet  *Globals
)

// Default returns the shared default globals set. The set is built on first
// use and never mutated afterward.
func Default() *Globals {
	defaultOnce.Do(func() {
		g := &Globals{m: swiss.NewMap[string, struct{}](uint32(len(defaultNames)))}
		for _, n := range defaultNames {
			g.m.Put(n, struct{}{})
		}
		defaultSet = g
	})
	return defaultSet
}

// DefaultGlobals returns a copy of the default recognized-globals list, the
// ECMAScript built-ins plus the usual browser ambient names.
func DefaultGlobals() []string {
	names := make([]string, len(defaultNames))
	copy(names, defaultNames)
	return names
}

var defaultNames = []string{
	"AbortController",
	"AbortSignal",
	"AggregateError",
	"Array",
	"ArrayBuffer",
	"Atomics",
	"AudioContext",
	"BigInt",
	"BigInt64Array",
	"BigUint64Array",
	"Blob",
	"Boolean",
	"CSS",
	"CustomEvent",
	"DOMParser",
	"DataView",
	"Date",
	"Element",
	"Error",
	"EvalError",
	"Event",
	"EventTarget",
	"File",
	"FileList",
	"FileReader",
	"FinalizationRegistry",
	"Float32Array",
	"Float64Array",
	"FormData",
	"Function",
	"Headers",
	"Image",
	"ImageData",
	"Infinity",
	"Int16Array",
	"Int32Array",
	"Int8Array",
	"IntersectionObserver",
	"Intl",
	"JSON",
	"Map",
	"Math",
	"MutationObserver",
	"NaN",
	"Node",
	"NodeList",
	"Number",
	"Object",
	"Path2D",
	"Promise",
	"Proxy",
	"RangeError",
	"ReferenceError",
	"Reflect",
	"RegExp",
	"Request",
	"ResizeObserver",
	"Response",
	"Set",
	"SharedArrayBuffer",
	"String",
	"Symbol",
	"SyntaxError",
	"TextDecoder",
	"TextEncoder",
	"TypeError",
	"URIError",
	"URL",
	"URLSearchParams",
	"Uint16Array",
	"Uint32Array",
	"Uint8Array",
	"Uint8ClampedArray",
	"WeakMap",
	"WeakRef",
	"WeakSet",
	"WebSocket",
	"Worker",
	"XMLHttpRequest",
	"atob",
	"btoa",
	"caches",
	"cancelAnimationFrame",
	"clearInterval",
	"clearTimeout",
	"console",
	"createImageBitmap",
	"crypto",
	"decodeURI",
	"decodeURIComponent",
	"devicePixelRatio",
	"document",
	"encodeURI",
	"encodeURIComponent",
	"escape",
	"eval",
	"fetch",
	"globalThis",
	"history",
	"indexedDB",
	"isFinite",
	"isNaN",
	"localStorage",
	"location",
	"navigator",
	"parseFloat",
	"parseInt",
	"performance",
	"queueMicrotask",
	"requestAnimationFrame",
	"requestIdleCallback",
	"screen",
	"sessionStorage",
	"setInterval",
	"setTimeout",
	"structuredClone",
	"undefined",
	"unescape",
	"window",
}
