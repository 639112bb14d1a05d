// Package router maps request paths to demo pages.
//
// A Table is the static route table. It is built once at startup by
// NewTable, which rejects duplicate or non-canonical paths, and is
// immutable afterwards. Unknown paths never fail: they resolve to a Route
// whose Page is NotFoundPage and which carries the requested path.
//
// A Router holds the navigation state of one browser tab. It is owned by a
// single goroutine (the session event loop) and is not safe for concurrent
// use:
//
//	table, err := router.NewTable(
//	    router.Route{Path: "/", Page: "home", Title: "Home", Label: "Home"},
//	    router.Route{Path: "/semantic", Page: "semantic", Title: "Semantic HTML", Label: "Semantic"},
//	)
//	r := router.New(table)
//	unsubscribe := r.Subscribe(func(c router.Change) {
//	    log.Printf("%s -> %s (%s)", c.Previous, c.Path, c.Route.Page)
//	})
//	defer unsubscribe()
//	r.Navigate("/semantic/")   // CurrentPath() == "/semantic"
//	r.Navigate("/nope")        // Current().Page == router.NotFoundPage
//
// # Path Canonicalization
//
// Navigate and Resolve canonicalize their input before matching: repeated
// slashes collapse, "." segments drop, ".." segments resolve and a trailing
// slash is removed. Query strings and fragments are ignored. Input that
// cannot be canonicalized (backslashes, NUL bytes, bad percent escapes,
// ".." above the root) is kept verbatim and resolves to not-found.
package router
