// Package snipdeck provides the main entry point for the snipdeck code
// snippet catalog. It offers a high-level client over the catalog loader and
// the query engine, plus a per-user Session that drives an interactive view.
//
// The client wraps the loader with additional features including:
// - A cached snapshot of the last full load with copy-on-read semantics
// - Event hooks for catalog reloads and snippet changes
// - Flexible configuration through functional options
//
// Example usage:
//
//	// Create a client over the embedded catalog
//	sd, err := snipdeck.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Query the catalog
//	results, err := sd.Query(ctx, query.Filter{Search: "async", Category: snippets.Python})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, s := range results {
//	    fmt.Printf("%s: %s\n", s.ID, s.Title)
//	}
//
//	// Drive an interactive view
//	session := sd.NewSession()
//	session.Start(ctx)
//	if err := session.Wait(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	session.SetSearch("component")
//	view, _ := session.Visible()
package snipdeck
