// Package pages contains the seven demonstration pages of the
// accessibility demo: the home page, semantic and non-semantic HTML,
// colour accessibility, map accessibility, ARIA live regions with a
// focus-trapped modal, and the accessibility checklist.
//
// Each page is created per mount through a shell.Factory and keeps its
// state on the page value. Pages that schedule timers implement
// shell.Unmounter so that leaving the page cancels them.
//
//	table, _ := router.NewTable(pages.Routes()...)
//	catalog, _ := pages.LoadCatalog()
//	sh := shell.New(env, pages.Factories(catalog))
package pages
