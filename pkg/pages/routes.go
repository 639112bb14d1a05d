package pages

import (
	"github.com/a11ylab/a11ydemo/pkg/router"
	"github.com/a11ylab/a11ydemo/pkg/shell"
)

// Page identifiers.
const (
	HomeID        router.PageID = "home"
	SemanticID    router.PageID = "semantic"
	NonSemanticID router.PageID = "non-semantic"
	ColorID       router.PageID = "color-blind"
	MapID         router.PageID = "map"
	AriaLiveID    router.PageID = "aria-live"
	ChecklistID   router.PageID = "checklist"
)

// Routes returns the route table entries in navigation order.
func Routes() []router.Route {
	return []router.Route{
		{Path: "/", Page: HomeID, Title: "Home", Label: "Home"},
		{Path: "/semantic", Page: SemanticID, Title: "Semantic HTML", Label: "Semantic HTML"},
		{Path: "/non-semantic", Page: NonSemanticID, Title: "Non-Semantic HTML", Label: "Non-Semantic HTML"},
		{Path: "/color-blind", Page: ColorID, Title: "Color Accessibility", Label: "Color Accessibility"},
		{Path: "/map", Page: MapID, Title: "Map Accessibility", Label: "Map Accessibility"},
		{Path: "/aria-live", Page: AriaLiveID, Title: "ARIA Live & Focus Trap", Label: "ARIA Live & Focus Trap"},
		{Path: "/checklist", Page: ChecklistID, Title: "Accessibility Checklist", Label: "Accessibility Checklist"},
	}
}

// NewTable builds the router table for Routes.
func NewTable() (*router.Table, error) {
	return router.NewTable(Routes()...)
}

// Factories returns the page factories keyed by page identifier.
func Factories(catalog *Catalog) map[router.PageID]shell.Factory {
	return map[router.PageID]shell.Factory{
		HomeID:        func(env *shell.Env) shell.Page { return newHomePage(env) },
		SemanticID:    func(env *shell.Env) shell.Page { return newSemanticPage(env) },
		NonSemanticID: func(env *shell.Env) shell.Page { return newNonSemanticPage(env) },
		ColorID:       func(env *shell.Env) shell.Page { return newColorPage(env) },
		MapID:         func(env *shell.Env) shell.Page { return newMapPage(env, catalog) },
		AriaLiveID:    func(env *shell.Env) shell.Page { return newAriaLivePage(env) },
		ChecklistID:   func(env *shell.Env) shell.Page { return newChecklistPage(env, catalog) },
	}
}
