package viewmodel

// Flash is a one-shot banner shown at the top of a page.
type Flash struct {
	Kind    string // success, error, info
	Message string
}

// Layout captures shared chrome: title, nav, theme, and banners.
type Layout struct {
	Title string
	// Page selects the content template rendered inside the layout.
	Page      string
	CSRFToken string
	// RootClass is "dark" or "" and goes on the <html> element.
	RootClass string
	DarkMode  bool
	Nav       NavSections
	Menu      MenuState
	Flashes   []Flash
	Year      int
}

// LayoutProvider exposes layout metadata for renderer utilities.
type LayoutProvider interface {
	LayoutData() *Layout
}

// LayoutData implements LayoutProvider so page structs can embed Layout.
func (l *Layout) LayoutData() *Layout { return l }
