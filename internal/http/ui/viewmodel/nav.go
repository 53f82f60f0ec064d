// Package viewmodel holds the template-facing view models for the UI chrome.
package viewmodel

import (
	domainauth "github.com/Kabuna254/Job-App/internal/domain/auth"
)

// Link is one navigation entry.
type Link struct {
	Label string
	Href  string
	// Action marks entries that submit a POST form instead of navigating.
	Action bool
	// Danger styles destructive actions.
	Danger bool
}

// Menu is a named dropdown of links.
type Menu struct {
	Name  string // stable key used by MenuState
	Label string
	Links []Link
}

// Dropdown keys.
const (
	MenuFindJobs     = "find-jobs"
	MenuCareer       = "career"
	MenuForEmployers = "for-employers"
	MenuResources    = "resources"
	MenuAccount      = "account"
)

// NavSections is what the navigation renders for a session. Exactly one of
// Guest and Authenticated is true.
type NavSections struct {
	Seeker        bool
	Employer      bool
	Guest         bool
	Authenticated bool
	// Menus are the role dropdowns, in display order.
	Menus []Menu
	// General links are shown to everyone.
	General []Link
	// Account is the user dropdown; nil for guests.
	Account *Menu
	// GuestLinks are Login and Register; empty when signed in.
	GuestLinks []Link
	UserLabel  string
}

var (
	seekerMenus = []Menu{
		{Name: MenuFindJobs, Label: "Find Jobs", Links: []Link{
			{Label: "Browse All Jobs", Href: "/jobBrowser"},
			{Label: "Technology Jobs", Href: "/jobs/technology"},
			{Label: "Finance Jobs", Href: "/jobs/finance"},
			{Label: "Healthcare Jobs", Href: "/jobs/healthcare"},
			{Label: "Remote Jobs", Href: "/jobs/remote"},
		}},
		{Name: MenuCareer, Label: "Career Resources", Links: []Link{
			{Label: "Career Advice", Href: "/career-advice"},
			{Label: "Resume Builder", Href: "/resume-builder"},
			{Label: "Interview Tips", Href: "/interview-tips"},
			{Label: "Salary Guide", Href: "/salary-guide"},
		}},
	}
	employerMenus = []Menu{
		{Name: MenuForEmployers, Label: "For Employers", Links: []Link{
			{Label: "Post a Job", Href: "/create-job"},
			{Label: "Manage Jobs", Href: "/manage-jobs"},
			{Label: "View Applications", Href: "/applications"},
			{Label: "Search Candidates", Href: "/candidate-search"},
		}},
		{Name: MenuResources, Label: "Resources", Links: []Link{
			{Label: "Hiring Guide", Href: "/hiring-guide"},
			{Label: "Pricing Plans", Href: "/pricing"},
			{Label: "Support", Href: "/employer-support"},
		}},
	}
	generalLinks = []Link{
		{Label: "Browse Jobs", Href: "/jobBrowser"},
		{Label: "Companies", Href: "/companies"},
	}
	guestLinks = []Link{
		{Label: "Login", Href: "/login"},
		{Label: "Register", Href: "/register"},
	}
)

// BuildNav derives the navigation for s. It is pure.
func BuildNav(s domainauth.Session) NavSections {
	return domainauth.Match(s,
		func() NavSections {
			return NavSections{Guest: true, General: generalLinks, GuestLinks: guestLinks}
		},
		func(id domainauth.Identity) NavSections {
			nav := NavSections{
				Authenticated: true,
				Seeker:        id.Role == domainauth.RoleSeeker,
				Employer:      id.Role == domainauth.RoleEmployer,
				General:       generalLinks,
				UserLabel:     id.Label(),
			}
			switch {
			case nav.Seeker:
				nav.Menus = seekerMenus
			case nav.Employer:
				nav.Menus = employerMenus
			}
			nav.Account = &Menu{Name: MenuAccount, Label: nav.UserLabel, Links: []Link{
				{Label: "My Profile", Href: "/profile"},
				{Label: "Settings", Href: "/settings"},
				{Label: "Logout", Href: "/logout", Action: true},
				{Label: "Delete Account", Href: "/account/delete", Action: true, Danger: true},
			}}
			return nav
		},
	)
}

// MenuState tracks which menus are open. The zero value is all closed, which
// is how every navigation renders.
type MenuState struct {
	MobileOpen bool
	Dropdown   string
}

// ToggleMobile flips the mobile menu.
func (m MenuState) ToggleMobile() MenuState {
	m.MobileOpen = !m.MobileOpen
	return m
}

// ToggleDropdown opens name, or closes it when it is already open. Opening a
// dropdown closes any other.
func (m MenuState) ToggleDropdown(name string) MenuState {
	if m.Dropdown == name {
		m.Dropdown = ""
	} else {
		m.Dropdown = name
	}
	return m
}

// Close closes every menu. Closing a closed state is a no-op.
func (m MenuState) Close() MenuState { return MenuState{} }

// IsOpen reports whether dropdown name is open.
func (m MenuState) IsOpen(name string) bool { return name != "" && m.Dropdown == name }
