package httpx

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	domainauth "github.com/Kabuna254/Job-App/internal/domain/auth"
	"github.com/Kabuna254/Job-App/internal/domain/listing"
	"github.com/Kabuna254/Job-App/internal/http/ui/viewmodel"
)

// HomePage is the data for the landing page.
type HomePage struct {
	viewmodel.Layout
	Listing    listing.View
	Pagination viewmodel.Pagination
	// Notice replaces the job list when the fetch failed.
	Notice     string
	CTA        viewmodel.CTA
	Categories []listing.Category
	Companies  []listing.Company
}

// Home renders the landing page. The session and the listing are resolved
// concurrently; neither can fail.
func (h *UIHandlers) Home(w http.ResponseWriter, r *http.Request) {
	c := h.clientFor(r)
	page := pageParam(r)

	var (
		sess domainauth.Session
		view listing.View
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		sess = c.sessions.CurrentSession(ctx)
		return nil
	})
	g.Go(func() error {
		view = h.Listings.Page(ctx, page)
		return nil
	})
	_ = g.Wait()

	data := HomePage{
		Layout:     h.layout(w, r, c, sess, "Find Your Dream Job in Kenya", PageHome),
		Listing:    view,
		Pagination: viewmodel.PaginationFor(view, PathHome),
		CTA:        viewmodel.BuildCTA(sess),
		Categories: listing.Categories(),
		Companies:  listing.FeaturedCompanies(),
	}
	if view.Error != "" {
		data.Notice = FlashListingDegraded
	}
	h.renderPage(w, r, &data)
}

// EmployerDashboardPage is the employer landing page.
type EmployerDashboardPage struct {
	viewmodel.Layout
	Identity domainauth.Identity
}

// EmployerDashboard renders the employer landing page. RequireRole has
// already put an employer session on the context.
func (h *UIHandlers) EmployerDashboard(w http.ResponseWriter, r *http.Request) {
	c := h.clientFor(r)
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		sess = c.sessions.CurrentSession(r.Context())
	}
	id, _ := sess.Identity()
	data := EmployerDashboardPage{
		Layout:   h.layout(w, r, c, sess, "Employer Dashboard", PageEmployerDashboard),
		Identity: id,
	}
	h.renderPage(w, r, &data)
}
