package viewmodel

import (
	domainauth "github.com/Kabuna254/Job-App/internal/domain/auth"
)

// CTA is the call-to-action block at the bottom of the home page.
type CTA struct {
	Title     string
	Subtitle  string
	Primary   Link
	Secondary *Link
}

// BuildCTA picks the copy for the visitor: guests are invited to sign up,
// employers to post, seekers to browse.
func BuildCTA(s domainauth.Session) CTA {
	return domainauth.Match(s,
		func() CTA {
			return CTA{
				Title:     "Ready to Start Your Career Journey?",
				Subtitle:  "Join thousands of job seekers and employers already using our platform",
				Primary:   Link{Label: "Get Started", Href: "/register"},
				Secondary: &Link{Label: "Sign In", Href: "/login"},
			}
		},
		func(id domainauth.Identity) CTA {
			if id.Role == domainauth.RoleEmployer {
				return CTA{
					Title:    "Ready to Find Great Talent?",
					Subtitle: "Post your job openings and connect with qualified candidates",
					Primary:  Link{Label: "Post a Job", Href: "/create-job"},
				}
			}
			return CTA{
				Title:    "Ready to Find Your Next Opportunity?",
				Subtitle: "Browse thousands of opportunities and apply to your dream job",
				Primary:  Link{Label: "Browse Jobs", Href: "/jobBrowser"},
			}
		},
	)
}
