// Package listing models the job listings shown on the landing page and
// reconciles the shapes the jobs API returns them in.
package listing

import "time"

// DefaultErrorReason is shown when a failed fetch carries no server message.
const DefaultErrorReason = "Failed to load jobs"

// Job is one listing card.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Salary      string    `json:"salary,omitempty"`
	Type        string    `json:"type,omitempty"`
	Description string    `json:"description,omitempty"`
	PostedAt    time.Time `json:"postedAt,omitzero"`
	IsDemo      bool      `json:"isDemo,omitempty"`
}

// View is what the landing page renders: either real jobs with paging or the
// demo set, selected by UseDemo.
type View struct {
	Jobs       []Job  `json:"jobs"`
	Page       int    `json:"page"`
	TotalPages int    `json:"totalPages"`
	UseDemo    bool   `json:"useDemo"`
	Error      string `json:"error,omitempty"`
}

// ShowPagination reports whether paging controls apply to v.
func (v View) ShowPagination() bool { return !v.UseDemo && v.TotalPages > 1 }

// HasPrev reports whether a previous page exists.
func (v View) HasPrev() bool { return v.Page > 1 }

// HasNext reports whether a next page exists.
func (v View) HasNext() bool { return v.Page < v.TotalPages }

// PrevPage is the previous page number, never below 1.
func (v View) PrevPage() int { return ClampPage(v.Page-1, v.TotalPages) }

// NextPage is the next page number, never above TotalPages.
func (v View) NextPage() int { return ClampPage(v.Page+1, v.TotalPages) }

// ClampPage bounds page to [1, totalPages]. A totalPages below 1 counts as 1.
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// DemoJobs returns the built-in placeholder listings stamped with now.
func DemoJobs(now time.Time) []Job {
	return []Job{
		{
			ID:          "demo1",
			Title:       "Senior Software Engineer",
			Company:     "TechCorp Kenya",
			Location:    "Nairobi, Kenya",
			Salary:      "KSh 150,000 - 250,000",
			Type:        "Full-time",
			Description: "Join our innovative team building cutting-edge solutions for African markets.",
			PostedAt:    now,
			IsDemo:      true,
		},
		{
			ID:          "demo2",
			Title:       "Marketing Manager",
			Company:     "GrowthHub Africa",
			Location:    "Mombasa, Kenya",
			Salary:      "KSh 80,000 - 120,000",
			Type:        "Full-time",
			Description: "Lead marketing initiatives for our expanding portfolio of clients.",
			PostedAt:    now,
			IsDemo:      true,
		},
		{
			ID:          "demo3",
			Title:       "Data Analyst",
			Company:     "DataFlow Solutions",
			Location:    "Kisumu, Kenya",
			Salary:      "KSh 100,000 - 150,000",
			Type:        "Remote",
			Description: "Analyze data trends and provide insights for business growth.",
			PostedAt:    now,
			IsDemo:      true,
		},
		{
			ID:          "demo4",
			Title:       "UX Designer",
			Company:     "DesignStudio Kenya",
			Location:    "Nairobi, Kenya",
			Salary:      "KSh 90,000 - 140,000",
			Type:        "Hybrid",
			Description: "Create beautiful and functional user experiences for our digital products.",
			PostedAt:    now,
			IsDemo:      true,
		},
	}
}

// Company is a featured employer tile.
type Company struct {
	Name string
	Logo string
	Jobs int
}

// Category is a job category tile.
type Category struct {
	Name  string
	Icon  string
	Count int
}

// FeaturedCompanies is the static featured employer list.
func FeaturedCompanies() []Company {
	return []Company{
		{Name: "Safaricom", Logo: "📱", Jobs: 45},
		{Name: "KCB Bank", Logo: "🏦", Jobs: 32},
		{Name: "Equity Bank", Logo: "💰", Jobs: 28},
		{Name: "Microsoft Kenya", Logo: "💻", Jobs: 15},
		{Name: "Google Kenya", Logo: "🔍", Jobs: 12},
		{Name: "IBM Kenya", Logo: "🔧", Jobs: 8},
	}
}

// Categories is the static category list.
func Categories() []Category {
	return []Category{
		{Name: "Technology", Icon: "💻", Count: 156},
		{Name: "Finance", Icon: "💰", Count: 89},
		{Name: "Healthcare", Icon: "🏥", Count: 67},
		{Name: "Education", Icon: "📚", Count: 45},
		{Name: "Marketing", Icon: "📢", Count: 78},
		{Name: "Engineering", Icon: "⚙️", Count: 92},
	}
}

// FetchError reports a failed jobs request. Message is the server-provided
// reason, when there was one.
type FetchError struct {
	Status  int
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	switch {
	case e.Message != "":
		return "fetch jobs: " + e.Message
	case e.Cause != nil:
		return "fetch jobs: " + e.Cause.Error()
	default:
		return "fetch jobs failed"
	}
}

func (e *FetchError) Unwrap() error { return e.Cause }
