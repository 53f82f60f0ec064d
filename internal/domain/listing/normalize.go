package listing

import (
	"strconv"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// Strategy extracts one candidate value from a decoded response. ok is false
// when the strategy does not apply to the response shape.
type Strategy func(raw any) (any, bool)

// jobStrategies lists where the job array may live, most specific first.
var jobStrategies = []Strategy{
	arrayAt("data.jobs"),
	arrayAt("jobs"),
	arrayAt("@"),
}

// totalPagesStrategies lists where the page count may live.
var totalPagesStrategies = []Strategy{
	positiveIntAt("data.totalPages"),
	positiveIntAt("totalPages"),
}

// firstDefined runs strategies in order and returns the first value found.
func firstDefined(raw any, strategies []Strategy) (any, bool) {
	for _, s := range strategies {
		if v, ok := s(raw); ok {
			return v, true
		}
	}
	return nil, false
}

func search(expr string, raw any) any {
	v, err := jmespath.Search(expr, raw)
	if err != nil {
		return nil
	}
	return v
}

func arrayAt(expr string) Strategy {
	return func(raw any) (any, bool) {
		arr, ok := search(expr, raw).([]any)
		return arr, ok
	}
}

func positiveIntAt(expr string) Strategy {
	return func(raw any) (any, bool) {
		n := toInt(search(expr, raw))
		if n < 1 {
			return nil, false
		}
		return n, true
	}
}

func toInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}

// Normalize turns a decoded jobs response into a View for page. An empty or
// unrecognised job list yields the demo set.
func Normalize(raw any, page int) View {
	return normalizeAt(raw, page, time.Now())
}

func normalizeAt(raw any, page int, now time.Time) View {
	totalPages := 1
	if v, ok := firstDefined(raw, totalPagesStrategies); ok {
		totalPages = v.(int)
	}

	var jobs []Job
	if v, ok := firstDefined(raw, jobStrategies); ok {
		jobs = decodeJobs(v.([]any))
	}

	if len(jobs) == 0 {
		return View{
			Jobs:       DemoJobs(now),
			Page:       page,
			TotalPages: totalPages,
			UseDemo:    true,
		}
	}
	return View{
		Jobs:       jobs,
		Page:       page,
		TotalPages: totalPages,
	}
}

// Degraded is the view for a failed fetch. reason falls back to
// DefaultErrorReason.
func Degraded(page int, reason string) View {
	if strings.TrimSpace(reason) == "" {
		reason = DefaultErrorReason
	}
	return View{
		Jobs:       DemoJobs(time.Now()),
		Page:       page,
		TotalPages: 1,
		UseDemo:    true,
		Error:      reason,
	}
}

func decodeJobs(items []any) []Job {
	jobs := make([]Job, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		jobs = append(jobs, decodeJob(m))
	}
	return jobs
}

func decodeJob(m map[string]any) Job {
	j := Job{
		ID:          firstString(m, "_id", "id"),
		Title:       firstString(m, "title"),
		Company:     companyName(m["company"]),
		Location:    firstString(m, "location"),
		Salary:      firstString(m, "salary"),
		Type:        firstString(m, "type", "jobType"),
		Description: firstString(m, "description"),
	}
	if ts := firstString(m, "postedAt", "createdAt"); ts != "" {
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			j.PostedAt = t
		}
	}
	return j
}

func companyName(v any) string {
	switch c := v.(type) {
	case string:
		return c
	case map[string]any:
		return firstString(c, "name", "companyName")
	default:
		return ""
	}
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}
