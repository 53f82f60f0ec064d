package ports

import "context"

// JobsAPI fetches raw job listing pages. The result is the decoded JSON body,
// whose shape varies between API versions.
type JobsAPI interface {
	ListJobs(ctx context.Context, page int) (any, error)
}
