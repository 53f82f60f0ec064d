// Package mocks provides gomock implementations of the ports used by the job board services.
//
// The mocks are generated with go.uber.org/mock (mockgen) and give tests a fluent API for
// setting up expectations, e.g. asserting that a rejected form never reaches the API.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	api := mocks.NewMockAccountAPI(ctrl)
//	api.EXPECT().Login(gomock.Any(), gomock.Any()).Return(session, nil)
package mocks

// Generate mocks for the session, account, listing, and submission ports.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=ports_mock.go github.com/Kabuna254/Job-App/internal/ports AccountAPI,JobsAPI,KVStore,SubmissionGuard
