// Package errors turns errors into short, stable tag values for metrics.
package errors

import (
	"context"
	goerrors "errors"
	"reflect"
	"strconv"
	"strings"

	domainauth "github.com/Kabuna254/Job-App/internal/domain/auth"
	"github.com/Kabuna254/Job-App/internal/domain/listing"
	"github.com/Kabuna254/Job-App/internal/ports"
)

// Classify returns a low-cardinality class for err, or "" for nil.
// Known domain errors map to their kind; anything else to the innermost
// concrete type name.
func Classify(err error) string {
	if err == nil {
		return ""
	}

	var ae *domainauth.AuthError
	if goerrors.As(err, &ae) {
		return "auth_" + string(ae.Kind)
	}
	var fe *listing.FetchError
	if goerrors.As(err, &fe) {
		if fe.Status > 0 {
			return "fetch_status_" + strconv.Itoa(fe.Status/100) + "xx"
		}
		if fe.Cause != nil {
			return "fetch_" + Classify(fe.Cause)
		}
		return "fetch"
	}

	switch {
	case goerrors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case goerrors.Is(err, context.Canceled):
		return "canceled"
	case goerrors.Is(err, ports.ErrKeyNotFound):
		return "not_found"
	}

	for {
		inner := goerrors.Unwrap(err)
		if inner == nil {
			break
		}
		err = inner
	}
	return typeName(err)
}

func typeName(err error) string {
	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "unknown"
	}
	name := strings.ToLower(strings.ReplaceAll(t.String(), ".", "_"))
	if name == "" {
		return "unknown"
	}
	return name
}
