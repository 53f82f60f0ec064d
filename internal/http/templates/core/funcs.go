// Package core provides the template helpers shared by every page.
package core

import (
	"bytes"
	"errors"
	"html/template"
	"strings"
	"time"

	"github.com/Kabuna254/Job-App/internal/http/uiutil"
)

// Deps holds what the helpers need from the renderer.
type Deps struct {
	Template           **template.Template
	ContentTemplateFor func(string) string
	Now                func() time.Time
}

// Funcs returns the FuncMap installed on the page templates.
func Funcs(deps Deps) template.FuncMap {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return template.FuncMap{
		"sectionTmpl": deps.ContentTemplateFor,
		"renderSection": func(page string, data any) (template.HTML, error) {
			if deps.Template == nil || *deps.Template == nil {
				return "", errors.New("template not initialized")
			}
			var buf bytes.Buffer
			if err := (*deps.Template).ExecuteTemplate(&buf, deps.ContentTemplateFor(page), data); err != nil {
				return "", err
			}
			// #nosec G203 - output of our own html/template execution, already escaped.
			return template.HTML(buf.String()), nil
		},
		"posted":  func(t time.Time) string { return uiutil.PostedLabel(t, now()) },
		"excerpt": uiutil.Excerpt,
		"errFor":  ErrFor,
		"initial": Initial,
		"dict":    Dict,
	}
}

// ErrFor returns the message for field from a field error map, or "".
func ErrFor(errs map[string]string, field string) string {
	if errs == nil {
		return ""
	}
	return errs[field]
}

// Initial returns the upper-cased first letter of s, used for avatar badges.
func Initial(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "?"
	}
	return strings.ToUpper(string([]rune(s)[:1]))
}

// Dict builds a map from alternating key/value arguments so partials can
// take more than one value.
func Dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, errors.New("dict requires an even number of arguments")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, errors.New("dict keys must be strings")
		}
		m[k] = kv[i+1]
	}
	return m, nil
}
