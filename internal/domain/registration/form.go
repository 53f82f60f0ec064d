// Package registration holds the sign-up form and its validation rules.
package registration

import (
	"github.com/Kabuna254/Job-App/internal/domain/auth"
	"github.com/Kabuna254/Job-App/internal/validation"
)

// Field names used as error keys and form input names.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldCompanyName     = "companyName"
	FieldCompanyEmail    = "companyEmail"
	FieldCompanyWebsite  = "companyWebsite"
)

// Form is the registration input. Only the fields of the active role are
// validated or submitted; the other role's fields may hold stale values.
type Form struct {
	Role            auth.UIRole
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	CompanyName     string
	CompanyEmail    string
	CompanyWebsite  string
}

// Errors maps a field name to its message. An empty set means submittable.
type Errors map[string]string

// Empty reports whether the set has no messages.
func (e Errors) Empty() bool { return len(e) == 0 }

// Validate applies the registration rules to f. It is pure.
func Validate(f Form) Errors {
	fv := validation.New()

	fv.Validate(FieldPassword, f.Password,
		validation.Required("Password is required"),
		validation.MinLength(8, "Password must be at least 8 characters"),
	)
	fv.Validate(FieldConfirmPassword, f.ConfirmPassword,
		validation.Required("Please confirm your password"),
		validation.Equals(f.Password, "Passwords do not match"),
	)

	if f.Role == auth.UIRoleEmployer {
		fv.Validate(FieldCompanyName, f.CompanyName,
			validation.Required("Company name is required"),
		)
		fv.Validate(FieldCompanyEmail, f.CompanyEmail,
			validation.Required("Company email is required"),
			validation.Email("Valid company email is required"),
		)
		fv.Validate(FieldCompanyWebsite, f.CompanyWebsite,
			validation.Optional(validation.HasPrefix("Website must start with http:// or https://", "http://", "https://")),
		)
	} else {
		fv.Validate(FieldName, f.Name,
			validation.Required("Name is required"),
		)
		fv.Validate(FieldEmail, f.Email,
			validation.Required("Email is required"),
			validation.Email("Valid email is required"),
		)
	}

	return Errors(fv.Errors())
}

// SelectRole switches the active role. Errors from the previous selection
// no longer apply, so the returned set is empty.
func (f Form) SelectRole(role auth.UIRole) (Form, Errors) {
	f.Role = role
	return f, Errors{}
}

// Reset returns to role selection with every field cleared.
func (f Form) Reset() Form {
	return Form{Role: f.Role}
}

// Payload is the body sent to the registration endpoint.
type Payload struct {
	Role           auth.Role `json:"role"`
	Email          string    `json:"email"`
	Password       string    `json:"password"`
	Name           string    `json:"name,omitempty"`
	CompanyName    string    `json:"companyName,omitempty"`
	CompanyEmail   string    `json:"companyEmail,omitempty"`
	CompanyWebsite string    `json:"companyWebsite,omitempty"`
}

// BuildPayload assembles the role-appropriate body for f.
func BuildPayload(f Form) Payload {
	p := Payload{
		Role:     f.Role.BackendRole(),
		Password: f.Password,
	}
	if p.Role == auth.RoleEmployer {
		p.Email = f.CompanyEmail
		p.CompanyName = f.CompanyName
		p.CompanyEmail = f.CompanyEmail
		p.CompanyWebsite = f.CompanyWebsite
		return p
	}
	p.Email = f.Email
	p.Name = f.Name
	return p
}
