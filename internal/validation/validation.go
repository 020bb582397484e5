package validation

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"feedblog/internal/apperr"
)

const (
	// MinTitleLen is the post title minimum. Observed variants used 5 and
	// 10; this implementation fixes it at 5, same as the content minimum.
	MinTitleLen    = 5
	MinContentLen  = 5
	MinPasswordLen = 5
)

// EmailChecker is the lookup the signup uniqueness rule needs. The check is
// synchronous and racy by itself; the unique index on users.email is what
// actually closes the window.
type EmailChecker interface {
	EmailExists(ctx context.Context, email string) (bool, error)
}

type SignupInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type PostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type StatusInput struct {
	Status string `json:"status"`
}

type Validator struct {
	validate *validator.Validate
	users    EmailChecker
}

func New(users EmailChecker) *Validator {
	return &Validator{
		validate: validator.New(),
		users:    users,
	}
}

// Signup normalizes the input in place and runs the signup rule set.
// All failing rules are reported together, in rule order.
func (v *Validator) Signup(ctx context.Context, in *SignupInput) error {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Password = strings.TrimSpace(in.Password)
	in.Name = strings.TrimSpace(in.Name)

	var fields []apperr.FieldError

	if err := v.validate.Var(in.Email, "required,email"); err != nil {
		fields = append(fields, apperr.FieldError{Field: "email", Message: "Please enter a valid email."})
	} else {
		exists, err := v.users.EmailExists(ctx, in.Email)
		if err != nil {
			return apperr.Wrap(apperr.Internal, "email lookup failed", err)
		}
		if exists {
			fields = append(fields, apperr.FieldError{Field: "email", Message: "This email is already used."})
		}
	}

	if err := v.validate.Var(in.Password, fmt.Sprintf("required,min=%d", MinPasswordLen)); err != nil {
		fields = append(fields, apperr.FieldError{
			Field:   "password",
			Message: fmt.Sprintf("Password must be at least %d characters long.", MinPasswordLen),
		})
	}

	if err := v.validate.Var(in.Name, "required"); err != nil {
		fields = append(fields, apperr.FieldError{Field: "name", Message: "Name must not be empty."})
	}

	if len(fields) > 0 {
		return apperr.Validation("Email, password or name is invalid.", fields)
	}
	return nil
}

func (v *Validator) Login(in *LoginInput) error {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	var fields []apperr.FieldError

	if err := v.validate.Var(in.Email, "required,email"); err != nil {
		fields = append(fields, apperr.FieldError{Field: "email", Message: "Please enter a valid email."})
	}
	if err := v.validate.Var(in.Password, "required"); err != nil {
		fields = append(fields, apperr.FieldError{Field: "password", Message: "Password must not be empty."})
	}

	if len(fields) > 0 {
		return apperr.Validation("Email or password is invalid.", fields)
	}
	return nil
}

func (v *Validator) Post(in *PostInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)

	var fields []apperr.FieldError

	if err := v.validate.Var(in.Title, fmt.Sprintf("required,min=%d", MinTitleLen)); err != nil {
		fields = append(fields, apperr.FieldError{
			Field:   "title",
			Message: fmt.Sprintf("Title must be at least %d characters long.", MinTitleLen),
		})
	}
	if err := v.validate.Var(in.Content, fmt.Sprintf("required,min=%d", MinContentLen)); err != nil {
		fields = append(fields, apperr.FieldError{
			Field:   "content",
			Message: fmt.Sprintf("Content must be at least %d characters long.", MinContentLen),
		})
	}

	if len(fields) > 0 {
		return apperr.Validation("Invalid post input.", fields)
	}
	return nil
}

func (v *Validator) Status(in *StatusInput) error {
	in.Status = strings.TrimSpace(in.Status)

	if err := v.validate.Var(in.Status, "required"); err != nil {
		return apperr.Validation("Invalid status.", []apperr.FieldError{
			{Field: "status", Message: "Status must not be empty."},
		})
	}
	return nil
}
