package transport

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/victor-devv/todo-list/internal/models"
)

const dueDateLayout = "2006-01-02 15:04:05"

// DateTime marshals as "2006-01-02 15:04:05", the wire format clients
// already send due dates in.
type DateTime struct {
	time.Time
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format(dueDateLayout) + `"`), nil
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse(dueDateLayout, s)
	if err != nil {
		return fmt.Errorf("due date must match %q: %w", dueDateLayout, err)
	}
	d.Time = t
	return nil
}

type RegisterRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Validate returns a field->message map, empty on success. Password length
// is checked in the auth service so the rule lives next to the hashing.
func (r *RegisterRequest) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(r.Username) == "" {
		errs["username"] = "username is required"
	}
	if strings.TrimSpace(r.FirstName) == "" {
		errs["first_name"] = "first name is required"
	}
	if strings.TrimSpace(r.LastName) == "" {
		errs["last_name"] = "last name is required"
	}
	if strings.TrimSpace(r.Email) == "" {
		errs["email"] = "email is required"
	} else if _, err := mail.ParseAddress(r.Email); err != nil {
		errs["email"] = "email should be valid"
	}
	if r.Password == "" {
		errs["password"] = "password is required"
	}
	return errs
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// TodoRequest serves both create and update. On update, nil fields keep the
// stored values (replace-if-present).
type TodoRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Priority    *string   `json:"priority"`
	Status      *string   `json:"status"`
	DueDate     *DateTime `json:"due_date"`
}

func (r *TodoRequest) Validate(create bool) map[string]string {
	errs := map[string]string{}

	if r.Title != nil {
		if strings.TrimSpace(*r.Title) == "" {
			errs["title"] = "title is required"
		} else if len(*r.Title) > 255 {
			errs["title"] = "title must be between 1 and 255 characters"
		}
	} else if create {
		errs["title"] = "title is required"
	}

	if r.Description != nil && len(*r.Description) > 1000 {
		errs["description"] = "description cannot exceed 1000 characters"
	}

	if r.Priority != nil && !models.Priority(*r.Priority).Valid() {
		errs["priority"] = "priority must be one of LOW, MEDIUM, HIGH, URGENT"
	}

	if r.Status != nil && !models.Status(*r.Status).Valid() {
		errs["status"] = "status must be one of PENDING, IN_PROGRESS, COMPLETED, CANCELLED"
	}

	return errs
}
