package formclient

import (
	"time"

	"github.com/google/uuid"
)

// Question is an individual form question. Type is one of short_answer,
// paragraph, multiple_choice, checkboxes, dropdown, linear_scale, date, time.
type Question struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
}

// Form is the full form record returned to its owner and to public viewers.
type Form struct {
	ID                   uuid.UUID  `json:"id"`
	HostID               uuid.UUID  `json:"host_id"`
	Title                string     `json:"title"`
	Description          string     `json:"description,omitempty"`
	Questions            []Question `json:"questions"`
	IsActive             bool       `json:"is_active"`
	Anonymous            bool       `json:"anonymous"`
	OneResponsePerDevice bool       `json:"one_response_per_device"`
	Closed               bool       `json:"closed"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// FormListItem is the trimmed form record used in list views.
type FormListItem struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	Closed      bool      `json:"closed"`
	CreatedAt   time.Time `json:"created_at"`
}

// FormCreate is the payload for creating a new form.
type FormCreate struct {
	Title                string     `json:"title"`
	Description          string     `json:"description,omitempty"`
	Questions            []Question `json:"questions"`
	IsActive             bool       `json:"is_active"`
	Anonymous            bool       `json:"anonymous"`
	OneResponsePerDevice bool       `json:"one_response_per_device"`
}

// FormUpdate is the payload for updating an existing form. Nil fields are
// left unchanged by the server.
type FormUpdate struct {
	Title                *string    `json:"title,omitempty"`
	Description          *string    `json:"description,omitempty"`
	Questions            []Question `json:"questions,omitempty"`
	IsActive             *bool      `json:"is_active,omitempty"`
	Anonymous            *bool      `json:"anonymous,omitempty"`
	OneResponsePerDevice *bool      `json:"one_response_per_device,omitempty"`
	Closed               *bool      `json:"closed,omitempty"`
}

// ResponseData is a submitted response as returned to the form owner.
// Answers maps question IDs to answers; answer shape depends on the question
// type (string, number, or list of strings).
type ResponseData struct {
	ID         uuid.UUID      `json:"id"`
	FormID     uuid.UUID      `json:"form_id"`
	Answers    map[string]any `json:"answers"`
	DeviceHash string         `json:"device_hash"`
	CreatedAt  time.Time      `json:"created_at"`
}

// ResponseSubmit is the payload for submitting a response to a form.
type ResponseSubmit struct {
	Answers map[string]any `json:"answers"`
}

// ResponseSummary aggregates a form's responses.
type ResponseSummary struct {
	TotalResponses int        `json:"total_responses"`
	LatestResponse *time.Time `json:"latest_response,omitempty"`
}

// HostProfile is the authenticated user's host record.
type HostProfile struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
