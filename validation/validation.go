// Package validation checks field presence and types on decoded request
// bodies and turns them into typed payloads. It has no side effects.
package validation

import (
	"net/http"
)

type Error struct {
	Status  int               `json:"-"`
	Message string            `json:"error"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// ProjectPayload carries the fields present in a project request. Nil
// means the field was absent, which on update means "leave unchanged".
type ProjectPayload struct {
	ID               *int
	Title            *string
	ShortDescription *string
	LongDescription  *string
	Contributions    *string
	Thumbnail        *string
}

type AccountPayload struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	JobTitle  string
}

type LoginPayload struct {
	Username string
	Password string
}

func stringField(body map[string]interface{}, key string, fields map[string]string) *string {
	v, ok := body[key]
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		fields[key] = "must be a string"
		return nil
	}
	return &s
}

func intField(body map[string]interface{}, key string, fields map[string]string) *int {
	v, ok := body[key]
	if !ok {
		return nil
	}
	f, ok := v.(float64)
	if !ok || float64(int(f)) != f {
		fields[key] = "must be an integer"
		return nil
	}
	i := int(f)
	return &i
}

func projectFields(body map[string]interface{}, fields map[string]string) *ProjectPayload {
	return &ProjectPayload{
		ID:               intField(body, "id", fields),
		Title:            stringField(body, "title", fields),
		ShortDescription: stringField(body, "short_description", fields),
		LongDescription:  stringField(body, "long_description", fields),
		Contributions:    stringField(body, "contributions", fields),
		Thumbnail:        stringField(body, "thumbnail", fields),
	}
}

// ProjectCreate requires title, contributions, long_description,
// short_description and thumbnail, all non-empty.
func ProjectCreate(body map[string]interface{}) (*ProjectPayload, *Error) {
	fields := make(map[string]string)
	p := projectFields(body, fields)
	if len(fields) > 0 {
		return nil, &Error{Status: http.StatusBadRequest, Message: "malformed payload", Fields: fields}
	}
	for _, f := range []*string{p.Title, p.Contributions, p.LongDescription, p.ShortDescription, p.Thumbnail} {
		if f == nil || *f == "" {
			return nil, &Error{Status: http.StatusBadRequest, Message: "required fields missing"}
		}
	}
	return p, nil
}

// ProjectUpdate treats every field as optional but still needs a lookup
// key: an id, or a non-empty title.
func ProjectUpdate(body map[string]interface{}) (*ProjectPayload, *Error) {
	fields := make(map[string]string)
	p := projectFields(body, fields)
	if len(fields) > 0 {
		return nil, &Error{Status: http.StatusBadRequest, Message: "malformed payload", Fields: fields}
	}
	if p.ID == nil && (p.Title == nil || *p.Title == "") {
		return nil, &Error{Status: http.StatusNotFound, Message: "project not found"}
	}
	return p, nil
}

// AccountCreate requires username, email and password; first_name and
// job_title are optional profile attributes.
func AccountCreate(body map[string]interface{}) (*AccountPayload, *Error) {
	fields := make(map[string]string)
	username := stringField(body, "username", fields)
	email := stringField(body, "email", fields)
	password := stringField(body, "password", fields)
	firstName := stringField(body, "first_name", fields)
	jobTitle := stringField(body, "job_title", fields)
	if len(fields) > 0 {
		return nil, &Error{Status: http.StatusBadRequest, Message: "malformed payload", Fields: fields}
	}
	for _, f := range []*string{username, email, password} {
		if f == nil || *f == "" {
			return nil, &Error{Status: http.StatusBadRequest, Message: "required fields missing"}
		}
	}
	p := &AccountPayload{
		Username: *username,
		Email:    *email,
		Password: *password,
	}
	if firstName != nil {
		p.FirstName = *firstName
	}
	if jobTitle != nil {
		p.JobTitle = *jobTitle
	}
	return p, nil
}

func Login(body map[string]interface{}) (*LoginPayload, *Error) {
	fields := make(map[string]string)
	username := stringField(body, "username", fields)
	password := stringField(body, "password", fields)
	if len(fields) > 0 {
		return nil, &Error{Status: http.StatusBadRequest, Message: "malformed payload", Fields: fields}
	}
	if username == nil || *username == "" || password == nil || *password == "" {
		return nil, &Error{Status: http.StatusBadRequest, Message: "required fields missing"}
	}
	return &LoginPayload{Username: *username, Password: *password}, nil
}
