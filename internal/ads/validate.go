package ads

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	// MaxMessageLength is the longest accepted message, in characters.
	MaxMessageLength = 500
	// MaxLinkLength is the longest accepted link, in characters.
	MaxLinkLength = 200
	// MaxEmailLength is the longest accepted email address.
	MaxEmailLength = 254
)

// ValidationKind classifies a rejected submission.
type ValidationKind string

const (
	MissingField  ValidationKind = "missing_field"
	InvalidFormat ValidationKind = "invalid_format"
	TooLong       ValidationKind = "too_long"
)

// ValidationError describes the first rule a submission violated. Message is safe to show to end users.
type ValidationError struct {
	Field   string
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Submission is a candidate ad as sent by the browser to /create-ad and /create-checkout.
type Submission struct {
	Message string  `json:"message"`
	Link    *string `json:"link"`
	Email   string  `json:"email"`

	// linkNotString marks a link that was present but not a JSON string.
	linkNotString bool
}

// Normalize trims every field and drops a blank link, so an empty link is stored as absent.
func (s Submission) Normalize() Submission {
	out := Submission{
		Message: strings.TrimSpace(s.Message),
		Email:   strings.TrimSpace(s.Email),
	}
	if s.Link != nil {
		if l := strings.TrimSpace(*s.Link); l != "" {
			out.Link = &l
		}
	}
	return out
}

// LinkValue returns the trimmed link or "" when absent.
func (s Submission) LinkValue() string {
	if s.Link == nil {
		return ""
	}
	return strings.TrimSpace(*s.Link)
}

// ErrMalformedBody is returned by DecodeSubmission when the body is not a JSON object.
var ErrMalformedBody = errors.New("malformed request body")

// DecodeSubmission reads a submission from a JSON body. Fields of the wrong JSON type decode as
// empty so Validate reports them in its usual order; a body that is not a JSON object is ErrMalformedBody.
func DecodeSubmission(r io.Reader) (Submission, error) {
	var raw struct {
		Message json.RawMessage `json:"message"`
		Link    json.RawMessage `json:"link"`
		Email   json.RawMessage `json:"email"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return Submission{}, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	s := Submission{
		Message: jsonString(raw.Message),
		Email:   jsonString(raw.Email),
	}
	if link := bytes.TrimSpace(raw.Link); len(link) > 0 && !bytes.Equal(link, []byte("null")) {
		var l string
		if err := json.Unmarshal(link, &l); err != nil {
			s.linkNotString = true
		} else {
			s.Link = &l
		}
	}
	return s, nil
}

// jsonString returns raw as a string, or "" when it is absent or not a JSON string.
func jsonString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// rules carries the trimmed fields in the order they are checked.
type rules struct {
	Message string `validate:"required,max=500"`
	Email   string `validate:"required,max=254,ademail"`
	Link    string `validate:"omitempty,max=200,adurl"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("ademail", func(fl validator.FieldLevel) bool {
		return IsEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("adurl", func(fl validator.FieldLevel) bool {
		return IsAbsoluteURL(fl.Field().String())
	})
	return v
}

// Validate checks a submission: message and email are required, link is optional.
// It returns nil when the submission is acceptable.
func Validate(s Submission) *ValidationError {
	r := rules{
		Message: strings.TrimSpace(s.Message),
		Email:   strings.TrimSpace(s.Email),
		Link:    s.LinkValue(),
	}
	err := validate.Struct(r)
	if err == nil {
		if s.linkNotString {
			return invalidLink()
		}
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Field: "", Kind: InvalidFormat, Message: "Invalid submission."}
	}
	return fromFieldError(fieldErrs[0])
}

func fromFieldError(fe validator.FieldError) *ValidationError {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return missing(field)
	case "max":
		return &ValidationError{
			Field:   field,
			Kind:    TooLong,
			Message: fmt.Sprintf("%s must be at most %s characters.", label(field), fe.Param()),
		}
	case "ademail":
		return &ValidationError{Field: field, Kind: InvalidFormat, Message: "Email must be a valid email address."}
	case "adurl":
		return invalidLink()
	}
	return &ValidationError{Field: field, Kind: InvalidFormat, Message: label(field) + " is invalid."}
}

func missing(field string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Kind:    MissingField,
		Message: label(field) + " is required and must be a non-empty string.",
	}
}

func invalidLink() *ValidationError {
	return &ValidationError{Field: "link", Kind: InvalidFormat, Message: "Link must be a valid URL."}
}

func label(field string) string {
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}

// IsEmail reports whether s has the basic local@domain.tld shape: ASCII only, no whitespace,
// exactly one '@', and a dot-separated domain with no empty labels.
func IsEmail(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII || unicode.IsSpace(r) || unicode.IsControl(r) {
			return false
		}
	}
	if strings.Count(s, "@") != 1 {
		return false
	}
	local, domain, _ := strings.Cut(s, "@")
	if local == "" || !strings.Contains(domain, ".") {
		return false
	}
	for _, part := range strings.Split(domain, ".") {
		if part == "" {
			return false
		}
	}
	return true
}

// IsAbsoluteURL reports whether s parses as an absolute URL (scheme plus host or opaque part).
func IsAbsoluteURL(s string) bool {
	if strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return false
	}
	return u.Host != "" || u.Opaque != ""
}
