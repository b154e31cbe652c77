package fruit

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var (
	// ErrEmptyBody is returned when a request body is missing, not a JSON
	// object, or an object without keys.
	ErrEmptyBody = errors.New("empty request body")
	// ErrMissingName is returned when a required "name" key is absent or null.
	ErrMissingName = errors.New("name is required")
)

// FieldError reports a request field whose JSON type does not match.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("Invalid value for field '%s'", e.Field)
}

// CreateFruitRequest is the body of POST /fruits. Pointers distinguish
// omitted fields from zero values.
type CreateFruitRequest struct {
	Name        *string  `json:"name" validate:"required"`
	Category    *string  `json:"category"`
	Color       *string  `json:"color"`
	Price       *float64 `json:"price"`
	Quantity    *float64 `json:"quantity"`
	Description *string  `json:"description"`
}

// UpdateFruitRequest is the body of PUT /fruits/{id}; nil fields are kept.
type UpdateFruitRequest struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Color       *string  `json:"color"`
	Price       *float64 `json:"price"`
	Quantity    *float64 `json:"quantity"`
	Description *string  `json:"description"`
}

// CreateCategoryRequest is the body of POST /categories.
type CreateCategoryRequest struct {
	Name *string `json:"name" validate:"required"`
}

// DecodeCreateFruit parses and validates a create body.
func DecodeCreateFruit(body []byte) (*CreateFruitRequest, error) {
	var req CreateFruitRequest
	if err := decodeObject(body, &req); err != nil {
		if errors.Is(err, ErrEmptyBody) {
			return nil, ErrMissingName
		}
		return nil, err
	}
	if err := validate.Struct(&req); err != nil {
		return nil, ErrMissingName
	}
	return &req, nil
}

// DecodeUpdateFruit parses an update body. It returns ErrEmptyBody when
// there is nothing to apply.
func DecodeUpdateFruit(body []byte) (*UpdateFruitRequest, error) {
	var req UpdateFruitRequest
	if err := decodeObject(body, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// DecodeCreateCategory parses and validates a category body.
func DecodeCreateCategory(body []byte) (*CreateCategoryRequest, error) {
	var req CreateCategoryRequest
	if err := decodeObject(body, &req); err != nil {
		if errors.Is(err, ErrEmptyBody) {
			return nil, ErrMissingName
		}
		return nil, err
	}
	if err := validate.Struct(&req); err != nil {
		return nil, ErrMissingName
	}
	return &req, nil
}

// decodeObject requires body to be a non-empty JSON object and decodes it
// into v. Only keys that exactly match one of v's JSON field names are
// decoded; any other key, including a differently cased one, is ignored.
func decodeObject(body []byte, v interface{}) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return ErrEmptyBody
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(body, &keys); err != nil || len(keys) == 0 {
		return ErrEmptyBody
	}
	known := jsonFields(v)
	for k := range keys {
		if !known[k] {
			delete(keys, k)
		}
	}
	exact, err := json.Marshal(keys)
	if err != nil {
		return ErrEmptyBody
	}
	if err := json.Unmarshal(exact, v); err != nil {
		var te *json.UnmarshalTypeError
		if errors.As(err, &te) {
			return &FieldError{Field: te.Field}
		}
		return ErrEmptyBody
	}
	return nil
}

// jsonFields returns the JSON key names of the struct v points to.
func jsonFields(v interface{}) map[string]bool {
	t := reflect.TypeOf(v).Elem()
	fields := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			fields[name] = true
		}
	}
	return fields
}

// NewFruit builds a fruit from req, applying defaults for omitted fields.
func (r *CreateFruitRequest) NewFruit(id int, now time.Time) Fruit {
	f := Fruit{ID: id, Name: *r.Name, CreatedAt: NewTimestamp(now), UpdatedAt: NewTimestamp(now)}
	if r.Category != nil {
		f.Category = *r.Category
	}
	if r.Color != nil {
		f.Color = *r.Color
	}
	if r.Price != nil {
		f.Price = *r.Price
	}
	if r.Quantity != nil {
		f.Quantity = *r.Quantity
	}
	if r.Description != nil {
		f.Description = *r.Description
	}
	return f
}

// EffectiveCategory is the category the fruit will have after the update.
func (r *UpdateFruitRequest) EffectiveCategory(current string) string {
	if r.Category != nil {
		return *r.Category
	}
	return current
}

// Apply overwrites the fields present in r and refreshes UpdatedAt.
func (r *UpdateFruitRequest) Apply(f *Fruit, now time.Time) {
	if r.Name != nil {
		f.Name = *r.Name
	}
	if r.Category != nil {
		f.Category = *r.Category
	}
	if r.Color != nil {
		f.Color = *r.Color
	}
	if r.Price != nil {
		f.Price = *r.Price
	}
	if r.Quantity != nil {
		f.Quantity = *r.Quantity
	}
	if r.Description != nil {
		f.Description = *r.Description
	}
	f.UpdatedAt = NewTimestamp(now)
}
