package dtos

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/CardLedger/CardLedger-Backend/src/models"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/tidwall/gjson"
)

const DateLayout = "2006-01-02"

// FieldError reports a request field that could not be read.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// form reads a JSON object field by field and keeps the first error. An absent key means
// "not supplied"; null and blank strings mean "no value".
type form struct {
	root gjson.Result
	err  error
}

func newForm(body []byte, known []string) (*form, error) {
	if !gjson.ValidBytes(body) {
		return nil, &FieldError{Field: "body", Message: "malformed JSON"}
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, &FieldError{Field: "body", Message: "expected a JSON object"}
	}

	f := &form{root: root}
	root.ForEach(func(key, _ gjson.Result) bool {
		if !lo.Contains(known, key.String()) {
			f.fail(&FieldError{Field: key.String(), Message: "unknown field"})
			return false
		}
		return true
	})
	return f, nil
}

func (f *form) fail(err error) {
	if f.err == nil {
		f.err = err
	}
}

func (f *form) has(key string) bool {
	return f.root.Get(key).Exists()
}

// require fails when any of keys is absent.
func (f *form) require(keys ...string) {
	missing := lo.Filter(keys, func(key string, _ int) bool { return !f.has(key) })
	if len(missing) > 0 {
		f.fail(&FieldError{Field: strings.Join(missing, ", "), Message: "required field missing"})
	}
}

// reject fails when any of keys is supplied.
func (f *form) reject(keys ...string) {
	for _, key := range keys {
		if f.has(key) {
			f.fail(&FieldError{Field: key, Message: "cannot be changed"})
		}
	}
}

type decoder[T any] func(gjson.Result) (T, error)

// field reads a non-nullable value.
func field[T any](f *form, key string, decode decoder[T]) mo.Option[T] {
	r := f.root.Get(key)
	if !r.Exists() {
		return mo.None[T]()
	}
	if isBlank(r) {
		f.fail(&FieldError{Field: key, Message: "cannot be null"})
		return mo.None[T]()
	}
	v, err := decode(r)
	if err != nil {
		f.fail(fieldErr(key, err))
		return mo.None[T]()
	}
	return mo.Some(v)
}

// nullable reads a value that may be cleared with null or a blank string.
func nullable[T any](f *form, key string, decode decoder[T]) mo.Option[*T] {
	r := f.root.Get(key)
	if !r.Exists() {
		return mo.None[*T]()
	}
	if isBlank(r) {
		return mo.Some[*T](nil)
	}
	v, err := decode(r)
	if err != nil {
		f.fail(fieldErr(key, err))
		return mo.None[*T]()
	}
	return mo.Some(&v)
}

func isBlank(r gjson.Result) bool {
	return r.Type == gjson.Null || (r.Type == gjson.String && strings.TrimSpace(r.Str) == "")
}

// fieldErr keeps enum errors as they are so callers can match them.
func fieldErr(key string, err error) error {
	var enumErr *models.InvalidEnumValueError
	if errors.As(err, &enumErr) {
		return err
	}
	return &FieldError{Field: key, Message: err.Error()}
}

func decodeText(r gjson.Result) (string, error) {
	if r.Type != gjson.String {
		return "", fmt.Errorf("expected text, got %s", r.Raw)
	}
	return r.Str, nil
}

func decodeInt(r gjson.Result) (int, error) {
	switch r.Type {
	case gjson.Number:
		if r.Num == math.Trunc(r.Num) {
			return int(r.Int()), nil
		}
	case gjson.String:
		if v, err := strconv.Atoi(strings.TrimSpace(r.Str)); err == nil {
			return v, nil
		}
	}
	return 0, fmt.Errorf("expected an integer, got %s", r.Raw)
}

func decodeFloat(r gjson.Result) (float64, error) {
	switch r.Type {
	case gjson.Number:
		return r.Num, nil
	case gjson.String:
		if v, err := strconv.ParseFloat(strings.TrimSpace(r.Str), 64); err == nil {
			return v, nil
		}
	}
	return 0, fmt.Errorf("expected a number, got %s", r.Raw)
}

func decodeBool(r gjson.Result) (bool, error) {
	switch r.Type {
	case gjson.True, gjson.False:
		return r.Bool(), nil
	case gjson.String:
		if v, err := strconv.ParseBool(strings.TrimSpace(r.Str)); err == nil {
			return v, nil
		}
	}
	return false, fmt.Errorf("expected true or false, got %s", r.Raw)
}

// decodeDate accepts 2006-01-02 or RFC 3339 and keeps only the calendar date.
func decodeDate(r gjson.Result) (time.Time, error) {
	if r.Type == gjson.String {
		s := strings.TrimSpace(r.Str)
		for _, layout := range []string{DateLayout, time.RFC3339} {
			if t, err := time.Parse(layout, s); err == nil {
				return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("expected a date (YYYY-MM-DD), got %s", r.Raw)
}

func decodeEnum[E any](parse func(string) (E, error)) decoder[E] {
	return func(r gjson.Result) (E, error) {
		if r.Type != gjson.String {
			var zero E
			return zero, fmt.Errorf("expected a name, got %s", r.Raw)
		}
		return parse(r.Str)
	}
}

// decodeQualifiers accepts a list of names or a comma separated string.
func decodeQualifiers(r gjson.Result) ([]models.Qualifier, error) {
	if r.Type == gjson.String {
		return models.ParseQualifiers(r.Str)
	}
	if !r.IsArray() {
		return nil, fmt.Errorf("expected a list of qualifiers, got %s", r.Raw)
	}
	qualifiers := []models.Qualifier{}
	for _, el := range r.Array() {
		q, err := decodeEnum(models.ParseQualifier)(el)
		if err != nil {
			return nil, err
		}
		qualifiers = append(qualifiers, q)
	}
	return qualifiers, nil
}

// decodeIDs accepts a list of integers or a comma separated string.
func decodeIDs(r gjson.Result) ([]int, error) {
	var elements []gjson.Result
	switch {
	case r.IsArray():
		elements = r.Array()
	case r.Type == gjson.String:
		for _, token := range strings.Split(r.Str, ",") {
			if strings.TrimSpace(token) != "" {
				elements = append(elements, gjson.Result{Type: gjson.String, Str: token, Raw: strconv.Quote(token)})
			}
		}
	default:
		return nil, fmt.Errorf("expected a list of ids, got %s", r.Raw)
	}

	ids := make([]int, 0, len(elements))
	for _, el := range elements {
		id, err := decodeInt(el)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
