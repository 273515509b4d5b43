package validation

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/snnyvrz/shelfshare/internal/model"
)

// maxSafeInteger is the largest integer a float64 holds exactly.
const maxSafeInteger = 1<<53 - 1

// Input is a decoded JSON request body.
type Input map[string]any

type fieldKind int

const (
	kindString fieldKind = iota
	kindDate
	kindInteger
)

type fieldRule struct {
	key      string
	required bool
	kind     fieldKind
	// notBlank rejects strings that are empty after trimming.
	notBlank bool
	messages map[string]string
}

type schema []fieldRule

var authorSchema = schema{
	{
		key: "name", required: true, kind: kindString, notBlank: true,
		messages: map[string]string{
			"required": "Name is required.",
			"string":   `"name" must be a string`,
			"notblank": "Name cannot be empty.",
		},
	},
	{
		key: "bio", kind: kindString,
		messages: map[string]string{
			"string": `"bio" must be a string`,
		},
	},
	{
		key: "birthdate", required: true, kind: kindDate,
		messages: map[string]string{
			"required": "Birthdate is required.",
			"date":     "Invalid birthdate format.",
		},
	},
}

var bookSchema = schema{
	{
		key: "title", required: true, kind: kindString, notBlank: true,
		messages: map[string]string{
			"required": "Title is required.",
			"string":   `"title" must be a string`,
			"notblank": "Title cannot be empty.",
		},
	},
	{
		key: "description", kind: kindString,
		messages: map[string]string{
			"string": `"description" must be a string`,
		},
	},
	{
		key: "published_date", required: true, kind: kindDate,
		messages: map[string]string{
			"required": "Published date is required.",
			"date":     "Invalid published date format.",
		},
	},
	{
		key: "author_id", required: true, kind: kindInteger,
		messages: map[string]string{
			"required": "Author ID is required.",
			"numeric":  "Author ID must be a number.",
			"integer":  `"author_id" must be an integer`,
		},
	},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

// ValidateAuthor checks an author payload. It returns nil when the payload is
// valid, otherwise one message per violated rule.
func ValidateAuthor(in Input) []string {
	return authorSchema.check(in)
}

// ValidateBook checks a book payload the same way ValidateAuthor does.
func ValidateBook(in Input) []string {
	return bookSchema.check(in)
}

// check evaluates every rule without stopping at the first failure.
func (s schema) check(in Input) []string {
	var errs []string

	for _, rule := range s {
		value, present := in[rule.key]
		if !present {
			if rule.required {
				errs = append(errs, rule.messages["required"])
			}
			continue
		}

		if tag := rule.firstFailure(value); tag != "" {
			errs = append(errs, rule.messages[tag])
		}
	}

	errs = append(errs, s.unknownKeys(in)...)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// firstFailure returns the tag of the first rule value breaks, or "".
func (r fieldRule) firstFailure(value any) string {
	switch r.kind {
	case kindString:
		s, ok := value.(string)
		if !ok {
			return "string"
		}
		if r.notBlank && validate.Var(s, "notblank") != nil {
			return "notblank"
		}

	case kindDate:
		if _, err := model.DateFromValue(value); err != nil {
			return "date"
		}

	case kindInteger:
		n, ok := toFloat(value)
		if !ok || !isSafe(n) {
			return "numeric"
		}
		if !isInteger(n) {
			return "integer"
		}
	}

	return ""
}

func (s schema) unknownKeys(in Input) []string {
	known := make(map[string]struct{}, len(s))
	for _, rule := range s {
		known[rule.key] = struct{}{}
	}

	var extra []string
	for key := range in {
		if _, ok := known[key]; !ok {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)

	msgs := make([]string, 0, len(extra))
	for _, key := range extra {
		msgs = append(msgs, strconv.Quote(key)+" is not allowed")
	}
	return msgs
}

// toFloat accepts JSON numbers and numeric strings.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		if validate.Var(strings.TrimSpace(v), "required,numeric") != nil {
			return 0, false
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// isSafe reports whether n lies within ±maxSafeInteger, where every integer
// is exact.
func isSafe(n float64) bool {
	return ozzo.Validate(n, ozzo.Min(float64(-maxSafeInteger)), ozzo.Max(float64(maxSafeInteger))) == nil
}

func isInteger(n float64) bool {
	return is.Int.Validate(strconv.FormatFloat(n, 'f', -1, 64)) == nil
}

// IntValue converts an already validated integer field. Values outside the
// safe integer range are refused.
func IntValue(value any) (int64, bool) {
	f, ok := toFloat(value)
	if !ok || !isSafe(f) || !isInteger(f) {
		return 0, false
	}
	return int64(f), true
}

// StringValue returns value as a string pointer, nil for anything else.
func StringValue(value any) *string {
	s, ok := value.(string)
	if !ok {
		return nil
	}
	return &s
}
