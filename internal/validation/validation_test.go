package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAuthor_Valid(t *testing.T) {
	cases := []Input{
		{"name": "Ursula K. Le Guin", "birthdate": "1929-10-21"},
		{"name": "Ursula K. Le Guin", "bio": "", "birthdate": "1929-10-21"},
		{"name": "Ursula K. Le Guin", "bio": "Earthsea", "birthdate": "October 21, 1929"},
		{"name": "Ursula K. Le Guin", "birthdate": "1929-10-1"},
		{"name": "Ursula K. Le Guin", "birthdate": -1268092800000.0},
		{"name": "Ursula K. Le Guin", "birthdate": "-1268092800000"},
	}

	for _, in := range cases {
		assert.Nil(t, ValidateAuthor(in), "input %v", in)
	}
}

func TestValidateAuthor_Messages(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want []string
	}{
		{
			name: "missing name",
			in:   Input{"birthdate": "1929-10-21"},
			want: []string{"Name is required."},
		},
		{
			name: "empty name",
			in:   Input{"name": "", "birthdate": "1929-10-21"},
			want: []string{"Name cannot be empty."},
		},
		{
			name: "whitespace name",
			in:   Input{"name": "   \t", "birthdate": "1929-10-21"},
			want: []string{"Name cannot be empty."},
		},
		{
			name: "missing birthdate",
			in:   Input{"name": "Le Guin"},
			want: []string{"Birthdate is required."},
		},
		{
			name: "bad birthdate",
			in:   Input{"name": "Le Guin", "birthdate": "someday"},
			want: []string{"Invalid birthdate format."},
		},
		{
			name: "non-string bio",
			in:   Input{"name": "Le Guin", "bio": 12.0, "birthdate": "1929-10-21"},
			want: []string{`"bio" must be a string`},
		},
		{
			name: "everything wrong at once",
			in:   Input{"name": 7.0, "nickname": "ULG"},
			want: []string{`"name" must be a string`, "Birthdate is required.", `"nickname" is not allowed`},
		},
		{
			name: "empty payload",
			in:   Input{},
			want: []string{"Name is required.", "Birthdate is required."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateAuthor(tt.in))
		})
	}
}

func TestValidateBook_Valid(t *testing.T) {
	cases := []Input{
		{"title": "Dune", "published_date": "1965-08-01", "author_id": 1.0},
		{"title": "Dune", "description": "", "published_date": "1965-08-01", "author_id": "3"},
		{"title": "Dune", "published_date": -139881600000.0, "author_id": 9007199254740991.0},
		{"title": "Dune", "published_date": "1965-8-1", "author_id": -9007199254740991.0},
	}

	for _, in := range cases {
		assert.Nil(t, ValidateBook(in), "input %v", in)
	}
}

func TestValidateBook_Messages(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want []string
	}{
		{
			name: "missing title",
			in:   Input{"published_date": "1965-08-01", "author_id": 1.0},
			want: []string{"Title is required."},
		},
		{
			name: "blank title",
			in:   Input{"title": " ", "published_date": "1965-08-01", "author_id": 1.0},
			want: []string{"Title cannot be empty."},
		},
		{
			name: "missing author id",
			in:   Input{"title": "Dune", "published_date": "1965-08-01"},
			want: []string{"Author ID is required."},
		},
		{
			name: "non-numeric author id",
			in:   Input{"title": "Dune", "published_date": "1965-08-01", "author_id": "frank"},
			want: []string{"Author ID must be a number."},
		},
		{
			name: "fractional author id",
			in:   Input{"title": "Dune", "published_date": "1965-08-01", "author_id": 1.5},
			want: []string{`"author_id" must be an integer`},
		},
		{
			name: "author id beyond the safe integer range",
			in:   Input{"title": "Dune", "published_date": "1965-08-01", "author_id": 1e30},
			want: []string{"Author ID must be a number."},
		},
		{
			name: "negative author id beyond the safe integer range",
			in:   Input{"title": "Dune", "published_date": "1965-08-01", "author_id": "-9007199254740993"},
			want: []string{"Author ID must be a number."},
		},
		{
			name: "null author id",
			in:   Input{"title": "Dune", "published_date": "1965-08-01", "author_id": nil},
			want: []string{"Author ID must be a number."},
		},
		{
			name: "bad published date",
			in:   Input{"title": "Dune", "published_date": true, "author_id": 1.0},
			want: []string{"Invalid published date format."},
		},
		{
			name: "collects all",
			in:   Input{"description": 3.0},
			want: []string{
				"Title is required.",
				`"description" must be a string`,
				"Published date is required.",
				"Author ID is required.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateBook(tt.in))
		})
	}
}

func TestIntValue(t *testing.T) {
	n, ok := IntValue(42.0)
	assert.True(t, ok)
	assert.Equal(t, int64(42), n)

	n, ok = IntValue(" 7 ")
	assert.True(t, ok)
	assert.Equal(t, int64(7), n)

	_, ok = IntValue(4.2)
	assert.False(t, ok)

	_, ok = IntValue("x")
	assert.False(t, ok)

	n, ok = IntValue(9007199254740991.0)
	assert.True(t, ok)
	assert.Equal(t, int64(9007199254740991), n)

	_, ok = IntValue(1e30)
	assert.False(t, ok)

	_, ok = IntValue(-1e19)
	assert.False(t, ok)
}
