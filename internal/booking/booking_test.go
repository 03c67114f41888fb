package booking

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDiscardsCallerID(t *testing.T) {
	b := New("abc", map[string]any{"id": "forged", "name": "A", "email": "a@x.com", "room": "12"})

	assert.Equal(t, "abc", b.ID())
	assert.Equal(t, "A", b.Name())
	assert.Equal(t, "a@x.com", b.Email())
	assert.Equal(t, "12", b["room"])
	assert.Len(t, b, 4)
}

func TestMerge(t *testing.T) {
	orig := Booking{"id": "abc", "name": "A", "email": "a@x.com"}

	got := orig.Merge(map[string]any{"id": "other", "email": "new@x.com", "nights": json.Number("3")})

	assert.Equal(t, Booking{"id": "abc", "name": "A", "email": "new@x.com", "nights": json.Number("3")}, got)
	// receiver untouched
	assert.Equal(t, "a@x.com", orig.Email())
	assert.NotContains(t, orig, "nights")
}

func TestAccessorsOnMissingKeys(t *testing.T) {
	b := Booking{"name": 12}
	assert.Equal(t, "", b.ID())
	assert.Equal(t, "", b.Name())
	assert.Equal(t, "", b.Email())
}

func TestValidateCreate(t *testing.T) {
	tests := []struct {
		name    string
		fields  map[string]any
		wantErr bool
	}{
		{"valid", map[string]any{"name": "A Veerappan", "email": "mailtomeveera@gmail.com"}, false},
		{"extra fields", map[string]any{"name": "A", "email": "a@x.com", "nights": json.Number("2"), "tags": []any{"x"}}, false},
		{"missing email", map[string]any{"name": "A"}, true},
		{"missing name", map[string]any{"email": "a@x.com"}, true},
		{"empty name", map[string]any{"name": "", "email": "a@x.com"}, true},
		{"name not string", map[string]any{"name": json.Number("1"), "email": "a@x.com"}, true},
		{"nil body", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCreate(tt.fields)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var ve *ValidationError
			assert.True(t, errors.As(err, &ve))
		})
	}
}

func TestValidatePatch(t *testing.T) {
	assert.NoError(t, ValidatePatch(map[string]any{}))
	assert.NoError(t, ValidatePatch(map[string]any{"email": "new@x.com"}))
	assert.NoError(t, ValidatePatch(map[string]any{"room": "12"}))
	assert.Error(t, ValidatePatch(map[string]any{"email": ""}))
	assert.Error(t, ValidatePatch(map[string]any{"name": true}))
}

func TestSchemaIsFreshCopy(t *testing.T) {
	a := Schema()
	delete(a, "required")
	b := Schema()
	assert.Contains(t, b, "required")
}

func TestMarshalJSONKeyOrder(t *testing.T) {
	tests := []struct {
		name string
		b    Booking
		want string
	}{
		{"known keys first", Booking{"room": "12", "email": "a@x.com", "name": "A", "id": "abc", "a": json.Number("1")},
			`{"id":"abc","name":"A","email":"a@x.com","a":1,"room":"12"}`},
		{"missing known keys", Booking{"z": true, "id": "abc", "b": nil}, `{"id":"abc","b":null,"z":true}`},
		{"nested values", Booking{"id": "abc", "guests": []any{map[string]any{"n": "x"}}}, `{"id":"abc","guests":[{"n":"x"}]}`},
		{"empty", Booking{}, `{}`},
		{"nil", nil, `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestMarshalJSONInsideCollection(t *testing.T) {
	got, err := json.Marshal(map[string]any{"Hotelbooking": []Booking{{"name": "A", "id": "abc"}}})
	require.NoError(t, err)
	assert.Equal(t, `{"Hotelbooking":[{"id":"abc","name":"A"}]}`, string(got))
}
