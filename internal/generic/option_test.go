package generic

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOption(t *testing.T) {
	assert := assert.New(t)

	some := Some(42)
	assert.True(some.IsSome())
	assert.False(some.IsNone())
	assert.Equal(42, some.Unwrap())
	assert.Equal(42, some.UnwrapOr(7))

	none := None[int]()
	assert.True(none.IsNone())
	assert.Equal(7, none.UnwrapOr(7))
	assert.Panics(func() { none.Unwrap() })

	var zero Option[string]
	assert.True(zero.IsNone())
}

func TestOptionOkOr(t *testing.T) {
	errMissing := errors.New("missing")

	r := Some("x").OkOr(errMissing)
	assert.True(t, r.IsOk())
	assert.Equal(t, "x", r.Value)

	r = None[string]().OkOr(errMissing)
	assert.True(t, r.IsErr())
	assert.ErrorIs(t, r.Error, errMissing)
}

func TestMap(t *testing.T) {
	assert.Equal(t, Some(4), Map(Some(2), func(v int) int { return v * 2 }))
	assert.True(t, Map(None[int](), func(v int) int { return v * 2 }).IsNone())
}

func TestOptionJSON(t *testing.T) {
	type doc struct {
		URL    Option[string] `json:"url"`
		Status Option[int]    `json:"status"`
	}

	tests := []struct {
		name       string
		input      string
		wantURL    Option[string]
		wantStatus Option[int]
		wantErr    bool
	}{
		{"both present", `{"url":"//x/v.mp4","status":2}`, Some("//x/v.mp4"), Some(2), false},
		{"explicit null", `{"url":null,"status":null}`, None[string](), None[int](), false},
		{"absent", `{}`, None[string](), None[int](), false},
		{"wrong type", `{"url":12}`, None[string](), None[int](), true},
		{"fractional int", `{"status":1.5}`, None[string](), None[int](), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d doc
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, d.URL)
			assert.Equal(t, tt.wantStatus, d.Status)
		})
	}
}

func TestOptionMarshalNone(t *testing.T) {
	data, err := json.Marshal(struct {
		URL Option[string] `json:"url"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"url":null}`, string(data))
}

func TestResult(t *testing.T) {
	r := NewResult(5, nil)
	assert.True(t, r.IsOk())
	assert.Equal(t, Some(5), r.Ok())

	boom := errors.New("boom")
	r = NewResult(0, boom)
	assert.True(t, r.IsErr())
	assert.True(t, r.Ok().IsNone())
	_, err := r.Unpack()
	assert.ErrorIs(t, err, boom)
}
