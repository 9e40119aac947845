package journal

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2024-02-29", want: NewDate(2024, time.February, 29)},
		{in: "1999-12-31", want: NewDate(1999, time.December, 31)},
		{in: "2023-02-29", wantErr: true},
		{in: "2024-2-5", wantErr: true},
		{in: "2024/02/05", wantErr: true},
		{in: "", wantErr: true},
		{in: "2024-02-05T00:00:00Z", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestDateNormalizesAndCompares(t *testing.T) {
	t.Parallel()

	assert.Equal(t, MustDate("2024-03-01"), NewDate(2024, time.February, 30))
	assert.Equal(t, MustDate("2025-01-01"), MustDate("2024-12-31").AddDays(1))

	a, b := MustDate("2024-01-31"), MustDate("2024-02-01")
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, 0, a.Compare(MustDate("2024-01-31")))
	assert.Equal(t, time.Thursday, b.Weekday())
	assert.True(t, Date{}.IsZero())
}

func TestDateOfUsesLocation(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC-10", -10*3600)
	ts := time.Date(2024, 3, 1, 5, 0, 0, 0, time.UTC).In(loc)
	assert.Equal(t, MustDate("2024-02-29"), DateOf(ts))
}

func TestDateJSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(struct {
		D Date `json:"d"`
	}{MustDate("2024-03-01")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2024-03-01"}`, string(b))

	var out struct {
		D Date `json:"d"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"d":"03/01/2024"}`), &out))

	_, err = json.Marshal(struct{ D Date }{})
	assert.Error(t, err)
}
