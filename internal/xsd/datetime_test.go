package xsd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateTimeRoundTrip(t *testing.T) {
	cases := []string{
		"2024-01-15T10:30:00Z",
		"2024-01-15T10:30:00.5Z",
		"2024-01-15T10:30:00+02:00",
		"2024-01-15T10:30:00-05:30",
	}
	for _, s := range cases {
		r := ParseDateTime(s)
		require.Truef(t, r.IsOK(), "expected %q to parse", s)
		assert.Equal(t, s, r.Value.String())
	}
}

func TestParseDateTimeRejectsGarbage(t *testing.T) {
	bad := []string{"", "not-a-date", "2024-01-15", "2024-13-01T00:00:00Z"}
	for _, s := range bad {
		r := ParseDateTime(s)
		assert.Falsef(t, r.IsOK(), "expected parse failure for %q", s)
	}
}

func TestParseDateAndTime(t *testing.T) {
	rd := ParseDate("2024-01-15")
	require.True(t, rd.IsOK())
	assert.Equal(t, "2024-01-15", rd.Value.String())

	rt := ParseTime("10:30:00Z")
	require.True(t, rt.IsOK())
	assert.Equal(t, "10:30:00Z", rt.Value.String())
}

func TestDateTimeCompareAcrossOffsets(t *testing.T) {
	a := ParseDateTime("2024-01-15T10:00:00Z").Value
	b := ParseDateTime("2024-01-15T12:00:00+02:00").Value
	assert.Equal(t, 0, a.Compare(b), "same instant in different offsets compares equal")

	c := ParseDateTime("2024-01-15T11:00:00Z").Value
	assert.Equal(t, -1, a.Compare(c))
	assert.Equal(t, 1, c.Compare(a))
}

func TestDateTimeEqDistinguishesOffsetPresence(t *testing.T) {
	withOffset := ParseDateTime("2024-01-15T10:00:00Z").Value
	without := withOffset
	without.HasOffset = false
	assert.False(t, withOffset.Eq(without))
	assert.True(t, withOffset.Eq(withOffset))
}
