package provider

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPickNamed(t *testing.T) {
	byName := map[string]Location{
		"bakery": {Name: "bakery", Lat: 1, Lng: 2},
		"depot":  {Name: "depot", Lat: 3, Lng: 4},
	}

	got, err := pickNamed(byName, []string{"depot", "bakery"})
	require.NoError(t, err)
	require.Equal(t, []Location{byName["depot"], byName["bakery"]}, got)

	_, err = pickNamed(byName, []string{"depot", "harbour"})
	require.ErrorIs(t, err, ErrInvalidLocation)
}
