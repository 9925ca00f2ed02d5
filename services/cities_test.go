package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoldCityName(t *testing.T) {
	assert.Equal(t, "bogota", FoldCityName("  Bogotá "))
	assert.Equal(t, "sao paulo", FoldCityName("São   Paulo"))
	assert.Equal(t, "ciudad de mexico", FoldCityName("Ciudad de México"))
}

func TestResolveCity(t *testing.T) {
	for _, name := range []string{"Lima", "LIMA", " lima "} {
		code, ok := ResolveCity(name)
		assert.True(t, ok, name)
		assert.Equal(t, "LIM", code)
	}

	code, ok := ResolveCity("Cancún")
	assert.True(t, ok)
	assert.Equal(t, "CUN", code)

	code, ok = ResolveCity("London")
	assert.True(t, ok)
	assert.Equal(t, "LON", code)

	_, ok = ResolveCity("Atlantis")
	assert.False(t, ok)
}

func TestResolveRoute(t *testing.T) {
	from, to, err := ResolveRoute("Madrid", "Barcelona")
	require.NoError(t, err)
	assert.Equal(t, "MAD", from)
	assert.Equal(t, "BCN", to)

	_, _, err = ResolveRoute("Atlantis", "Lima")
	require.True(t, IsUnknownCity(err))

	_, _, err = ResolveRoute("Atlantis", "El Dorado")
	var cityErr UnknownCityError
	require.ErrorAs(t, err, &cityErr)
	assert.Equal(t, []string{"Atlantis", "El Dorado"}, cityErr.Names)
	assert.NotEmpty(t, cityErr.Supported)
	assert.Contains(t, err.Error(), "El Dorado")
}
