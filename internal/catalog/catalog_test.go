package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vasiliy-maslov/catering-service/internal/catalog"
)

func TestDefault(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	require.Len(t, c.Packages, 3)
	require.Len(t, c.Entrees, 23)
	require.Len(t, c.Sides, 12)
	require.Len(t, c.AdditionalServices, 4)

	pkg, ok := c.Package("kkc2")
	require.True(t, ok)
	assert.Equal(t, "Kaycee's Kitchen #2", pkg.Name)
	assert.Equal(t, 38.0, pkg.Price)
	assert.Equal(t, 2, pkg.Entrees)
	assert.Equal(t, 3, pkg.Sides)

	bev, ok := c.Service("beverage")
	require.True(t, ok)
	assert.Equal(t, catalog.PerPerson, bev.Type)
	assert.Equal(t, 5.0, bev.Price)

	for _, id := range []string{"delivery", "staff", "disposal"} {
		s, ok := c.Service(id)
		require.True(t, ok, id)
		assert.Equal(t, catalog.QuoteBased, s.Type, id)
		assert.Zero(t, s.Price, id)
	}

	_, ok = c.Package("missing")
	assert.False(t, ok)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "negative_price",
			doc:     "packages:\n  - {id: p, name: P, price: -1}\n",
			wantErr: `catalog: package "p" has negative price`,
		},
		{
			name:    "duplicate_package",
			doc:     "packages:\n  - {id: p, name: P, price: 1}\n  - {id: p, name: Q, price: 2}\n",
			wantErr: `catalog: duplicate package id "p"`,
		},
		{
			name:    "unknown_service_type",
			doc:     "additionalServices:\n  - {id: s, name: S, price: 0, type: hourly}\n",
			wantErr: `catalog: service "s" has unknown type "hourly"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.Parse([]byte(tt.doc))
			require.EqualError(t, err, tt.wantErr)
		})
	}
}
