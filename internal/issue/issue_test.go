package issue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogResolver_Describe(t *testing.T) {
	r := NewCatalogResolver()

	desc, err := r.Describe("stereotypes")
	require.NoError(t, err)
	assert.Contains(t, desc, "Stereotypes")

	_, err = r.Describe("not_a_detector")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not_a_detector")
}

func TestKnown_CoversCatalogSorted(t *testing.T) {
	names := Known()
	require.NotEmpty(t, names)
	assert.IsIncreasing(t, names)

	r := NewCatalogResolver()
	for _, name := range names {
		desc, err := r.Describe(name)
		require.NoError(t, err)
		assert.NotEmpty(t, desc)
	}
}
