package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataSetGroupByQueries(t *testing.T) {
	instances := []Instance{
		NewInstance(1, 10, []float64{1}),
		NewInstance(0, 10, []float64{2}),
		NewInstance(1, 20, []float64{3}),
		NewInstance(1, 20, []float64{4}),
		NewInstance(1, 20, []float64{5}),
	}
	ds := New(instances)
	require.Equal(t, 5, ds.Len())
	require.Equal(t, 2, ds.NumQueries())

	start, length := ds.Query(0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 2, length)

	start, length = ds.Query(1)
	assert.Equal(t, 2, start)
	assert.Equal(t, 3, length)

	assert.Equal(t, 1, ds.NumFeatures())
}

func TestInstanceValueOutOfRangeIsZero(t *testing.T) {
	inst := NewInstance(1, 1, []float64{1, 2, 3})
	assert.Equal(t, 1.0, inst.Value(1))
	assert.Equal(t, 3.0, inst.Value(3))
	assert.Equal(t, 0.0, inst.Value(4))
	assert.Equal(t, 0.0, inst.Value(0))
	assert.Equal(t, 3, inst.MaxFeatureID())
}

func TestDataSetNumFeaturesIsMax(t *testing.T) {
	instances := []Instance{
		NewInstance(1, 1, []float64{1, 2}),
		NewInstance(1, 1, []float64{1, 2, 3, 4}),
		NewInstance(1, 1, []float64{1}),
	}
	ds := New(instances)
	assert.Equal(t, 4, ds.NumFeatures())
}
