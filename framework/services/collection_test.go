package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-hosting/framework/services"
)

func TestCollection_PreservesRegistrationOrder(t *testing.T) {
	sc := services.NewCollection()
	require.NoError(t, sc.AddInstance("a", 1))
	require.NoError(t, sc.AddInstance("b", 2))
	require.NoError(t, sc.AddInstance("c", 3))

	keys := make([]string, 0, sc.Len())
	for _, d := range sc.Descriptors() {
		keys = append(keys, d.Key)
	}
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestCollection_RejectsNilRegistrations(t *testing.T) {
	sc := services.NewCollection()

	assert.ErrorIs(t, sc.AddSingleton("x", nil), services.ErrNilService)
	assert.ErrorIs(t, sc.AddTransient("x", nil), services.ErrNilService)
	assert.ErrorIs(t, sc.AddInstance("x", nil), services.ErrNilService)
	assert.ErrorIs(t, sc.Add(services.Descriptor{Key: ""}), services.ErrNilService)
	assert.Equal(t, 0, sc.Len())
}

func TestCollection_ReplaceKeepsPosition(t *testing.T) {
	sc := services.NewCollection()
	require.NoError(t, sc.AddInstance("a", 1))
	require.NoError(t, sc.AddInstance("b", 2))
	require.NoError(t, sc.AddInstance("c", 3))

	require.NoError(t, sc.Replace(services.Descriptor{Key: "b", Lifetime: services.Singleton, Instance: 20}))

	ds := sc.Descriptors()
	require.Len(t, ds, 3)
	assert.Equal(t, "b", ds[1].Key)
	assert.Equal(t, 20, ds[1].Instance)
}

func TestCollection_ReplaceAbsentKeyAppends(t *testing.T) {
	sc := services.NewCollection()
	require.NoError(t, sc.Replace(services.Descriptor{Key: "new", Instance: 1}))
	assert.True(t, sc.Has("new"))
}

func TestCollection_RemoveDeletesAllForKey(t *testing.T) {
	sc := services.NewCollection()
	require.NoError(t, sc.AddInstance("dup", 1))
	require.NoError(t, sc.AddInstance("keep", 2))
	require.NoError(t, sc.AddInstance("dup", 3))

	assert.True(t, sc.Remove("dup"))
	assert.False(t, sc.Remove("dup"))
	assert.False(t, sc.Has("dup"))
	assert.True(t, sc.Has("keep"))
	assert.Equal(t, 1, sc.Len())
}

func TestCollection_DescriptorsReturnsCopy(t *testing.T) {
	sc := services.NewCollection()
	require.NoError(t, sc.AddInstance("a", 1))

	ds := sc.Descriptors()
	ds[0].Key = "mutated"
	assert.True(t, sc.Has("a"), "mutating the returned slice must not affect the collection")
}
