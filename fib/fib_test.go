package fib

import (
	"math"
	"math/big"
	"testing"

	"github.com/jhan1998/fibdrv/decimal"
	"github.com/jhan1998/fibdrv/xs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bigFib(k int) string {
	a, b := big.NewInt(0), big.NewInt(1)
	for i := 0; i < k; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return a.String()
}

func TestTermKnownValues(t *testing.T) {
	e := New()
	tests := []struct {
		k    int
		want string
	}{
		{0, "0"},
		{1, "1"},
		{2, "1"},
		{10, "55"},
		{20, "6765"},
		{92, "7540113804746346429"},
		{93, "12200160415121876738"},
		{100, "354224848179261915075"},
	}
	for _, tt := range tests {
		got, err := e.Term(tt.k)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.String(), "F(%d)", tt.k)
	}
}

func TestTermMatchesBigInt(t *testing.T) {
	e := New()
	for _, k := range []int{50, 137, 256, 499, 500, 1000} {
		got, err := e.Term(k)
		require.NoError(t, err)
		assert.Equal(t, bigFib(k), got.String(), "F(%d)", k)
	}
}

func TestTableRecurrence(t *testing.T) {
	tab, err := New().Table(500)
	require.NoError(t, err)
	defer Release(tab)
	require.Len(t, tab, 501)

	assert.Equal(t, "0", tab[0].String())
	assert.Equal(t, "1", tab[1].String())
	for k := 2; k < len(tab); k++ {
		sum, err := decimal.Add(tab[k-1], tab[k-2])
		require.NoError(t, err)
		require.True(t, xs.Equal(sum, tab[k]), "F(%d)", k)
		sum.Release()
	}
}

func TestNoLeadingZeros(t *testing.T) {
	tab, err := New().Table(500)
	require.NoError(t, err)
	defer Release(tab)
	for k := 1; k < len(tab); k++ {
		require.NotEqual(t, byte('0'), tab[k].Bytes()[0], "F(%d)=%s", k, tab[k])
	}
}

func TestLayoutsAcrossSequence(t *testing.T) {
	tab, err := New().Table(1300)
	require.NoError(t, err)
	defer Release(tab)

	assert.Equal(t, xs.Inline, tab[70].Kind())  // 15 digits
	assert.Equal(t, xs.Heap, tab[80].Kind())    // 17 digits
	assert.Equal(t, xs.HeapLarge, tab[1300].Kind())
}

func TestInvalidIndex(t *testing.T) {
	_, err := New().Term(-1)
	require.ErrorIs(t, err, ErrInvalidIndex)

	_, err = New().Table(MaxIndex + 1)
	require.ErrorIs(t, err, ErrInvalidIndex)
	_, err = New().Table(math.MaxInt)
	require.ErrorIs(t, err, ErrInvalidIndex)
}

func TestReleaseReturnsAllBuffers(t *testing.T) {
	a := xs.NewPoolAllocator(0)
	e := New(WithAllocator(a))

	got, err := e.Term(300)
	require.NoError(t, err)
	assert.Equal(t, bigFib(300), got.String())
	assert.EqualValues(t, got.Cap(), a.InUse())

	got.Release()
	assert.EqualValues(t, 0, a.InUse())
}

func TestOutOfMemoryReleasesPartialTable(t *testing.T) {
	a := xs.NewPoolAllocator(1024)
	e := New(WithAllocator(a))

	_, err := e.Term(200)
	require.ErrorIs(t, err, xs.ErrOutOfMemory)
	assert.EqualValues(t, 0, a.InUse())

	got, err := e.Term(20)
	require.NoError(t, err)
	assert.Equal(t, "6765", got.String())
}
