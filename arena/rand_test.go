package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRand_SameSeedSameRandomNumbers(t *testing.T) {
	r1 := NewRand(13)
	v1 := [10]int{}
	for i := range v1 {
		v1[i] = r1.RInt(0, 1000000)
	}

	r2 := NewRand(13)
	v2 := [10]int{}
	for i := range v2 {
		v2[i] = r2.RInt(0, 1000000)
	}

	assert.Equal(t, v1, v2)
}

func TestRand_DifferentSeedsDifferentRandomNumbers(t *testing.T) {
	r1 := NewRand(13)
	v1 := [10]int{}
	for i := range v1 {
		v1[i] = r1.RInt(0, 1000000)
	}

	r2 := NewRand(14)
	v2 := [10]int{}
	for i := range v2 {
		v2[i] = r2.RInt(0, 1000000)
	}

	assert.NotEqual(t, v1, v2)
}

func TestRand_CopyMakesIdenticalGenerators(t *testing.T) {
	r1 := NewRand(13)
	vOriginal := [10]int{}
	for i := range vOriginal {
		vOriginal[i] = r1.RInt(0, 1000000)
	}

	r2 := r1

	v1 := [10]int{}
	for i := range v1 {
		v1[i] = r1.RInt(0, 1000000)
	}

	v2 := [10]int{}
	for i := range v2 {
		v2[i] = r2.RInt(0, 1000000)
	}

	assert.Equal(t, v1, v2)
}

func TestRand_RIntIsInclusive(t *testing.T) {
	r := NewRand(0)
	seen := map[int]bool{}
	for range 1000 {
		v := r.RInt(3, 5)
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 5)
		seen[v] = true
	}
	assert.Len(t, seen, 3)
	assert.Equal(t, 7, r.RInt(7, 7))
}
