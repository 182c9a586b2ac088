package pipeline

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loaishar/RealEstateManager/internal/model"
)

func readByName(src Source) (model.Unit, error) {
	return model.Unit{Name: src.Unit}, nil
}

func TestLoadKeepsSourceOrder(t *testing.T) {
	var sources []Source
	for i := range 20 {
		sources = append(sources, Source{Path: fmt.Sprintf("f%d.csv", i), Unit: fmt.Sprintf("U%02d", i)})
	}

	var calls atomic.Int64
	last := 0
	units, err := Load(sources, readByName, func(current, total int) {
		calls.Add(1)
		assert.Equal(t, 20, total)
		if current == total {
			last = current
		}
	})
	require.NoError(t, err)
	require.Len(t, units, 20)
	for i, u := range units {
		assert.Equal(t, sources[i].Unit, u.Name)
	}
	assert.EqualValues(t, 20, calls.Load())
	assert.Equal(t, 20, last)
}

func TestLoadReturnsFirstError(t *testing.T) {
	errB := errors.New("b failed")
	errC := errors.New("c failed")
	read := func(src Source) (model.Unit, error) {
		switch src.Unit {
		case "B":
			return model.Unit{}, errB
		case "C":
			return model.Unit{}, errC
		}
		return model.Unit{Name: src.Unit}, nil
	}

	units, err := Load([]Source{{"a", "A"}, {"b", "B"}, {"c", "C"}}, read, nil)
	assert.ErrorIs(t, err, errB)
	assert.Nil(t, units)
}

func TestLoadRejectsDuplicateUnits(t *testing.T) {
	_, err := Load([]Source{{"x/a.csv", "a"}, {"y/a.csv", "a"}}, readByName, nil)
	assert.ErrorContains(t, err, `both load unit "a"`)
}

func TestLoadEmpty(t *testing.T) {
	units, err := Load(nil, readByName, nil)
	require.NoError(t, err)
	assert.Empty(t, units)
}
