package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("valid money creation", func(t *testing.T) {
		m, err := NewMoney(1800, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1800), m.Numerator())
		assert.Equal(t, int64(1), m.Denominator())
	})

	t.Run("zero denominator returns error", func(t *testing.T) {
		_, err := NewMoney(100, 0)
		assert.Error(t, err)
	})

	t.Run("negative denominator returns error", func(t *testing.T) {
		_, err := NewMoney(100, -1)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "positive")
	})

	t.Run("fractions are normalized", func(t *testing.T) {
		m, err := NewMoney(200, 4)
		require.NoError(t, err)
		assert.Equal(t, int64(50), m.Numerator())
		assert.Equal(t, int64(1), m.Denominator())
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	a := MustMoney(37, 2) // 18.5
	b := MustMoney(3, 2)  // 1.5

	assert.Equal(t, "20", a.Add(b).RatString())
	assert.Equal(t, "17", a.Subtract(b).RatString())
	assert.Equal(t, "111/2", a.MultiplyByQuantity(3).RatString())
	assert.Equal(t, 18.5, a.Float64())

	assert.Equal(t, "37/2", a.RatString(), "operands are not mutated")
}

func TestParseMoney(t *testing.T) {
	for _, in := range []string{"1800", "37/2", "18.5"} {
		t.Run(in, func(t *testing.T) {
			m, err := ParseMoney(in)
			require.NoError(t, err)
			again, err := ParseMoney(m.RatString())
			require.NoError(t, err)
			assert.True(t, m.Equals(again))
		})
	}

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := ParseMoney("eighteen")
		assert.Error(t, err)
	})
}

func TestMoney_Equals(t *testing.T) {
	assert.True(t, MustMoney(1, 2).Equals(MustMoney(2, 4)))
	assert.False(t, MustMoney(1, 2).Equals(MustMoney(1, 3)))
	assert.False(t, MustMoney(1, 2).Equals(nil))
}

func TestMoney_Copy(t *testing.T) {
	m := MustMoney(100, 1)
	cp := m.Copy()
	sum := cp.Add(MustMoney(1, 1))

	assert.Equal(t, "100", m.RatString())
	assert.Equal(t, "101", sum.RatString())
	assert.Equal(t, "100.00", cp.String())
}
