package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestField(t *testing.T) {
	assert.Nil(t, Field("Owner", nil, "invalid owner"))
	assert.Nil(t, Field("Owner", (*Error)(nil), "invalid owner"))

	err := Field("DNAs.1", ErrEmpty, "empty dna")
	assert.Equal(t, `field "DNAs.1": empty dna: value is empty`, err.Error())
	assert.True(t, ErrEmpty.Is(err))

	err = Field("Price", Wrap(ErrOverflow, "fractional"), "")
	assert.Equal(t, `field "Price": fractional: value overflow`, err.Error())
	assert.True(t, ErrOverflow.Is(err))
}

func TestAppendField(t *testing.T) {
	var errs error
	errs = AppendField(errs, "Owner", nil)
	assert.Nil(t, errs)

	errs = AppendField(errs, "DNA", ErrEmpty)
	errs = AppendField(errs, "Destination", ErrInput)
	assert.True(t, ErrEmpty.Is(errs))
	assert.True(t, ErrInput.Is(errs))
	assert.False(t, ErrState.Is(errs))

	code, _ := ABCIInfo(errs, false)
	assert.Equal(t, ErrEmpty.ABCICode(), code)
}
