package orm

import (
	"testing"

	"github.com/iov-one/kitties/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleObjValidate(t *testing.T) {
	cases := map[string]struct {
		obj     *SimpleObj
		wantErr *errors.Error
	}{
		"valid":         {obj: NewSimpleObj([]byte("ca"), &tally{Count: 1})},
		"missing key":   {obj: NewSimpleObj(nil, &tally{}), wantErr: errors.ErrEmpty},
		"missing value": {obj: NewSimpleObj([]byte("ca"), nil), wantErr: errors.ErrEmpty},
		"invalid value": {obj: NewSimpleObj([]byte("ca"), &tally{Count: -1}), wantErr: errors.ErrState},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.obj.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, tc.wantErr.Is(err), "got %+v", err)
		})
	}
}

func TestSimpleObjClone(t *testing.T) {
	val := &tally{Name: "ginger", Count: 3}
	obj := NewSimpleObj([]byte("ca"), val)

	clone := obj.Clone()
	require.Equal(t, obj.Key(), clone.Key())
	require.Equal(t, val, clone.Value())

	// the clone does not share memory with the original
	val.Count = -1
	obj.Key()[0] = 'x'
	assert.Equal(t, &tally{Name: "ginger", Count: 3}, clone.Value())
	assert.Equal(t, []byte("ca"), clone.Key())
	assert.NoError(t, clone.Validate())

	// a prototype without a key stays without one
	proto := NewSimpleObj(nil, &tally{})
	assert.Nil(t, proto.Clone().Key())
	clone.SetKey([]byte("cb"))
	assert.Equal(t, []byte("cb"), clone.Key())
}
