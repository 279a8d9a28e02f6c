package world

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitMask_MarshalAllKeysInOrder(t *testing.T) {
	var m ExitMask
	m.Set(North, true)
	m.Set(West, true)
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"n":true,"ne":false,"e":false,"se":false,"s":false,"sw":false,"w":true,"nw":false}`, string(data))
}

func TestExitMask_UnmarshalDiscardsUnknownAndDefaultsMissing(t *testing.T) {
	var m ExitMask
	require.NoError(t, json.Unmarshal([]byte(`{"n":true,"up":true,"sideways":true}`), &m))
	assert.Equal(t, []Direction{North}, m.OpenDirections())
}

func TestExitMask_UnmarshalCoercesTruthy(t *testing.T) {
	var m ExitMask
	require.NoError(t, json.Unmarshal([]byte(`{"n":1,"ne":0,"e":"yes","se":"","s":null,"sw":[1],"w":{},"nw":false}`), &m))
	assert.Equal(t, []Direction{North, East, Southwest}, m.OpenDirections())
}

func TestExitMask_UnmarshalNullClosesAll(t *testing.T) {
	m := ExitMask{true, true}
	require.NoError(t, json.Unmarshal([]byte(`null`), &m))
	assert.Empty(t, m.OpenDirections())
}

func TestExitMask_UnmarshalRejectsList(t *testing.T) {
	var m ExitMask
	assert.Error(t, json.Unmarshal([]byte(`["n"]`), &m))
}

func TestExitMask_Toggle(t *testing.T) {
	var m ExitMask
	assert.True(t, m.Toggle(East))
	assert.True(t, m.Open(East))
	assert.False(t, m.Toggle(East))
	assert.False(t, m.Open(Direction("up")))
}
