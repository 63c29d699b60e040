package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventData(t *testing.T) {
	data, ok := eventData([]interface{}{map[string]interface{}{"room_id": "r1"}})
	assert.True(t, ok)
	assert.Equal(t, "r1", data["room_id"])

	_, ok = eventData([]interface{}{})
	assert.False(t, ok)

	_, ok = eventData([]interface{}{"not-an-object"})
	assert.False(t, ok)
}

func TestGetString(t *testing.T) {
	data := map[string]interface{}{"name": "alice", "count": 3.0}

	assert.Equal(t, "alice", getString(data, "name"))
	assert.Equal(t, "", getString(data, "count"))
	assert.Equal(t, "", getString(data, "missing"))
}

func TestGetIntHandlesJSONNumbers(t *testing.T) {
	data := map[string]interface{}{
		"float": 42.0,
		"int":   7,
		"text":  "9",
	}

	v, ok := getInt(data, "float")
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	v, ok = getInt(data, "int")
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	_, ok = getInt(data, "text")
	assert.False(t, ok)

	_, ok = getInt(data, "missing")
	assert.False(t, ok)
}

func TestGetStringSlice(t *testing.T) {
	data := map[string]interface{}{
		"expansions": []interface{}{"core", "spicy", 3.0},
	}

	assert.Equal(t, []string{"core", "spicy"}, getStringSlice(data, "expansions"))
	assert.Nil(t, getStringSlice(data, "missing"))
}
