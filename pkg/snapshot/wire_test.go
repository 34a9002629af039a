package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestWireFormat pins the encoded field names so stored snapshots stay
// readable across releases.
func TestWireFormat(t *testing.T) {
	data, err := Encode(fullTree())
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, yaml.Unmarshal(data, &wire))

	assert.Equal(t, "stack", wire["type"])
	assert.Equal(t, "root", wire["key"])

	children, ok := wire["children"].([]any)
	require.True(t, ok, "root stack should encode children")
	require.Len(t, children, 3)

	tab, ok := children[1].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "tab", tab["type"])
	assert.Equal(t, "library", tab["scope"])
	assert.Equal(t, 1, tab["active_index"])

	pane, ok := children[2].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "pane", pane["type"])
	assert.Equal(t, "supporting", pane["active_role"])
	assert.Equal(t, "pop_until_content_change", pane["back_behavior"])

	slots, ok := pane["slots"].([]any)
	require.True(t, ok)
	require.Len(t, slots, 2)
	first, ok := slots[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "primary", first["role"], "slots encode in canonical role order")
}
