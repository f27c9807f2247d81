package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/ec2ctl/internal/catalog"
)

func TestOperations_All(t *testing.T) {
	ta := newTestApp(t, nil)

	require.NoError(t, ta.execute("operations"))

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(ta.stdout.Bytes(), &rows))
	assert.Len(t, rows, len(catalog.Operations()))
	assert.Empty(t, ta.targets)
}

func TestOperations_Group(t *testing.T) {
	ta := newTestApp(t, nil)

	require.NoError(t, ta.execute("operations", "--group", catalog.GroupVPN, "-o", "text"))

	out := ta.stdout.String()
	assert.Contains(t, out, "Name: create-vpn-connection")
	assert.Contains(t, out, "Impact: high")
	assert.NotContains(t, out, "describe-volumes")
}
