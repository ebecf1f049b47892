package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRawJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "item.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"contentid":"126508","title":"경복궁"}`), 0o600))

	data, err := ReadRawJSON(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "경복궁")
}

func TestReadRawJSON_Errors(t *testing.T) {
	_, err := ReadRawJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o600))
	_, err = ReadRawJSON(path)
	assert.Error(t, err)
}
