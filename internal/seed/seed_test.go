package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cafes.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromJSONL(t *testing.T) {
	path := writeSeed(t, `
{"name":"블루보틀 성수","address":"서울특별시 성동구","location_tags":["서울","성수"]}

{"name":"모모스","location_tags":["부산"]}
`)

	records, err := LoadFromJSONL(path, nil)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "블루보틀 성수", records[0].Name)
	assert.Equal(t, []string{"서울", "성수"}, records[0].LocationTags)
	assert.Equal(t, "모모스", records[1].Name)
}

func TestLoadFromJSONLSkipsBadLines(t *testing.T) {
	path := writeSeed(t, `
{"name":"정상 카페"}
{not valid json
{"address":"이름 없는 줄"}
`)

	records, err := LoadFromJSONL(path, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "정상 카페", records[0].Name)
}

func TestLoadFromJSONLEmptyFileIsError(t *testing.T) {
	path := writeSeed(t, "\n\n")
	_, err := LoadFromJSONL(path, nil)
	assert.Error(t, err)
}

func TestLoadFromJSONLMissingFile(t *testing.T) {
	_, err := LoadFromJSONL(filepath.Join(t.TempDir(), "nope.jsonl"), nil)
	assert.Error(t, err)
}
