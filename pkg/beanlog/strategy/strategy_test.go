package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFullTagList(t *testing.T) {
	got := Generate("블루보틀 성수", []string{"서울", "성수"})

	require.Len(t, got, 4)
	assert.Equal(t, "블루보틀 성수 성수", got[0].Query)
	assert.Equal(t, "name + district", got[0].Description)
	assert.Equal(t, "블루보틀 성수 서울", got[1].Query)
	assert.Equal(t, "name + city", got[1].Description)
	assert.Equal(t, "블루보틀 성수 카페", got[2].Query)
	assert.Equal(t, "name + keyword", got[2].Description)
	assert.Equal(t, "블루보틀 성수", got[3].Query)
	assert.Equal(t, "name only", got[3].Description)
}

func TestGenerateOmitsMissingTags(t *testing.T) {
	tests := []struct {
		name    string
		tags    []string
		queries []string
	}{
		{
			name:    "city only",
			tags:    []string{"서울"},
			queries: []string{"모모스 서울", "모모스 카페", "모모스"},
		},
		{
			name:    "no tags",
			tags:    nil,
			queries: []string{"모모스 카페", "모모스"},
		},
		{
			name:    "empty district tag",
			tags:    []string{"부산", ""},
			queries: []string{"모모스 부산", "모모스 카페", "모모스"},
		},
		{
			name:    "empty city tag",
			tags:    []string{"", "영도"},
			queries: []string{"모모스 영도", "모모스 카페", "모모스"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate("모모스", tt.tags)
			require.Len(t, got, len(tt.queries))
			for i, q := range tt.queries {
				assert.Equal(t, q, got[i].Query)
			}
		})
	}
}

func TestGenerateEmptyName(t *testing.T) {
	assert.Nil(t, Generate("", []string{"서울", "성수"}))
}

func TestGenerateOrderStable(t *testing.T) {
	first := Generate("카페 어니언", []string{"서울", "성수"})
	second := Generate("카페 어니언", []string{"서울", "성수"})
	assert.Equal(t, first, second)
}
