package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCriteria_Matches_Personal(t *testing.T) {
	personal := Personal()

	tests := []struct {
		name   string
		region string
		genre  string
		want   bool
	}{
		{
			name:   "gyeonggi music matches",
			region: "경기",
			genre:  "음악",
			want:   true,
		},
		{
			name:   "seoul fine-art does not match",
			region: "서울",
			genre:  "미술",
			want:   false,
		},
		{
			name:   "nationwide wildcard genre matches",
			region: "전국",
			genre:  "전체",
			want:   true,
		},
		{
			name:   "region matches but genre does not",
			region: "경기",
			genre:  "미술",
			want:   false,
		},
		{
			name:   "genre matches but region does not",
			region: "서울",
			genre:  "음악",
			want:   false,
		},
		{
			name:   "substring match on compound region",
			region: "경기도 수원시",
			genre:  "음악",
			want:   true,
		},
		{
			name:   "substring match on compound genre",
			region: "전국",
			genre:  "음악/국악",
			want:   true,
		},
		{
			name:   "empty region and genre do not match",
			region: "",
			genre:  "",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, personal.Matches(tt.region, tt.genre))
		})
	}
}

func TestCriteria_Matches_NilPassesEverything(t *testing.T) {
	var c *Criteria

	assert.True(t, c.Matches("서울", "미술"))
	assert.True(t, c.Matches("", ""))
}

func TestCriteria_Matches_BothAxesRequired(t *testing.T) {
	c := &Criteria{
		Regions: []string{"부산"},
		Genres:  []string{"연극"},
	}

	assert.True(t, c.Matches("부산", "연극"))
	assert.False(t, c.Matches("부산", "무용"))
	assert.False(t, c.Matches("대구", "연극"))
}
