package gitclient

import (
	"reflect"
	"testing"
)

func TestSortTagsDescending(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want []string
	}{
		{
			name: "numeric triplet ordering",
			tags: []string{"v0.9.9-Prod", "v0.10.0-Prod", "v0.6.1-Prod"},
			want: []string{"v0.10.0-Prod", "v0.9.9-Prod", "v0.6.1-Prod"},
		},
		{
			name: "unparsable tags sort last",
			tags: []string{"nightly", "v1.0.0-Prod", "v0.7.0-Devel"},
			want: []string{"v1.0.0-Prod", "v0.7.0-Devel", "nightly"},
		},
		{
			name: "stable for equal triplets",
			tags: []string{"v1.0.0-Prod", "v1.0.0-Devel"},
			want: []string{"v1.0.0-Devel", "v1.0.0-Prod"},
		},
		{
			name: "empty",
			tags: nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tags := append([]string(nil), tt.tags...)
			SortTagsDescending(tags)
			if !reflect.DeepEqual(tags, tt.want) {
				t.Errorf("got %v, want %v", tags, tt.want)
			}
		})
	}
}
