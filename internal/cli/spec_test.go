package cli

import (
	"reflect"
	"testing"

	"github.com/texpack/texpack/pkg/pipeline"
)

func TestParseSpecs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []pipeline.Spec
		wantErr bool
	}{
		{
			name: "bare path derives name",
			args: []string{"sprites/hero.png"},
			want: []pipeline.Spec{{Name: "hero", Frames: []string{"sprites/hero.png"}}},
		},
		{
			name: "explicit name",
			args: []string{"player=hero.png"},
			want: []pipeline.Spec{{Name: "player", Frames: []string{"hero.png"}}},
		},
		{
			name: "multi-frame texture",
			args: []string{"walk=walk_0.png walk_1.png walk_2.png"},
			want: []pipeline.Spec{{Name: "walk", Frames: []string{"walk_0.png", "walk_1.png", "walk_2.png"}}},
		},
		{
			name: "quoted path with spaces",
			args: []string{`ui='my assets/button.png' icon.png`},
			want: []pipeline.Spec{{Name: "ui", Frames: []string{"my assets/button.png", "icon.png"}}},
		},
		{
			name: "multiple arguments",
			args: []string{"hero.png", "tile=ground.png"},
			want: []pipeline.Spec{
				{Name: "hero", Frames: []string{"hero.png"}},
				{Name: "tile", Frames: []string{"ground.png"}},
			},
		},
		{
			name:    "empty spec",
			args:    []string{"   "},
			wantErr: true,
		},
		{
			name:    "name with no frames",
			args:    []string{"hero= "},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSpecs(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSpecs: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseSpecs = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNameFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"hero.png", "hero"},
		{"assets/sprites/walk_0.png", "walk_0"},
		{"noext", "noext"},
		{"a/b/c.tar.gz", "c.tar"},
	}
	for _, tt := range tests {
		if got := nameFromPath(tt.path); got != tt.want {
			t.Errorf("nameFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
