package scale

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseFrames(t *testing.T) {
	tests := []struct {
		name     string
		buffer   string
		want     []string
		wantRest string
	}{
		{"single", "[01234]", []string{"12.34"}, ""},
		{"several_with_noise", "xx[00050]\r\n[12345][1x345][999]", []string{"0.5", "123.45"}, ""},
		{"partial_tail", "[00100][002", []string{"1"}, "[002"},
		{"no_frames", "garbage", nil, "garbage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weights, rest := ParseFrames(tt.buffer)
			if len(weights) != len(tt.want) {
				t.Fatalf("Expected %d weights, got %v", len(tt.want), weights)
			}
			for i, w := range tt.want {
				if weights[i].String() != w {
					t.Errorf("Weight %d: expected %s, got %s", i, w, weights[i])
				}
			}
			if rest != tt.wantRest {
				t.Errorf("Expected rest %q, got %q", tt.wantRest, rest)
			}
		})
	}
}

func TestFileSource_ReadGrossWeight(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scale.raw")
	if err := os.WriteFile(path, []byte("[01000][01250][01"), 0644); err != nil {
		t.Fatal(err)
	}

	source := NewFileSource(path, 0)
	weight, err := source.ReadGrossWeight(context.Background())
	if err != nil {
		t.Fatalf("Failed to read weight: %v", err)
	}
	if weight.String() != "12.5" {
		t.Errorf("Expected the latest complete frame 12.5, got %s", weight)
	}

	stale := NewFileSource(path, time.Minute)
	stale.Now = func() time.Time { return time.Now().Add(time.Hour) }
	if _, err := stale.ReadGrossWeight(context.Background()); !errors.Is(err, ErrNoReading) {
		t.Errorf("Expected stale reading to be rejected, got %v", err)
	}

	if err := os.WriteFile(path, []byte("no frames yet"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := source.ReadGrossWeight(context.Background()); !errors.Is(err, ErrNoReading) {
		t.Errorf("Expected ErrNoReading, got %v", err)
	}
}
