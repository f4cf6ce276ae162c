package models

import (
	"testing"
	"time"
)

func TestGetTrainingStatus(t *testing.T) {
	score80 := 80
	score100 := 100
	now := time.Now()

	tests := []struct {
		name     string
		progress *Progress
		want     TrainingStatus
	}{
		{"no record", nil, StatusNotStarted},
		{"not watched yet", &Progress{Watched: false}, StatusInProgress},
		{"watched, no attempt", &Progress{Watched: true}, StatusInProgress},
		{"watched, failed attempt", &Progress{Watched: true, Score: &score80, Passed: false}, StatusFailed},
		{"watched, passed", &Progress{Watched: true, Score: &score100, Passed: true, CompletedAt: &now}, StatusPassed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := GetTrainingStatus(tc.progress); got != tc.want {
				t.Errorf("GetTrainingStatus(%+v) = %q, want %q", tc.progress, got, tc.want)
			}
		})
	}
}
