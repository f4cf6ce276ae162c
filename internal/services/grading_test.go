package services

import "testing"

func TestAnswerSetsEqual(t *testing.T) {
	tests := []struct {
		name      string
		correct   []string
		submitted []string
		want      bool
	}{
		{"exact match", []string{"a"}, []string{"a"}, true},
		{"order does not matter", []string{"a", "b"}, []string{"b", "a"}, true},
		{"missing one", []string{"a", "b"}, []string{"a"}, false},
		{"extra one", []string{"a"}, []string{"a", "b"}, false},
		{"wrong answer", []string{"a"}, []string{"b"}, false},
		{"both empty", nil, nil, true},
		{"empty submission", []string{"a"}, nil, false},
		{"duplicate does not equal", []string{"a", "b"}, []string{"a", "a"}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := AnswerSetsEqual(tc.correct, tc.submitted); got != tc.want {
				t.Errorf("AnswerSetsEqual(%v, %v) = %v, want %v", tc.correct, tc.submitted, got, tc.want)
			}
		})
	}
}

func TestAnswerSetsEqual_DoesNotMutateInputs(t *testing.T) {
	correct := []string{"c", "a", "b"}
	submitted := []string{"b", "c", "a"}

	AnswerSetsEqual(correct, submitted)

	if correct[0] != "c" || submitted[0] != "b" {
		t.Errorf("inputs were reordered: correct=%v submitted=%v", correct, submitted)
	}
}

func TestIndexSetsEqual(t *testing.T) {
	tests := []struct {
		name      string
		correct   []int
		submitted []int
		want      bool
	}{
		{"single correct", []int{0}, []int{0}, true},
		{"multi unordered", []int{0, 2}, []int{2, 0}, true},
		{"partial selection", []int{0, 2}, []int{0}, false},
		{"over selection", []int{0}, []int{0, 2}, false},
		{"unanswered", []int{1}, nil, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IndexSetsEqual(tc.correct, tc.submitted); got != tc.want {
				t.Errorf("IndexSetsEqual(%v, %v) = %v, want %v", tc.correct, tc.submitted, got, tc.want)
			}
		})
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		correct int
		total   int
		want    int
	}{
		{0, 5, 0},
		{1, 5, 20},
		{2, 5, 40},
		{3, 5, 60},
		{4, 5, 80},
		{5, 5, 100},
		{1, 3, 33},
		{2, 3, 67},
		{0, 0, 0},
	}

	for _, tc := range tests {
		if got := Score(tc.correct, tc.total); got != tc.want {
			t.Errorf("Score(%d, %d) = %d, want %d", tc.correct, tc.total, got, tc.want)
		}
	}
}

// 4 out of 5 is 80 and must not pass at the default 90 threshold.
func TestScore_FourOfFiveFailsDefaultThreshold(t *testing.T) {
	score := Score(4, 5)
	if score >= 90 {
		t.Errorf("Score(4, 5) = %d, expected below the default pass threshold of 90", score)
	}
	if Score(5, 5) < 90 {
		t.Errorf("Score(5, 5) = %d, expected at or above 90", Score(5, 5))
	}
}
