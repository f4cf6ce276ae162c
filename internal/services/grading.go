package services

import (
	"math"
	"sort"
)

// AnswerSetsEqual reports whether a submitted selection matches the
// correct set exactly: same size and same elements regardless of order.
// No partial credit.
func AnswerSetsEqual(correct, submitted []string) bool {
	if len(correct) != len(submitted) {
		return false
	}

	c := append([]string(nil), correct...)
	s := append([]string(nil), submitted...)
	sort.Strings(c)
	sort.Strings(s)

	for i := range c {
		if c[i] != s[i] {
			return false
		}
	}
	return true
}

// IndexSetsEqual is AnswerSetsEqual over option indices, used for
// AI-session grading.
func IndexSetsEqual(correct, submitted []int) bool {
	if len(correct) != len(submitted) {
		return false
	}

	c := append([]int(nil), correct...)
	s := append([]int(nil), submitted...)
	sort.Ints(c)
	sort.Ints(s)

	for i := range c {
		if c[i] != s[i] {
			return false
		}
	}
	return true
}

// Score converts a correct count into a 0-100 integer score.
func Score(correctCount, totalQuestions int) int {
	if totalQuestions == 0 {
		return 0
	}
	return int(math.Round(float64(correctCount) / float64(totalQuestions) * 100))
}
