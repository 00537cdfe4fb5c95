// Package grading derives SGPA, CGPA and backlog lists from fetched semester records.
// Every function here is pure: the same records always produce the same numbers.
package grading

import (
	"math"
	"strings"

	"github.com/clgres/resultapi/internal/app/models"
)

// CGPAPolicy selects how failed work is kept out of the cumulative average
type CGPAPolicy string

const (
	// ExcludeFailedSubjects drops only the failed subjects' points and credits
	ExcludeFailedSubjects CGPAPolicy = "exclude_failed_subjects"
	// ExcludeFailedSemesters drops every semester whose SGPA is zero
	ExcludeFailedSemesters CGPAPolicy = "exclude_failed_semesters"
)

// Aggregator computes the derived academic metrics under a fixed CGPA policy
type Aggregator struct {
	policy CGPAPolicy
}

// NewAggregator returns an Aggregator; an unknown policy falls back to ExcludeFailedSubjects
func NewAggregator(policy CGPAPolicy) *Aggregator {
	if policy != ExcludeFailedSemesters {
		policy = ExcludeFailedSubjects
	}
	return &Aggregator{policy: policy}
}

// Policy reports the CGPA policy in effect
func (a *Aggregator) Policy() CGPAPolicy {
	return a.policy
}

// IsFailingGrade reports whether grade is F or AB, ignoring case and surrounding spaces
func IsFailingGrade(grade string) bool {
	g := strings.ToUpper(strings.TrimSpace(grade))
	return g == models.GradeFail || g == models.GradeAbsent
}

// ComputeSGPA returns the credit-weighted grade point average of one semester.
// A single failed subject zeroes the whole semester. benchmarkCredits replaces
// the student's own credit total as the divisor when it is positive.
func ComputeSGPA(subjects []models.Subject, benchmarkCredits float64) float64 {
	if len(subjects) == 0 {
		return 0
	}

	var points, credits float64
	for _, s := range subjects {
		if IsFailingGrade(s.Grade) {
			return 0
		}
		points += s.GradePoint * s.Credit
		credits += s.Credit
	}

	divisor := credits
	if benchmarkCredits > 0 {
		divisor = benchmarkCredits
	}
	if divisor == 0 {
		return 0
	}

	return round2(points / divisor)
}

// ComputeCGPA applies ExcludeFailedSubjects across all semesters
func ComputeCGPA(semesters []models.SemesterRecord) float64 {
	return NewAggregator(ExcludeFailedSubjects).ComputeCGPA(semesters)
}

// ComputeCGPA returns the cumulative average across semesters under the aggregator's policy
func (a *Aggregator) ComputeCGPA(semesters []models.SemesterRecord) float64 {
	var points, credits float64

	for _, sem := range semesters {
		if a.policy == ExcludeFailedSemesters && ComputeSGPA(sem.Subjects, sem.BenchmarkCredits) <= 0 {
			continue
		}
		for _, s := range sem.Subjects {
			if IsFailingGrade(s.Grade) {
				continue
			}
			points += s.GradePoint * s.Credit
			credits += s.Credit
		}
	}

	if credits == 0 {
		return 0
	}
	return round2(points / credits)
}

// ExtractBacklogs lists the code of every failed subject in semester order, then subject order.
// Repeated failures of the same code are all kept.
func ExtractBacklogs(semesters []models.SemesterRecord) []string {
	backlogs := []string{}
	for _, sem := range semesters {
		for _, s := range sem.Subjects {
			if IsFailingGrade(s.Grade) {
				backlogs = append(backlogs, s.Code)
			}
		}
	}
	return backlogs
}

// EvaluateSemester derives status, SGPA and cleared credits for one record
func EvaluateSemester(record models.SemesterRecord) models.SemesterResult {
	result := models.SemesterResult{
		Status:   models.StatusPass,
		SGPA:     ComputeSGPA(record.Subjects, record.BenchmarkCredits),
		Subjects: record.Subjects,
	}
	if result.Subjects == nil {
		result.Subjects = []models.Subject{}
	}

	for _, s := range record.Subjects {
		if IsFailingGrade(s.Grade) {
			result.Status = models.StatusFail
			continue
		}
		result.TotalCredits += s.Credit
	}

	return result
}

// round2 rounds half away from zero to two decimal places
func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}
