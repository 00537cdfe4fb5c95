package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clgres/resultapi/internal/app/models"
)

func subject(code string, credit, gp float64, grade string) models.Subject {
	return models.Subject{Name: code + " name", Code: code, Credit: credit, GradePoint: gp, Grade: grade}
}

func TestComputeSGPA(t *testing.T) {
	passing := []models.Subject{subject("CS101", 3, 8, "A"), subject("CS102", 3, 9, "A+")}

	tests := []struct {
		name      string
		subjects  []models.Subject
		benchmark float64
		want      float64
	}{
		{"empty semester", nil, 0, 0},
		{"own credits as divisor", passing, 0, 8.5},
		{"benchmark credits as divisor", passing, 10, 5.1},
		{"negative benchmark ignored", passing, -4, 8.5},
		{"single F zeroes semester", append([]models.Subject{subject("CS103", 4, 0, "F")}, passing...), 0, 0},
		{"absent zeroes semester", append(passing, subject("CS104", 2, 0, "AB")), 12, 0},
		{"lowercase absent zeroes semester", append(passing, subject("CS104", 2, 0, " ab ")), 0, 0},
		{"zero credits", []models.Subject{subject("LAB1", 0, 10, "O")}, 0, 0},
		{"rounds to two places", []models.Subject{subject("A", 3, 7, "B"), subject("B", 3, 8, "A"), subject("C", 3, 8, "A")}, 0, 7.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ComputeSGPA(tt.subjects, tt.benchmark), 1e-9)
		})
	}
}

func TestComputeCGPA_ExcludesOnlyFailedSubjects(t *testing.T) {
	semesters := []models.SemesterRecord{
		{ID: "1", Subjects: []models.Subject{subject("A", 3, 8, "A"), subject("B", 3, 0, "F")}},
		{ID: "2", Subjects: []models.Subject{subject("C", 4, 9, "A+"), subject("D", 2, 6, "C")}},
	}

	// (24 + 36 + 12) / (3 + 4 + 2)
	assert.InDelta(t, 8.0, ComputeCGPA(semesters), 1e-9)
}

func TestComputeCGPA_ExcludeFailedSemestersPolicy(t *testing.T) {
	semesters := []models.SemesterRecord{
		{ID: "1", Subjects: []models.Subject{subject("A", 3, 8, "A"), subject("B", 3, 0, "F")}},
		{ID: "2", Subjects: []models.Subject{subject("C", 4, 9, "A+"), subject("D", 2, 6, "C")}},
	}

	agg := NewAggregator(ExcludeFailedSemesters)
	assert.Equal(t, ExcludeFailedSemesters, agg.Policy())
	// Semester 1 is gated out entirely: (36 + 12) / 6
	assert.InDelta(t, 8.0, agg.ComputeCGPA(semesters), 1e-9)

	semesters[1].Subjects = append(semesters[1].Subjects, subject("E", 3, 10, "O"))
	// (36 + 12 + 30) / 9 vs subject policy (24 + 36 + 12 + 30) / 12
	assert.InDelta(t, 8.67, agg.ComputeCGPA(semesters), 1e-9)
	assert.InDelta(t, 8.5, ComputeCGPA(semesters), 1e-9)
}

func TestComputeCGPA_NoCredits(t *testing.T) {
	assert.Equal(t, 0.0, ComputeCGPA(nil))
	assert.Equal(t, 0.0, ComputeCGPA([]models.SemesterRecord{{ID: "1"}}))
	assert.Equal(t, 0.0, ComputeCGPA([]models.SemesterRecord{
		{ID: "1", Subjects: []models.Subject{subject("A", 3, 0, "F"), subject("B", 2, 0, "AB")}},
	}))
}

func TestNewAggregator_UnknownPolicyFallsBack(t *testing.T) {
	assert.Equal(t, ExcludeFailedSubjects, NewAggregator("best_of").Policy())
}

func TestExtractBacklogs_PreservesOrderWithoutDedup(t *testing.T) {
	semesters := []models.SemesterRecord{
		{ID: "1", Subjects: []models.Subject{subject("MA101", 4, 0, "F"), subject("PH101", 3, 7, "B"), subject("CS101", 3, 0, "AB")}},
		{ID: "2", Subjects: []models.Subject{subject("MA101", 4, 0, "F")}},
		{ID: "3", Subjects: []models.Subject{subject("EE201", 3, 8, "A")}},
	}

	assert.Equal(t, []string{"MA101", "CS101", "MA101"}, ExtractBacklogs(semesters))
	assert.Equal(t, []string{}, ExtractBacklogs(nil))
}

func TestEvaluateSemester(t *testing.T) {
	record := models.SemesterRecord{
		ID:       "4",
		Subjects: []models.Subject{subject("A", 3, 8, "A"), subject("B", 4, 0, "F"), subject("C", 2, 9, "A+")},
	}

	result := EvaluateSemester(record)
	assert.Equal(t, models.StatusFail, result.Status)
	assert.Equal(t, 0.0, result.SGPA)
	assert.Equal(t, 5.0, result.TotalCredits)
	assert.Equal(t, record.Subjects, result.Subjects)

	pass := EvaluateSemester(models.SemesterRecord{ID: "5", Subjects: record.Subjects[:1], BenchmarkCredits: 4})
	assert.Equal(t, models.StatusPass, pass.Status)
	assert.InDelta(t, 6.0, pass.SGPA, 1e-9)
	assert.Equal(t, 3.0, pass.TotalCredits)

	empty := EvaluateSemester(models.SemesterRecord{ID: "6"})
	assert.Equal(t, models.StatusPass, empty.Status)
	assert.NotNil(t, empty.Subjects)
}

func TestEvaluateSemester_Idempotent(t *testing.T) {
	record := models.SemesterRecord{
		ID:       "1",
		Subjects: []models.Subject{subject("A", 3, 8, "A"), subject("B", 3, 9, "A+")},
	}

	first := EvaluateSemester(record)
	second := EvaluateSemester(models.SemesterRecord{ID: record.ID, Subjects: first.Subjects})
	assert.Equal(t, first, second)
	assert.Equal(t, ExtractBacklogs([]models.SemesterRecord{record}), ExtractBacklogs([]models.SemesterRecord{{Subjects: first.Subjects}}))
}

func TestIsFailingGrade(t *testing.T) {
	for _, g := range []string{"F", "f", "AB", "Ab", " F "} {
		assert.True(t, IsFailingGrade(g), g)
	}
	for _, g := range []string{"", "A", "O", "B+", "FA"} {
		assert.False(t, IsFailingGrade(g), g)
	}
}
