package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clgres/resultapi/internal/app/grading"
	"github.com/clgres/resultapi/internal/app/models"
	"github.com/clgres/resultapi/internal/app/repositories"
	"github.com/clgres/resultapi/internal/pkg/apperrors"
	"github.com/clgres/resultapi/internal/store"
	"github.com/clgres/resultapi/internal/store/memory"
)

func subjectDoc(code string, credit, gp float64, grade string) map[string]interface{} {
	return map[string]interface{}{"name": code, "code": code, "credit": credit, "gp": gp, "grade": grade}
}

func newService(t *testing.T, mem *memory.Store) ResultService {
	t.Helper()
	repo := repositories.NewResultRepository(mem, "students", "semesters")
	return NewResultService(repo, grading.NewAggregator(grading.ExcludeFailedSubjects), "sem_", zerolog.Nop())
}

func seededStore() *memory.Store {
	mem := memory.New()
	mem.PutDocument("students", "22011P0533", store.Document{
		"fullName":         "Asha Rao",
		"current_backlogs": []interface{}{""},
	})
	mem.PutSubcollectionDocument("students", "22011P0533", "semesters", "2", store.Document{
		"subjects": []interface{}{subjectDoc("MA201", 4, 0, "F"), subjectDoc("CS201", 3, 9, "A+")},
	})
	mem.PutSubcollectionDocument("students", "22011P0533", "semesters", "1", store.Document{
		"subjects": []interface{}{subjectDoc("CS101", 3, 8, "A"), subjectDoc("PH101", 3, 9, "A+")},
	})
	mem.PutSubcollectionDocument("students", "22011P0533", "semesters", "10", store.Document{
		"subjects":         []interface{}{subjectDoc("CS401", 3, 10, "O"), subjectDoc("CS402", 1, 0, "AB")},
		"benchmarkCredits": 20,
	})
	return mem
}

func TestGetStudentResults(t *testing.T) {
	svc := newService(t, seededStore())

	res, err := svc.GetStudentResults(context.Background(), "22011p0533")
	require.NoError(t, err)

	assert.Equal(t, "22011P0533", res.RollNo)
	assert.Equal(t, "Asha Rao", res.FullName)
	assert.Equal(t, []string{}, res.CurrentBacklogs)
	// Semesters are sorted numerically before backlogs are listed
	assert.Equal(t, []string{"MA201", "CS402"}, res.Backlogs)
	// (24 + 27 + 27 + 30) / (3 + 3 + 3 + 3)
	assert.InDelta(t, 9.0, res.CGPA, 1e-9)

	require.Len(t, res.Results, 3)
	sem1 := res.Results["sem_1"]
	assert.Equal(t, models.StatusPass, sem1.Status)
	assert.InDelta(t, 8.5, sem1.SGPA, 1e-9)
	assert.Equal(t, 6.0, sem1.TotalCredits)
	assert.Len(t, sem1.Subjects, 2)

	sem2 := res.Results["sem_2"]
	assert.Equal(t, models.StatusFail, sem2.Status)
	assert.Equal(t, 0.0, sem2.SGPA)
	assert.Equal(t, 3.0, sem2.TotalCredits)

	assert.Equal(t, models.StatusFail, res.Results["sem_10"].Status)
}

func TestGetStudentResults_NotFoundWithoutSemesters(t *testing.T) {
	mem := memory.New()
	mem.PutDocument("students", "R1", store.Document{"fullName": "Profile Only"})
	svc := newService(t, mem)

	_, err := svc.GetStudentResults(context.Background(), "r1")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestGetStudentResults_PlaceholderProfile(t *testing.T) {
	mem := memory.New()
	mem.PutSubcollectionDocument("students", "R2", "semesters", "1", store.Document{
		"subjects": []interface{}{subjectDoc("CS101", 4, 7, "B")},
	})
	svc := newService(t, mem)

	res, err := svc.GetStudentResults(context.Background(), "R2")
	require.NoError(t, err)
	assert.Equal(t, PlaceholderName("R2"), res.FullName)
	assert.Equal(t, []string{}, res.CurrentBacklogs)
	assert.InDelta(t, 7.0, res.CGPA, 1e-9)
}

func TestGetStudentResults_UsesConfiguredPolicyAndPrefix(t *testing.T) {
	repo := repositories.NewResultRepository(seededStore(), "students", "semesters")
	svc := NewResultService(repo, grading.NewAggregator(grading.ExcludeFailedSemesters), "semester-", zerolog.Nop())

	res, err := svc.GetStudentResults(context.Background(), "22011P0533")
	require.NoError(t, err)
	// Only semester 1 has a non-zero SGPA: (24 + 27) / 6
	assert.InDelta(t, 8.5, res.CGPA, 1e-9)
	assert.Contains(t, res.Results, "semester-1")
}

func TestGetSingleSemester(t *testing.T) {
	svc := newService(t, seededStore())

	res, err := svc.GetSingleSemester(context.Background(), "22011p0533", "1")
	require.NoError(t, err)
	assert.Equal(t, "22011P0533", res.RollNo)
	assert.Equal(t, "1", res.Semester)
	assert.InDelta(t, 8.5, res.Data.SGPA, 1e-9)
	assert.Equal(t, models.StatusPass, res.Data.Status)
}

func TestGetSingleSemester_NoProfileCheck(t *testing.T) {
	mem := memory.New()
	mem.PutSubcollectionDocument("students", "ORPHAN", "semesters", "3", store.Document{
		"subjects": []interface{}{subjectDoc("EE301", 3, 6, "C")},
	})
	svc := newService(t, mem)

	res, err := svc.GetSingleSemester(context.Background(), "orphan", "3")
	require.NoError(t, err)
	assert.InDelta(t, 6.0, res.Data.SGPA, 1e-9)

	_, err = svc.GetSingleSemester(context.Background(), "orphan", "4")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrSemesterNotFound)
	assert.Equal(t, "Semester 4 results not found for ORPHAN", err.Error())
}

type stubReader struct {
	getStudent    func(ctx context.Context, rollNo string) (*models.Student, bool, error)
	listSemesters func(ctx context.Context, rollNo string) ([]models.SemesterRecord, error)
	getSemester   func(ctx context.Context, rollNo, semID string) (*models.SemesterRecord, bool, error)
}

func (s stubReader) GetStudent(ctx context.Context, rollNo string) (*models.Student, bool, error) {
	return s.getStudent(ctx, rollNo)
}

func (s stubReader) ListSemesters(ctx context.Context, rollNo string) ([]models.SemesterRecord, error) {
	return s.listSemesters(ctx, rollNo)
}

func (s stubReader) GetSemester(ctx context.Context, rollNo, semID string) (*models.SemesterRecord, bool, error) {
	return s.getSemester(ctx, rollNo, semID)
}

func TestGetStudentResults_FetchesConcurrently(t *testing.T) {
	profileStarted := make(chan struct{})
	semestersStarted := make(chan struct{})

	reader := stubReader{
		getStudent: func(ctx context.Context, rollNo string) (*models.Student, bool, error) {
			close(profileStarted)
			select {
			case <-semestersStarted:
			case <-time.After(2 * time.Second):
				return nil, false, errors.New("semester fetch never started")
			}
			return &models.Student{RollNo: rollNo, FullName: "Both"}, true, nil
		},
		listSemesters: func(ctx context.Context, rollNo string) ([]models.SemesterRecord, error) {
			close(semestersStarted)
			select {
			case <-profileStarted:
			case <-time.After(2 * time.Second):
				return nil, errors.New("profile fetch never started")
			}
			return []models.SemesterRecord{{ID: "1"}}, nil
		},
	}

	svc := NewResultService(reader, grading.NewAggregator(grading.ExcludeFailedSubjects), "sem_", zerolog.Nop())
	res, err := svc.GetStudentResults(context.Background(), "R1")
	require.NoError(t, err)
	assert.Equal(t, "Both", res.FullName)
}

func TestGetStudentResults_FetchFailureAborts(t *testing.T) {
	upstream := apperrors.NewUpstreamError("failed to fetch semester records", errors.New("unavailable"))
	reader := stubReader{
		getStudent: func(ctx context.Context, rollNo string) (*models.Student, bool, error) {
			return &models.Student{RollNo: rollNo}, true, nil
		},
		listSemesters: func(ctx context.Context, rollNo string) ([]models.SemesterRecord, error) {
			return nil, upstream
		},
	}

	svc := NewResultService(reader, grading.NewAggregator(grading.ExcludeFailedSubjects), "sem_", zerolog.Nop())
	res, err := svc.GetStudentResults(context.Background(), "R1")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, apperrors.ErrUpstreamFailure)
}

func TestGetSingleSemester_FetchFailure(t *testing.T) {
	reader := stubReader{
		getSemester: func(ctx context.Context, rollNo, semID string) (*models.SemesterRecord, bool, error) {
			return nil, false, apperrors.NewUpstreamError("failed to fetch semester record", errors.New("unavailable"))
		},
	}

	svc := NewResultService(reader, grading.NewAggregator(grading.ExcludeFailedSubjects), "sem_", zerolog.Nop())
	_, err := svc.GetSingleSemester(context.Background(), "R1", "1")
	assert.ErrorIs(t, err, apperrors.ErrUpstreamFailure)
	assert.False(t, errors.Is(err, apperrors.ErrResourceNotFound))
}

func TestSortSemesters(t *testing.T) {
	semesters := []models.SemesterRecord{{ID: "10"}, {ID: "summer"}, {ID: "2"}, {ID: "1"}, {ID: "bridge"}}
	SortSemesters(semesters)

	ids := make([]string, len(semesters))
	for i, s := range semesters {
		ids[i] = s.ID
	}
	assert.Equal(t, []string{"1", "2", "10", "bridge", "summer"}, ids)
}
