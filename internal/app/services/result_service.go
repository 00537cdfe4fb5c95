package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/clgres/resultapi/internal/app/grading"
	"github.com/clgres/resultapi/internal/app/models"
	"github.com/clgres/resultapi/internal/app/models/dto"
	"github.com/clgres/resultapi/internal/pkg/apperrors"
	"github.com/clgres/resultapi/internal/pkg/validation"
)

// ResultReader is the read side of the result repository
type ResultReader interface {
	GetStudent(ctx context.Context, rollNo string) (*models.Student, bool, error)
	ListSemesters(ctx context.Context, rollNo string) ([]models.SemesterRecord, error)
	GetSemester(ctx context.Context, rollNo, semID string) (*models.SemesterRecord, bool, error)
}

// ResultService defines the interface for result lookups
type ResultService interface {
	GetStudentResults(ctx context.Context, rollNo string) (*dto.StudentResultsResponse, error)
	GetSingleSemester(ctx context.Context, rollNo, semID string) (*dto.SemesterResponse, error)
}

// resultServiceImpl implements the ResultService interface
type resultServiceImpl struct {
	repo       ResultReader
	aggregator *grading.Aggregator
	keyPrefix  string
	logger     zerolog.Logger
}

// NewResultService creates a new result service instance.
// keyPrefix is prepended to semester ids in the aggregate results map ("sem_" gives "sem_1").
func NewResultService(repo ResultReader, aggregator *grading.Aggregator, keyPrefix string, logger zerolog.Logger) ResultService {
	return &resultServiceImpl{
		repo:       repo,
		aggregator: aggregator,
		keyPrefix:  keyPrefix,
		logger:     logger,
	}
}

// PlaceholderName is the display name used when a student has records but no profile document
func PlaceholderName(rollNo string) string {
	return "Student " + rollNo
}

// GetStudentResults fetches the profile and all semesters of rollNo concurrently and derives SGPA, CGPA and backlogs
func (s *resultServiceImpl) GetStudentResults(ctx context.Context, rollNo string) (*dto.StudentResultsResponse, error) {
	rollNo = validation.CanonicalRollNo(rollNo)

	var (
		student    *models.Student
		hasProfile bool
		semesters  []models.SemesterRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		student, hasProfile, err = s.repo.GetStudent(gctx, rollNo)
		return err
	})
	g.Go(func() error {
		var err error
		semesters, err = s.repo.ListSemesters(gctx, rollNo)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Existence is decided by the semester records alone
	if len(semesters) == 0 {
		return nil, apperrors.ErrStudentNotFound
	}

	if !hasProfile {
		s.logger.Debug().Str("rollNo", rollNo).Msg("Profile document missing, using placeholder")
		student = &models.Student{
			RollNo:          rollNo,
			FullName:        PlaceholderName(rollNo),
			CurrentBacklogs: []string{},
			Synthetic:       true,
		}
	}

	SortSemesters(semesters)

	results := make(map[string]models.SemesterResult, len(semesters))
	for _, sem := range semesters {
		results[s.keyPrefix+sem.ID] = grading.EvaluateSemester(sem)
	}

	return &dto.StudentResultsResponse{
		RollNo:          rollNo,
		FullName:        student.FullName,
		CGPA:            s.aggregator.ComputeCGPA(semesters),
		Backlogs:        grading.ExtractBacklogs(semesters),
		CurrentBacklogs: student.CurrentBacklogs,
		Results:         results,
	}, nil
}

// GetSingleSemester fetches one semester record of rollNo; the profile is never consulted
func (s *resultServiceImpl) GetSingleSemester(ctx context.Context, rollNo, semID string) (*dto.SemesterResponse, error) {
	rollNo = validation.CanonicalRollNo(rollNo)

	record, ok, err := s.repo.GetSemester(ctx, rollNo, semID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving semester %s: %w", semID, err)
	}
	if !ok {
		return nil, apperrors.NewSemesterNotFoundError(semID, rollNo)
	}

	return &dto.SemesterResponse{
		RollNo:   rollNo,
		Semester: semID,
		Data:     grading.EvaluateSemester(*record),
	}, nil
}

// SortSemesters orders records by id: numeric ids ascending by value, then other ids lexically
func SortSemesters(semesters []models.SemesterRecord) {
	sort.SliceStable(semesters, func(i, j int) bool {
		return SemesterIDLess(semesters[i].ID, semesters[j].ID)
	})
}

// SemesterIDLess orders numeric ids by value ahead of other ids, which compare lexically
func SemesterIDLess(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}
