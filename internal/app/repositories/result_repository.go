package repositories

import (
	"context"
	"strings"

	"github.com/clgres/resultapi/internal/app/models"
	"github.com/clgres/resultapi/internal/pkg/apperrors"
	"github.com/clgres/resultapi/internal/pkg/helpers"
	"github.com/clgres/resultapi/internal/store"
)

// Document field names. The first name of each list is the current one,
// the rest are spellings found in older documents.
var (
	subjectsFields   = []string{"subjects", "subject"}
	benchmarkFields  = []string{"benchmarkCredits", "benchmark_credits", "topperCredits"}
	gradePointFields = []string{"gp", "gradePoint", "grade_point"}
	backlogFields    = []string{"current_backlogs", "currentBacklogs"}
)

// ResultRepository reads student profiles and semester records from the document store
type ResultRepository struct {
	store     store.DocumentStore
	students  string
	semesters string
}

// NewResultRepository creates a repository over the students collection and its semesters subcollection
func NewResultRepository(st store.DocumentStore, studentsCollection, semestersCollection string) *ResultRepository {
	return &ResultRepository{
		store:     st,
		students:  studentsCollection,
		semesters: semestersCollection,
	}
}

// GetStudent returns the profile of rollNo; false when no profile document exists
func (r *ResultRepository) GetStudent(ctx context.Context, rollNo string) (*models.Student, bool, error) {
	doc, ok, err := r.store.GetDocument(ctx, r.students, rollNo)
	if err != nil {
		return nil, false, apperrors.NewUpstreamError("failed to fetch student profile", err)
	}
	if !ok {
		return nil, false, nil
	}
	return DecodeStudent(rollNo, doc), true, nil
}

// ListSemesters returns every semester record of rollNo in store order
func (r *ResultRepository) ListSemesters(ctx context.Context, rollNo string) ([]models.SemesterRecord, error) {
	snapshots, err := r.store.GetSubcollectionDocuments(ctx, r.students, rollNo, r.semesters)
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to fetch semester records", err)
	}

	records := make([]models.SemesterRecord, 0, len(snapshots))
	for _, snap := range snapshots {
		records = append(records, DecodeSemester(snap.ID, snap.Data))
	}
	return records, nil
}

// GetSemester returns one semester record; false when it does not exist
func (r *ResultRepository) GetSemester(ctx context.Context, rollNo, semID string) (*models.SemesterRecord, bool, error) {
	doc, ok, err := r.store.GetSubcollectionDocument(ctx, r.students, rollNo, r.semesters, semID)
	if err != nil {
		return nil, false, apperrors.NewUpstreamError("failed to fetch semester record", err)
	}
	if !ok {
		return nil, false, nil
	}
	record := DecodeSemester(semID, doc)
	return &record, true, nil
}

// Ping reports store connectivity when the backend supports it
func (r *ResultRepository) Ping(ctx context.Context) error {
	if p, ok := r.store.(store.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// DecodeStudent maps a profile document onto models.Student. Blank legacy backlog entries are dropped.
func DecodeStudent(rollNo string, doc store.Document) *models.Student {
	student := &models.Student{
		RollNo:          rollNo,
		FullName:        helpers.ToString(doc["fullName"]),
		CurrentBacklogs: []string{},
	}

	for _, item := range toList(firstOf(doc, backlogFields)) {
		if code := strings.TrimSpace(helpers.ToString(item)); code != "" {
			student.CurrentBacklogs = append(student.CurrentBacklogs, code)
		}
	}
	return student
}

// DecodeSemester maps a semester document onto models.SemesterRecord.
// Numeric fields that are missing or unparsable decode as 0.
func DecodeSemester(id string, doc store.Document) models.SemesterRecord {
	record := models.SemesterRecord{
		ID:               id,
		Subjects:         []models.Subject{},
		BenchmarkCredits: helpers.ToFloat64(firstOf(doc, benchmarkFields)),
	}

	for _, item := range toList(firstOf(doc, subjectsFields)) {
		fields, ok := toMap(item)
		if !ok {
			continue
		}
		record.Subjects = append(record.Subjects, models.Subject{
			Name:       helpers.ToString(fields["name"]),
			Code:       helpers.ToString(fields["code"]),
			Credit:     helpers.ToFloat64(fields["credit"]),
			Grade:      strings.TrimSpace(helpers.ToString(fields["grade"])),
			GradePoint: helpers.ToFloat64(firstOf(fields, gradePointFields)),
		})
	}
	return record
}

func firstOf(doc map[string]interface{}, keys []string) interface{} {
	for _, k := range keys {
		if v, ok := doc[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func toList(v interface{}) []interface{} {
	switch list := v.(type) {
	case []interface{}:
		return list
	case []string:
		out := make([]interface{}, len(list))
		for i, s := range list {
			out[i] = s
		}
		return out
	case []map[string]interface{}:
		out := make([]interface{}, len(list))
		for i, m := range list {
			out[i] = m
		}
		return out
	case []store.Document:
		out := make([]interface{}, len(list))
		for i, m := range list {
			out[i] = map[string]interface{}(m)
		}
		return out
	default:
		return nil
	}
}

func toMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case store.Document:
		return m, true
	default:
		return nil, false
	}
}
