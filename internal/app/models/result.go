package models

// Grade values that mark a subject as not cleared
const (
	GradeFail   = "F"
	GradeAbsent = "AB"
)

// Semester outcome labels
const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
)

// Student is the profile document stored under the students collection
type Student struct {
	RollNo          string   `json:"rollNo"`          // Canonical uppercase roll number, the document id
	FullName        string   `json:"fullName"`        // Display name
	CurrentBacklogs []string `json:"currentBacklogs"` // Legacy hand-maintained backlog list
	Synthetic       bool     `json:"-"`               // Set when no profile document exists
}

// Subject is one graded course inside a semester record
type Subject struct {
	Name       string  `json:"name"`
	Code       string  `json:"code"`
	Credit     float64 `json:"credit"`
	Grade      string  `json:"grade"`
	GradePoint float64 `json:"gp"`
}

// SemesterRecord is one document of a student's semesters subcollection
type SemesterRecord struct {
	ID               string    `json:"id"`
	Subjects         []Subject `json:"subjects"`
	BenchmarkCredits float64   `json:"benchmarkCredits"` // Topper's credit total; 0 when absent
}

// SemesterResult is the derived view of a semester, never stored
type SemesterResult struct {
	Status       string    `json:"status" example:"PASS" enums:"PASS,FAIL"`
	SGPA         float64   `json:"sgpa" example:"8.5"`
	TotalCredits float64   `json:"totalCredits" example:"21"` // Credits of cleared subjects
	Subjects     []Subject `json:"subjects"`
}
