package dto

import "github.com/clgres/resultapi/internal/app/models"

// StudentResultsResponse is the aggregate result payload of GET /results/{rollNo}
type StudentResultsResponse struct {
	RollNo          string                           `json:"rollNo" example:"22011P0533"`
	FullName        string                           `json:"fullName" example:"Asha Rao"`
	CGPA            float64                          `json:"cgpa" example:"8.12"`
	Backlogs        []string                         `json:"backlogs"`
	CurrentBacklogs []string                         `json:"currentBacklogs"`
	Results         map[string]models.SemesterResult `json:"results"`
}

// SemesterResponse is the payload of GET /results/{rollNo}/{sem}
type SemesterResponse struct {
	RollNo   string                `json:"rollNo" example:"22011P0533"`
	Semester string                `json:"semester" example:"1"`
	Data     models.SemesterResult `json:"data"`
}

// ResultsURI binds the path parameters of the result routes
type ResultsURI struct {
	RollNo string `uri:"rollNo" binding:"required,rollno"`
	Sem    string `uri:"sem" binding:"omitempty,semid"`
}
