package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clgres/resultapi/internal/app/models/dto"
	"github.com/clgres/resultapi/internal/app/services"
	"github.com/clgres/resultapi/internal/middleware"
)

// ResultController handles result lookup endpoints
type ResultController struct {
	resultService services.ResultService
}

// NewResultController creates a new ResultController
func NewResultController(resultService services.ResultService) *ResultController {
	return &ResultController{
		resultService: resultService,
	}
}

func bindResultsURI(ctx *gin.Context) (dto.ResultsURI, bool) {
	var uri dto.ResultsURI
	if err := ctx.ShouldBindUri(&uri); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, middleware.FormatValidationError(err)))
		return uri, false
	}
	return uri, true
}

// GetStudentResults returns every semester of a student with SGPA, CGPA and backlogs
// @Summary Get all results of a student
// @Description Fetches the profile and all semester records, computing SGPA per semester, CGPA and the backlog list
// @Tags results
// @Produce json
// @Param rollNo path string true "Roll number (case-insensitive)"
// @Success 200 {object} dto.StudentResultsResponse "Results retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid roll number"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Document store failure"
// @Router /results/{rollNo} [get]
func (c *ResultController) GetStudentResults(ctx *gin.Context) {
	uri, ok := bindResultsURI(ctx)
	if !ok {
		return
	}

	results, err := c.resultService.GetStudentResults(ctx.Request.Context(), uri.RollNo)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, results)
}

// GetSemesterResult returns a single semester with its SGPA
// @Summary Get one semester of a student
// @Description Fetches a single semester record and computes its SGPA; the student profile is not checked
// @Tags results
// @Produce json
// @Param rollNo path string true "Roll number (case-insensitive)"
// @Param sem path string true "Semester id"
// @Success 200 {object} dto.SemesterResponse "Semester retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid roll number or semester"
// @Failure 404 {object} dto.ErrorResponse "Semester not found"
// @Failure 500 {object} dto.ErrorResponse "Document store failure"
// @Router /results/{rollNo}/{sem} [get]
func (c *ResultController) GetSemesterResult(ctx *gin.Context) {
	uri, ok := bindResultsURI(ctx)
	if !ok {
		return
	}

	semester, err := c.resultService.GetSingleSemester(ctx.Request.Context(), uri.RollNo, uri.Sem)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, semester)
}
