// Package render prints result lookups as terminal tables.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/clgres/resultapi/internal/app/models"
	"github.com/clgres/resultapi/internal/app/models/dto"
	"github.com/clgres/resultapi/internal/app/services"
)

var subjectHeader = []string{"Code", "Subject", "Credit", "Grade", "GP"}

// StudentResults writes every semester of res followed by the CGPA and backlog summary.
// keyPrefix is the prefix the service put in front of semester ids.
func StudentResults(w io.Writer, res *dto.StudentResultsResponse, keyPrefix string) {
	heading := color.New(color.FgCyan, color.Bold)
	heading.Fprintf(w, "%s  %s\n", res.RollNo, res.FullName)

	keys := make([]string, 0, len(res.Results))
	for key := range res.Results {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return services.SemesterIDLess(strings.TrimPrefix(keys[i], keyPrefix), strings.TrimPrefix(keys[j], keyPrefix))
	})

	for _, key := range keys {
		color.New(color.FgYellow).Fprintf(w, "\nSemester %s\n", strings.TrimPrefix(key, keyPrefix))
		semesterTable(w, res.Results[key])
	}

	fmt.Fprintf(w, "\nCGPA: %.2f\n", res.CGPA)
	Backlogs(w, res.Backlogs)
}

// Semester writes a single semester lookup
func Semester(w io.Writer, res *dto.SemesterResponse) {
	color.New(color.FgYellow).Fprintf(w, "%s  Semester %s\n", res.RollNo, res.Semester)
	semesterTable(w, res.Data)
}

// Backlogs prints the backlog list in red, or a green all-clear line
func Backlogs(w io.Writer, backlogs []string) {
	if len(backlogs) == 0 {
		color.New(color.FgGreen).Fprintln(w, "No backlogs")
		return
	}
	color.New(color.FgRed).Fprintf(w, "Backlogs (%d): %s\n", len(backlogs), strings.Join(backlogs, ", "))
}

func semesterTable(w io.Writer, result models.SemesterResult) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(subjectHeader)

	for _, s := range result.Subjects {
		table.Append([]string{
			s.Code,
			s.Name,
			formatNumber(s.Credit),
			s.Grade,
			formatNumber(s.GradePoint),
		})
	}
	table.Render()

	status := color.New(color.FgGreen)
	if result.Status == models.StatusFail {
		status = color.New(color.FgRed)
	}
	fmt.Fprintf(w, "SGPA: %.2f  Credits: %s  ", result.SGPA, formatNumber(result.TotalCredits))
	status.Fprintln(w, result.Status)
}

// formatNumber drops the fraction for whole numbers: 3 -> "3", 1.5 -> "1.5"
func formatNumber(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
