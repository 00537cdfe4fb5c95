package seed

import (
	"github.com/rs/zerolog"

	"github.com/clgres/resultapi/internal/store"
	"github.com/clgres/resultapi/internal/store/memory"
)

// DemoRollNo is the student with a complete profile in the demo data
const DemoRollNo = "22011P0533"

// DemoNoProfileRollNo has semester records but no profile document
const DemoNoProfileRollNo = "22011P0540"

func subject(name, code string, credit, gp float64, grade string) map[string]interface{} {
	return map[string]interface{}{
		"name":   name,
		"code":   code,
		"credit": credit,
		"gp":     gp,
		"grade":  grade,
	}
}

// CreateDemoData fills an in-memory store with a small set of students and semesters.
// It returns the number of semester documents written.
func CreateDemoData(mem *memory.Store, studentsCollection, semestersCollection string, lgr zerolog.Logger) int {
	lgr.Info().Msg("Creating demo result data...")
	written := 0

	putSemester := func(rollNo, semID string, doc store.Document) {
		mem.PutSubcollectionDocument(studentsCollection, rollNo, semestersCollection, semID, doc)
		written++
	}

	// --- Full profile with a failed subject in semester 2 --- //
	mem.PutDocument(studentsCollection, DemoRollNo, store.Document{
		"fullName":         "Asha Rao",
		"current_backlogs": []interface{}{""},
	})
	putSemester(DemoRollNo, "1", store.Document{
		"subjects": []interface{}{
			subject("Engineering Mathematics I", "MA101", 4, 9, "A+"),
			subject("Engineering Physics", "PH101", 3, 8, "A"),
			subject("Programming in C", "CS101", 3, 10, "O"),
			subject("Physics Lab", "PH151", 1.5, 9, "A+"),
		},
		"benchmarkCredits": 11.5,
	})
	putSemester(DemoRollNo, "2", store.Document{
		"subjects": []interface{}{
			subject("Engineering Mathematics II", "MA201", 4, 0, "F"),
			subject("Data Structures", "CS201", 3, 8, "A"),
			subject("Basic Electrical Engineering", "EE201", 3, 7, "B+"),
		},
	})
	putSemester(DemoRollNo, "3", store.Document{
		// Legacy field names
		"subject": []interface{}{
			map[string]interface{}{"name": "Discrete Mathematics", "code": "MA301", "credit": "3", "gradePoint": "8", "grade": "A"},
			map[string]interface{}{"name": "Computer Organisation", "code": "CS302", "credit": 3, "grade_point": 0, "grade": "AB"},
		},
		"topperCredits": 6,
	})

	// --- Records without a profile document --- //
	putSemester(DemoNoProfileRollNo, "1", store.Document{
		"subjects": []interface{}{
			subject("Engineering Mathematics I", "MA101", 4, 7, "B+"),
			subject("Programming in C", "CS101", 3, 8, "A"),
		},
	})

	lgr.Info().Int("semesters", written).Msg("Demo result data created.")
	return written
}
