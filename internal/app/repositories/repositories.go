package repositories

import (
	"github.com/clgres/resultapi/internal/store"
)

// Repositories holds all the repository instances
type Repositories struct {
	ResultRepository *ResultRepository
}

// NewRepositories initializes all repositories over one document store
func NewRepositories(st store.DocumentStore, studentsCollection, semestersCollection string) *Repositories {
	return &Repositories{
		ResultRepository: NewResultRepository(st, studentsCollection, semestersCollection),
	}
}
