package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentQuery(t *testing.T) {
	s := New(nil)

	sql, args, err := s.documentQuery("students/22011P0533", "semesters", "3")
	require.NoError(t, err)
	assert.Equal(t, "SELECT data FROM documents WHERE collection = $1 AND doc_id = $2 AND parent_path = $3 LIMIT 1", sql)
	assert.Equal(t, []interface{}{"semesters", "3", "students/22011P0533"}, args)
}

func TestSubcollectionQuery(t *testing.T) {
	s := New(nil)

	sql, args, err := s.subcollectionQuery(parentPath("students", "22011P0533"), "semesters")
	require.NoError(t, err)
	assert.Equal(t, "SELECT doc_id, data FROM documents WHERE collection = $1 AND parent_path = $2 ORDER BY created_at ASC, doc_id ASC", sql)
	assert.Equal(t, []interface{}{"semesters", "students/22011P0533"}, args)
}
