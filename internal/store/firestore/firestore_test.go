package firestore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against the Firestore emulator only; the client picks up FIRESTORE_EMULATOR_HOST itself.
func newEmulatorStore(t *testing.T) *Store {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	s, err := New(context.Background(), Config{ProjectID: "demo-results"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_Emulator(t *testing.T) {
	s := newEmulatorStore(t)
	ctx := context.Background()

	student := s.client.Collection("students").Doc("EMU001")
	_, err := student.Set(ctx, map[string]interface{}{"fullName": "Emulator Student"})
	require.NoError(t, err)
	_, err = student.Collection("semesters").Doc("1").Set(ctx, map[string]interface{}{
		"subjects": []interface{}{map[string]interface{}{"code": "CS101", "credit": 3, "gp": 8, "grade": "A"}},
	})
	require.NoError(t, err)

	require.NoError(t, s.Ping(ctx))

	doc, ok, err := s.GetDocument(ctx, "students", "EMU001")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Emulator Student", doc["fullName"])

	_, ok, err = s.GetDocument(ctx, "students", "MISSING")
	require.NoError(t, err)
	assert.False(t, ok)

	snaps, err := s.GetSubcollectionDocuments(ctx, "students", "EMU001", "semesters")
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, "1", snaps[0].ID)

	_, ok, err = s.GetSubcollectionDocument(ctx, "students", "EMU001", "semesters", "9")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_PingUnreachable(t *testing.T) {
	// Nothing listens on port 1; the client dials lazily so New succeeds
	t.Setenv("FIRESTORE_EMULATOR_HOST", "127.0.0.1:1")

	s, err := New(context.Background(), Config{ProjectID: "demo-results"})
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, "students", s.pingCollection)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	assert.ErrorContains(t, s.Ping(ctx), "firestore ping failed")
}
