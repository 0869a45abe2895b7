package assignment

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// TestSummaryNote checks the single history line naming a batch's resources.
func TestSummaryNote(t *testing.T) {
	assigned := []AssignedResource{
		{ID: uuid.New(), Name: "Road Crew A", Type: "personnel"},
		{ID: uuid.New(), Name: "Excavator 3", Type: "equipment"},
	}

	assert.Equal(t, "Resources assigned: Road Crew A, Excavator 3", summaryNote(assigned))
}

func TestSummaryNoteSingleResource(t *testing.T) {
	assigned := []AssignedResource{{ID: uuid.New(), Name: "Water Truck"}}
	assert.Equal(t, "Resources assigned: Water Truck", summaryNote(assigned))
}

// TestRemovalNote checks the unassign history line.
func TestRemovalNote(t *testing.T) {
	assert.Equal(t, "Resource removed: Road Crew A", removalNote("Road Crew A"))
}

// TestCanonicalIDs checks repeated ids collapse and the result is ordered.
func TestCanonicalIDs(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	out := canonicalIDs([]uuid.UUID{a, b, a, c, b})
	assert.Len(t, out, 3)
	assert.ElementsMatch(t, []uuid.UUID{a, b, c}, out)
}

// TestCanonicalIDsLockOrder checks two batches naming the same resources in
// opposite order lock them in the same order.
func TestCanonicalIDsLockOrder(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	forward := canonicalIDs([]uuid.UUID{a, b, c})
	reversed := canonicalIDs([]uuid.UUID{c, b, a})

	assert.Equal(t, forward, reversed)
	for i := 1; i < len(forward); i++ {
		assert.Negative(t, bytes.Compare(forward[i-1][:], forward[i][:]))
	}
}

func TestCanonicalIDsEmpty(t *testing.T) {
	assert.Empty(t, canonicalIDs(nil))
}
