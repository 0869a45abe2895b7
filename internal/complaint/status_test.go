package complaint

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestTransitionTable walks every defined edge of the status state machine.
func TestTransitionTable(t *testing.T) {
	cases := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"open to in progress", StatusOpen, StatusInProgress, true},
		{"open to resolved directly", StatusOpen, StatusResolved, true},
		{"open to cancelled", StatusOpen, StatusCancelled, true},
		{"in progress to resolved", StatusInProgress, StatusResolved, true},
		{"in progress to cancelled", StatusInProgress, StatusCancelled, true},
		{"resolved reopened", StatusResolved, StatusOpen, true},
		{"resolved to in progress skips open", StatusResolved, StatusInProgress, false},
		{"resolved to cancelled", StatusResolved, StatusCancelled, false},
		{"cancelled is terminal", StatusCancelled, StatusOpen, false},
		{"cancelled to in progress", StatusCancelled, StatusInProgress, false},
		{"in progress back to open", StatusInProgress, StatusOpen, false},
		{"self transition rejected", StatusOpen, StatusOpen, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, CanTransition(tc.from, tc.to))
		})
	}
}

// TestRequiresNote checks that only closing an in-progress complaint demands a note.
func TestRequiresNote(t *testing.T) {
	assert.True(t, RequiresNote(StatusInProgress, StatusResolved))
	assert.False(t, RequiresNote(StatusOpen, StatusResolved))
	assert.False(t, RequiresNote(StatusOpen, StatusInProgress))
	assert.False(t, RequiresNote(StatusResolved, StatusOpen))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusOpen))
	assert.True(t, ValidStatus(StatusCancelled))
	assert.False(t, ValidStatus("open"))
	assert.False(t, ValidStatus("Closed"))
	assert.False(t, ValidStatus(""))
}

func TestValidPriority(t *testing.T) {
	assert.True(t, ValidPriority(PriorityLow))
	assert.True(t, ValidPriority(PriorityMedium))
	assert.True(t, ValidPriority(PriorityHigh))
	assert.False(t, ValidPriority("Urgent"))
	assert.False(t, ValidPriority(""))
}

// TestNormalizeStatusFilter checks url-style filter values map onto stored statuses.
func TestNormalizeStatusFilter(t *testing.T) {
	assert.Equal(t, "In Progress", NormalizeStatusFilter("in-progress"))
	assert.Equal(t, "Open", NormalizeStatusFilter("open"))
	assert.Equal(t, "Resolved", NormalizeStatusFilter("RESOLVED"))
	assert.Equal(t, "In Progress", NormalizeStatusFilter("In Progress"))
}

// TestNewComplaintID checks the public id format.
func TestNewComplaintID(t *testing.T) {
	pattern := regexp.MustCompile(`^CC-[0-9A-F]{8}$`)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewComplaintID()
		assert.Regexp(t, pattern, id)
		assert.False(t, seen[id], "ids must not repeat")
		seen[id] = true
	}
}
