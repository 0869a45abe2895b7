//go:build integration

package assignment

import (
	"io"
	"os"
	"testing"

	"citycare/internal/auth"
	"citycare/internal/common"
	"citycare/internal/complaint"
	"citycare/internal/resource"
	"citycare/pkg/database"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// These tests need a real PostgreSQL instance because the coordinator relies
// on advisory locks, row locks and the history sequence. Run them with
//
//	TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/assignment/
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	require.NoError(t, db.Exec(`
		TRUNCATE complaint_status_history, complaint_images,
			resource_assignments, complaints, resources, users
		RESTART IDENTITY CASCADE
	`).Error)

	return db
}

func newCoordinator(db *gorm.DB) *Service {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewService(db, complaint.NewRecorder(db), log)
}

func seedReporter(t *testing.T, db *gorm.DB) *auth.User {
	t.Helper()
	u := &auth.User{
		FirstName:    "Test",
		LastName:     "Citizen",
		Email:        uuid.New().String() + "@example.com",
		PasswordHash: "x",
		IsActive:     true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedComplaint(t *testing.T, db *gorm.DB, reporter *auth.User) *complaint.Complaint {
	t.Helper()
	c := &complaint.Complaint{
		Title:       "Pothole on Main Street",
		Description: "Large pothole near the intersection",
		ServiceType: "roads",
		Status:      complaint.StatusOpen,
		Priority:    complaint.PriorityMedium,
		ReporterID:  reporter.ID,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func seedResource(t *testing.T, db *gorm.DB, name, availability string) *resource.Resource {
	t.Helper()
	r := &resource.Resource{
		Name:               name,
		Type:               "equipment",
		ServiceCategory:    "roads",
		AvailabilityStatus: availability,
		LifecycleState:     resource.LifecycleActive,
		Capacity:           1,
	}
	require.NoError(t, db.Create(r).Error)
	return r
}

func history(t *testing.T, db *gorm.DB, complaintID string) []complaint.ComplaintStatusHistory {
	t.Helper()
	entries, err := complaint.NewRecorder(db).ListAsc(complaintID)
	require.NoError(t, err)
	return entries
}

// TestAssignBatchWritesOneHistoryRow checks a batch with several assigned
// resources writes exactly one summary entry and promotes an Open complaint.
func TestAssignBatchWritesOneHistoryRow(t *testing.T) {
	db := openTestDB(t)
	svc := newCoordinator(db)

	comp := seedComplaint(t, db, seedReporter(t, db))
	crew := seedResource(t, db, "Road Crew A", resource.AvailabilityAvailable)
	truck := seedResource(t, db, "Asphalt Truck", resource.AvailabilityAvailable)

	resp, err := svc.Assign(comp.ID, &AssignRequest{
		ResourceIDs: []uuid.UUID{crew.ID, truck.ID},
	}, "Dispatcher")
	require.NoError(t, err)
	assert.Len(t, resp.Assigned, 2)
	assert.Empty(t, resp.Skipped)

	var reloaded complaint.Complaint
	require.NoError(t, db.First(&reloaded, "id = ?", comp.ID).Error)
	assert.Equal(t, complaint.StatusInProgress, reloaded.Status)

	entries := history(t, db, comp.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, complaint.StatusInProgress, entries[0].Status)
	assert.Contains(t, entries[0].Note, "Resources assigned:")
	assert.Contains(t, entries[0].Note, "Road Crew A")
	assert.Contains(t, entries[0].Note, "Asphalt Truck")
	assert.Equal(t, "Dispatcher", entries[0].UpdatedBy)
}

// TestAssignAllSkippedWritesNoHistory checks a batch where every resource is
// skipped leaves the complaint and its history untouched.
func TestAssignAllSkippedWritesNoHistory(t *testing.T) {
	db := openTestDB(t)
	svc := newCoordinator(db)

	comp := seedComplaint(t, db, seedReporter(t, db))
	down := seedResource(t, db, "Crane 2", resource.AvailabilityMaintenance)
	missing := uuid.New()

	resp, err := svc.Assign(comp.ID, &AssignRequest{
		ResourceIDs: []uuid.UUID{down.ID, missing},
	}, "Dispatcher")
	require.NoError(t, err)
	assert.Empty(t, resp.Assigned)
	require.Len(t, resp.Skipped, 2)

	reasons := map[uuid.UUID]string{}
	for _, s := range resp.Skipped {
		reasons[s.ID] = s.Reason
	}
	assert.Equal(t, SkipNotAssignable, reasons[down.ID])
	assert.Equal(t, SkipNotFound, reasons[missing])

	var reloaded complaint.Complaint
	require.NoError(t, db.First(&reloaded, "id = ?", comp.ID).Error)
	assert.Equal(t, complaint.StatusOpen, reloaded.Status)
	assert.Empty(t, history(t, db, comp.ID))
}

// TestUnassignTwiceReturnsNotFound checks the second removal of the same
// resource fails with the typed not-found error.
func TestUnassignTwiceReturnsNotFound(t *testing.T) {
	db := openTestDB(t)
	svc := newCoordinator(db)

	comp := seedComplaint(t, db, seedReporter(t, db))
	crew := seedResource(t, db, "Road Crew A", resource.AvailabilityAvailable)

	_, err := svc.Assign(comp.ID, &AssignRequest{ResourceIDs: []uuid.UUID{crew.ID}}, "Dispatcher")
	require.NoError(t, err)

	require.NoError(t, svc.Unassign(comp.ID, crew.ID, "Dispatcher"))

	err = svc.Unassign(comp.ID, crew.ID, "Dispatcher")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

// TestUnassignThenReassign checks cancelling an assignment frees the resource
// for the same complaint again, with availability tracking each flip.
func TestUnassignThenReassign(t *testing.T) {
	db := openTestDB(t)
	svc := newCoordinator(db)

	comp := seedComplaint(t, db, seedReporter(t, db))
	crew := seedResource(t, db, "Road Crew A", resource.AvailabilityAvailable)

	availability := func() string {
		var r resource.Resource
		require.NoError(t, db.First(&r, "id = ?", crew.ID).Error)
		return r.AvailabilityStatus
	}

	_, err := svc.Assign(comp.ID, &AssignRequest{ResourceIDs: []uuid.UUID{crew.ID}}, "Dispatcher")
	require.NoError(t, err)
	assert.Equal(t, resource.AvailabilityBusy, availability())

	// A repeat while still assigned is the duplicate skip, not a new row.
	resp, err := svc.Assign(comp.ID, &AssignRequest{ResourceIDs: []uuid.UUID{crew.ID}}, "Dispatcher")
	require.NoError(t, err)
	require.Len(t, resp.Skipped, 1)
	assert.Equal(t, SkipAlreadyAssigned, resp.Skipped[0].Reason)

	require.NoError(t, svc.Unassign(comp.ID, crew.ID, "Dispatcher"))
	assert.Equal(t, resource.AvailabilityAvailable, availability())

	resp, err = svc.Assign(comp.ID, &AssignRequest{ResourceIDs: []uuid.UUID{crew.ID}}, "Dispatcher")
	require.NoError(t, err)
	require.Len(t, resp.Assigned, 1)
	assert.Equal(t, resource.AvailabilityBusy, availability())

	listed, err := svc.List(comp.ID)
	require.NoError(t, err)
	require.Len(t, listed.Assignments, 2)
	assert.Equal(t, resource.AssignmentStatusCancelled, listed.Assignments[0].Status)
	assert.Equal(t, resource.AssignmentStatusAssigned, listed.Assignments[1].Status)
}

// TestHistoryOrdering checks the audit trail replays assignment activity in
// insertion order.
func TestHistoryOrdering(t *testing.T) {
	db := openTestDB(t)
	svc := newCoordinator(db)

	comp := seedComplaint(t, db, seedReporter(t, db))
	crew := seedResource(t, db, "Road Crew A", resource.AvailabilityAvailable)
	truck := seedResource(t, db, "Asphalt Truck", resource.AvailabilityAvailable)

	_, err := svc.Assign(comp.ID, &AssignRequest{ResourceIDs: []uuid.UUID{crew.ID}}, "Dispatcher")
	require.NoError(t, err)
	_, err = svc.Assign(comp.ID, &AssignRequest{ResourceIDs: []uuid.UUID{truck.ID}}, "Dispatcher")
	require.NoError(t, err)
	require.NoError(t, svc.Unassign(comp.ID, crew.ID, "Dispatcher"))

	entries := history(t, db, comp.ID)
	require.Len(t, entries, 3)
	assert.Equal(t, "Resources assigned: Road Crew A", entries[0].Note)
	assert.Equal(t, "Resources assigned: Asphalt Truck", entries[1].Note)
	assert.Equal(t, "Resource removed: Road Crew A", entries[2].Note)
	for i := 1; i < len(entries); i++ {
		assert.Greater(t, entries[i].Seq, entries[i-1].Seq)
	}
}
