package service

import (
	"testing"

	"homevista/internal/config"
	"homevista/internal/domain"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStudioConfig() config.StudioConfig {
	return config.StudioConfig{DoorMinX: 45, DoorMaxX: 55, DoorMinY: 90, DoorMaxY: 100}
}

func TestStudioPlacementFlow(t *testing.T) {
	studio := NewStudioService(testStudioConfig())
	userID := uuid.New().String()
	furnitureID := uuid.New().String()

	// Dropping with nothing armed is rejected
	_, err := studio.PlaceAt(userID, 100, 100, 800, 600)
	assert.ErrorIs(t, err, ErrNothingArmed)

	studio.Arm(userID, furnitureID)

	// 200/800 and 150/600 normalize to 25% each
	placed, err := studio.PlaceAt(userID, 200, 150, 800, 600)
	require.NoError(t, err)
	assert.Equal(t, furnitureID, placed.FurnitureID)
	assert.InDelta(t, 25.0, placed.X, 1e-9)
	assert.InDelta(t, 25.0, placed.Y, 1e-9)
	assert.Equal(t, 1.0, placed.Scale)

	// A successful drop disarms
	state := studio.State(userID)
	assert.Empty(t, state.ArmedID)
	require.Len(t, state.Placed, 1)

	// The same drop again needs re-arming
	_, err = studio.PlaceAt(userID, 200, 150, 800, 600)
	assert.ErrorIs(t, err, ErrNothingArmed)
}

func TestStudioKeepOutRejection(t *testing.T) {
	studio := NewStudioService(testStudioConfig())
	userID := uuid.New().String()
	furnitureID := uuid.New().String()

	studio.Arm(userID, furnitureID)

	// 400/800 = 50%, 570/600 = 95%: inside the door swing path
	_, err := studio.PlaceAt(userID, 400, 570, 800, 600)
	assert.ErrorIs(t, err, ErrKeepOut)

	// A rejected drop keeps the item armed for a retry
	state := studio.State(userID)
	assert.Equal(t, furnitureID, state.ArmedID)
	assert.Empty(t, state.Placed)

	// Retrying outside the zone succeeds
	_, err = studio.PlaceAt(userID, 100, 100, 800, 600)
	require.NoError(t, err)
}

func TestStudioKeepOutBoundaryIsInclusive(t *testing.T) {
	studio := NewStudioService(testStudioConfig())
	userID := uuid.New().String()

	// Coordinates already in the percentage frame pass through unscaled
	studio.Arm(userID, uuid.New().String())
	_, err := studio.PlaceAt(userID, 45, 90, 0, 0)
	assert.ErrorIs(t, err, ErrKeepOut)

	_, err = studio.PlaceAt(userID, 44.999, 90, 0, 0)
	require.NoError(t, err)
}

func TestStudioRemoveIsIdempotent(t *testing.T) {
	studio := NewStudioService(testStudioConfig())
	userID := uuid.New().String()

	studio.Arm(userID, uuid.New().String())
	placed, err := studio.PlaceAt(userID, 10, 10, 0, 0)
	require.NoError(t, err)

	studio.Remove(userID, placed.ID)
	assert.Empty(t, studio.State(userID).Placed)

	// Removing again, or removing garbage, changes nothing
	studio.Remove(userID, placed.ID)
	studio.Remove(userID, uuid.New().String())
	assert.Empty(t, studio.State(userID).Placed)
}

func TestStudioRoomSwitchClearsPlacements(t *testing.T) {
	studio := NewStudioService(testStudioConfig())
	userID := uuid.New().String()

	studio.Arm(userID, uuid.New().String())
	_, err := studio.PlaceAt(userID, 10, 10, 0, 0)
	require.NoError(t, err)
	studio.Arm(userID, uuid.New().String())

	studio.SetRoomType(userID, domain.RoomBedroom)

	state := studio.State(userID)
	assert.Equal(t, domain.RoomBedroom, state.RoomType)
	assert.Empty(t, state.Placed)
	assert.Empty(t, state.ArmedID)
}

func TestStudioViewTransformClampsZoom(t *testing.T) {
	studio := NewStudioService(testStudioConfig())
	userID := uuid.New().String()

	rotation, zoom := studio.TransformView(userID, 90, 5.0)
	assert.Equal(t, 90.0, rotation)
	assert.Equal(t, ZoomMax, zoom)

	_, zoom = studio.TransformView(userID, 0, -10.0)
	assert.Equal(t, ZoomMin, zoom)

	rotation, zoom = studio.TransformView(userID, -45, 0.7)
	assert.Equal(t, 45.0, rotation)
	assert.InDelta(t, 1.2, zoom, 1e-9)
}

func TestStudioViewTransformLeavesPlacementsAlone(t *testing.T) {
	studio := NewStudioService(testStudioConfig())
	userID := uuid.New().String()

	studio.Arm(userID, uuid.New().String())
	placed, err := studio.PlaceAt(userID, 20, 30, 0, 0)
	require.NoError(t, err)

	studio.TransformView(userID, 180, 0.5)

	state := studio.State(userID)
	require.Len(t, state.Placed, 1)
	assert.Equal(t, placed.X, state.Placed[0].X)
	assert.Equal(t, placed.Y, state.Placed[0].Y)
}

func TestStudioUploadGate(t *testing.T) {
	studio := NewStudioService(testStudioConfig())
	userID := uuid.New().String()

	assert.Equal(t, UploadIdle, studio.State(userID).UploadState)

	// Events out of order are rejected
	assert.ErrorIs(t, studio.UploadDone(userID, true), ErrInvalidTransition)
	assert.ErrorIs(t, studio.AnalysisDone(userID, true), ErrInvalidTransition)

	require.NoError(t, studio.BeginUpload(userID))
	assert.Equal(t, UploadUploading, studio.State(userID).UploadState)

	// A second upload cannot start mid-flight
	assert.ErrorIs(t, studio.BeginUpload(userID), ErrInvalidTransition)

	require.NoError(t, studio.UploadDone(userID, true))
	assert.Equal(t, UploadProcessing, studio.State(userID).UploadState)

	require.NoError(t, studio.AnalysisDone(userID, true))
	state := studio.State(userID)
	assert.Equal(t, UploadComplete, state.UploadState)
	assert.Empty(t, state.FailureReason)
}

func TestStudioUploadGateFailures(t *testing.T) {
	studio := NewStudioService(testStudioConfig())

	rejected := uuid.New().String()
	require.NoError(t, studio.BeginUpload(rejected))
	require.NoError(t, studio.UploadDone(rejected, false))
	state := studio.State(rejected)
	assert.Equal(t, UploadFailed, state.UploadState)
	assert.Equal(t, ReasonUploadRejected, state.FailureReason)

	// Failed is terminal within a session
	assert.ErrorIs(t, studio.BeginUpload(rejected), ErrInvalidTransition)

	analysis := uuid.New().String()
	require.NoError(t, studio.BeginUpload(analysis))
	require.NoError(t, studio.UploadDone(analysis, true))
	require.NoError(t, studio.AnalysisDone(analysis, false))
	state = studio.State(analysis)
	assert.Equal(t, UploadFailed, state.UploadState)
	assert.Equal(t, ReasonAnalysisFailed, state.FailureReason)

	// A reset gives a fresh gate
	studio.Reset(analysis)
	require.NoError(t, studio.BeginUpload(analysis))
}

func TestStudioSessionsAreIsolated(t *testing.T) {
	studio := NewStudioService(testStudioConfig())
	alice := uuid.New().String()
	bob := uuid.New().String()

	studio.Arm(alice, uuid.New().String())
	_, err := studio.PlaceAt(alice, 10, 10, 0, 0)
	require.NoError(t, err)

	assert.Empty(t, studio.State(bob).Placed)

	studio.Reset(bob)
	assert.Len(t, studio.State(alice).Placed, 1)
}

func TestProperty_PlacementsLandInsideTheFrame(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("normalized drops stay in the 0-100 frame and out of keep-out zones", prop.ForAll(
		func(x, y float64) bool {
			studio := NewStudioService(testStudioConfig())
			userID := uuid.New().String()
			studio.Arm(userID, uuid.New().String())

			placed, err := studio.PlaceAt(userID, x, y, 800, 600)
			if err == ErrKeepOut {
				// Rejected drops leave no placement behind
				return len(studio.State(userID).Placed) == 0
			}
			if err != nil {
				t.Logf("FAIL: unexpected error: %v", err)
				return false
			}

			if placed.X < 0 || placed.X > 100 || placed.Y < 0 || placed.Y > 100 {
				t.Logf("FAIL: placement (%f, %f) is outside the frame", placed.X, placed.Y)
				return false
			}

			zone := domain.Rect{MinX: 45, MaxX: 55, MinY: 90, MaxY: 100}
			if zone.Contains(placed.X, placed.Y) {
				t.Logf("FAIL: placement (%f, %f) landed inside a keep-out zone", placed.X, placed.Y)
				return false
			}
			return true
		},
		gen.Float64Range(0, 800),
		gen.Float64Range(0, 600),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
