package service

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"homevista/internal/config"
	"homevista/internal/domain"
)

// Zoom bounds for the room view.
const (
	ZoomMin = 0.5
	ZoomMax = 2.0
)

// Upload gate states for a studio session.
const (
	UploadIdle       = "idle"
	UploadUploading  = "uploading"
	UploadProcessing = "processing"
	UploadComplete   = "complete"
	UploadFailed     = "failed"
)

// Failure reasons recorded when the upload gate ends in UploadFailed.
const (
	ReasonUploadRejected = "upload_rejected"
	ReasonAnalysisFailed = "analysis_failed"
)

var (
	ErrNothingArmed      = errors.New("no furniture item armed for placement")
	ErrKeepOut           = errors.New("position falls inside a keep-out zone")
	ErrInvalidTransition = errors.New("invalid upload state transition")
)

// StudioSession is the in-process state of one user's placement surface.
// It is ephemeral by design: placed items only become durable when they
// are added to the cart or saved as a room design.
type StudioSession struct {
	UserID        string              `json:"userId"`
	RoomType      string              `json:"roomType"`
	ArmedID       string              `json:"armedFurnitureId,omitempty"`
	Placed        []domain.PlacedItem `json:"placedItems"`
	Rotation      float64             `json:"rotation"`
	Zoom          float64             `json:"zoom"`
	UploadState   string              `json:"uploadState"`
	FailureReason string              `json:"failureReason,omitempty"`
}

// StudioService drives the 2D placement surface: arming an item,
// dropping it at validated coordinates, camera transforms and the
// upload/analysis gate for user supplied room photos.
type StudioService interface {
	State(userID string) StudioSession
	Arm(userID, furnitureID string)
	PlaceAt(userID string, x, y, surfaceWidth, surfaceHeight float64) (domain.PlacedItem, error)
	Remove(userID, placementID string)
	TransformView(userID string, rotationDelta, zoomDelta float64) (rotation, zoom float64)
	SetRoomType(userID, roomType string)
	BeginUpload(userID string) error
	UploadDone(userID string, ok bool) error
	AnalysisDone(userID string, ok bool) error
	Reset(userID string)
}

type studioService struct {
	mu       sync.Mutex
	sessions map[string]*StudioSession
	keepOut  []domain.Rect
}

// NewStudioService creates a new instance of StudioService. The keep-out
// rectangle defaults to the door swing path in the percentage frame.
func NewStudioService(cfg config.StudioConfig) StudioService {
	return &studioService{
		sessions: make(map[string]*StudioSession),
		keepOut: []domain.Rect{
			{MinX: cfg.DoorMinX, MaxX: cfg.DoorMaxX, MinY: cfg.DoorMinY, MaxY: cfg.DoorMaxY},
		},
	}
}

func (s *studioService) session(userID string) *StudioSession {
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &StudioSession{
			UserID:      userID,
			RoomType:    domain.RoomLivingRoom,
			Placed:      []domain.PlacedItem{},
			Zoom:        1.0,
			UploadState: UploadIdle,
		}
		s.sessions[userID] = sess
	}
	return sess
}

func (s *studioService) State(userID string) StudioSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(userID)
	out := *sess
	out.Placed = append([]domain.PlacedItem{}, sess.Placed...)
	return out
}

// Arm marks a furniture item for the next drop. Arming while something
// is already armed silently replaces it.
func (s *studioService) Arm(userID, furnitureID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session(userID).ArmedID = furnitureID
}

// PlaceAt normalizes raw surface coordinates to the 0-100 percentage
// frame and appends a placement for the armed item. A drop inside a
// keep-out rectangle is rejected and the item stays armed for a retry.
func (s *studioService) PlaceAt(userID string, x, y, surfaceWidth, surfaceHeight float64) (domain.PlacedItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(userID)
	if sess.ArmedID == "" {
		return domain.PlacedItem{}, ErrNothingArmed
	}

	nx, ny := x, y
	if surfaceWidth > 0 {
		nx = x / surfaceWidth * 100
	}
	if surfaceHeight > 0 {
		ny = y / surfaceHeight * 100
	}

	for _, zone := range s.keepOut {
		if zone.Contains(nx, ny) {
			return domain.PlacedItem{}, ErrKeepOut
		}
	}

	placed := domain.PlacedItem{
		ID:          uuid.New().String(),
		FurnitureID: sess.ArmedID,
		X:           nx,
		Y:           ny,
		Rotation:    0,
		Scale:       1.0,
	}
	sess.Placed = append(sess.Placed, placed)
	sess.ArmedID = ""
	return placed, nil
}

// Remove drops a placement by id. Unknown ids are a no-op.
func (s *studioService) Remove(userID, placementID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(userID)
	for i, placed := range sess.Placed {
		if placed.ID == placementID {
			sess.Placed = append(sess.Placed[:i], sess.Placed[i+1:]...)
			return
		}
	}
}

// TransformView applies camera-level rotation and zoom. Placement
// coordinates are untouched, so saved designs do not depend on the
// viewing angle used when creating them.
func (s *studioService) TransformView(userID string, rotationDelta, zoomDelta float64) (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(userID)
	sess.Rotation += rotationDelta
	sess.Zoom += zoomDelta
	if sess.Zoom < ZoomMin {
		sess.Zoom = ZoomMin
	}
	if sess.Zoom > ZoomMax {
		sess.Zoom = ZoomMax
	}
	return sess.Rotation, sess.Zoom
}

// SetRoomType switches the active room and clears every placement. A
// living room layout has no defined mapping onto a kitchen, so nothing
// is migrated.
func (s *studioService) SetRoomType(userID, roomType string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(userID)
	sess.RoomType = roomType
	sess.Placed = []domain.PlacedItem{}
	sess.ArmedID = ""
}

// BeginUpload starts the upload gate: idle -> uploading.
func (s *studioService) BeginUpload(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(userID)
	if sess.UploadState != UploadIdle {
		return ErrInvalidTransition
	}
	sess.UploadState = UploadUploading
	return nil
}

// UploadDone resolves the media upload: uploading -> processing on
// success, uploading -> failed otherwise. Failed is terminal, a fresh
// session is needed to retry.
func (s *studioService) UploadDone(userID string, ok bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(userID)
	if sess.UploadState != UploadUploading {
		return ErrInvalidTransition
	}
	if !ok {
		sess.UploadState = UploadFailed
		sess.FailureReason = ReasonUploadRejected
		return nil
	}
	sess.UploadState = UploadProcessing
	return nil
}

// AnalysisDone resolves the scene analysis: processing -> complete on
// success, processing -> failed otherwise.
func (s *studioService) AnalysisDone(userID string, ok bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(userID)
	if sess.UploadState != UploadProcessing {
		return ErrInvalidTransition
	}
	if !ok {
		sess.UploadState = UploadFailed
		sess.FailureReason = ReasonAnalysisFailed
		return nil
	}
	sess.UploadState = UploadComplete
	return nil
}

// Reset discards the user's session entirely.
func (s *studioService) Reset(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userID)
}
