package port

import (
	"context"
	"io"

	"github.com/fjallet/uploadbox-go/internal/db"
	"github.com/fjallet/uploadbox-go/internal/model"
)

type UUIDGen func() db.UUID

// --- account ---

// Registrar creates an account, sends a verification code and leaves the
// new identity signed out.
type Registrar interface {
	Register(ctx context.Context, in RegisterInput) error
}
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

// Authenticator signs a verified identity in. Unverified identities get a
// fresh verification code and no session.
type Authenticator interface {
	Login(ctx context.Context, in LoginInput) (LoginOutput, error)
}
type LoginInput struct {
	Email    string
	Password string
}
type LoginOutput struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// EmailVerifier consumes a verification code.
type EmailVerifier interface {
	VerifyEmail(ctx context.Context, in VerifyEmailInput) error
}
type VerifyEmailInput struct {
	Email string
	Code  string
}

// --- upload pipeline ---

// UploadState names the stations of one upload attempt.
type UploadState int

const (
	StateIdle UploadState = iota
	StatePicked
	StateTranscoding
	StateTransferring
	StateCommitting
	StateDone
	StateFailed
)

func (s UploadState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePicked:
		return "picked"
	case StateTranscoding:
		return "transcoding"
	case StateTransferring:
		return "transferring"
	case StateCommitting:
		return "committing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Uploader runs one pipeline attempt: picked source → optional transcode →
// byte transfer → record commit.
type Uploader interface {
	Upload(ctx context.Context, in UploadInput) (*model.Upload, error)
}
type UploadInput struct {
	OwnerID   db.UUID
	FileName  string
	MediaKind string
	Size      int64
	Reader    io.Reader

	// OnProgress, if set, observes the transferred fraction in [0,1].
	OnProgress func(fraction float64)
	// OnState, if set, observes every pipeline transition.
	OnState func(state UploadState)
}

// AnalysisRequester marks a record for analysis and schedules the work.
type AnalysisRequester interface {
	RequestAnalysis(ctx context.Context, ownerID, id db.UUID) error
}

// UploadAnalyser computes the analysis result for a committed record and
// updates its analysis field. Safe to invoke repeatedly.
type UploadAnalyser interface {
	AnalyseUpload(ctx context.Context, id db.UUID) error
}

// OrphanSweeper removes stored objects whose record commit never landed.
// It reports how many objects were removed.
type OrphanSweeper interface {
	SweepOrphans(ctx context.Context) (int, error)
}

// --- feed ---

// FeedItem is one record plus its resolved download URL; nil means the
// object could not be resolved this round and the renderer shows no preview.
type FeedItem struct {
	model.Upload
	DownloadURL *string `json:"download_url"`
}

// FeedSnapshot is an immutable, consistently ordered view of an owner's
// uploads. Every republish carries a fresh snapshot, never a delta.
type FeedSnapshot []FeedItem

// FeedSubscriber provides the live view over an owner's uploads.
type FeedSubscriber interface {
	// Subscribe pushes an initial snapshot, then one per change
	// notification, until cancel is called or ctx ends. Slow consumers
	// only ever miss intermediate snapshots, never the latest.
	Subscribe(ctx context.Context, ownerID db.UUID) (<-chan FeedSnapshot, func(), error)
}

// UploadLister resolves a single snapshot without subscribing.
type UploadLister interface {
	ListUploads(ctx context.Context, ownerID db.UUID) (FeedSnapshot, error)
}
