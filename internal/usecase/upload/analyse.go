package upload

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"golang.org/x/net/context"

	"github.com/fjallet/uploadbox-go/internal/db"
	"github.com/fjallet/uploadbox-go/internal/model"
	"github.com/fjallet/uploadbox-go/internal/policy"
	"github.com/fjallet/uploadbox-go/internal/port"
)

type analysisRequesterSrv struct {
	repo       port.UploadRepository
	dispatcher port.TaskDispatcher
}

// compile-time check: *analysisRequesterSrv must satisfy port.AnalysisRequester
var _ port.AnalysisRequester = (*analysisRequesterSrv)(nil)

func NewAnalysisRequester(repo port.UploadRepository, dispatcher port.TaskDispatcher) port.AnalysisRequester {
	return &analysisRequesterSrv{repo: repo, dispatcher: dispatcher}
}

// RequestAnalysis schedules the analyse step for a committed record the
// caller owns.
func (s *analysisRequesterSrv) RequestAnalysis(ctx context.Context, ownerID, id db.UUID) error {
	record, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUploadNotFound
	}
	if err != nil {
		return fmt.Errorf("could not fetch upload: %w", err)
	}

	principal := policy.Authenticated(ownerID.String())
	if err := policy.AuthorizeRecord(principal, policy.ActionUpdate, record.ID.String(), record.OwnerID.String()); err != nil {
		return err
	}

	if err := s.dispatcher.EnqueueAnalyseUpload(ctx, id); err != nil {
		return fmt.Errorf("could not enqueue analyse task: %w", err)
	}
	return nil
}

type uploadAnalyserSrv struct {
	repo     port.UploadRepository
	notifier port.FeedNotifier
}

// compile-time check: *uploadAnalyserSrv must satisfy port.UploadAnalyser
var _ port.UploadAnalyser = (*uploadAnalyserSrv)(nil)

func NewUploadAnalyser(repo port.UploadRepository, notifier port.FeedNotifier) port.UploadAnalyser {
	return &uploadAnalyserSrv{repo: repo, notifier: notifier}
}

// AnalyseUpload computes the analysis summary for a record and stores it.
// The summary is derived from committed data only, so re-running it is
// harmless.
func (s *uploadAnalyserSrv) AnalyseUpload(ctx context.Context, id db.UUID) error {
	record, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUploadNotFound
	}
	if err != nil {
		return fmt.Errorf("could not fetch upload: %w", err)
	}

	analysis := buildAnalysis(record)
	if record.Analysis == analysis {
		return nil
	}

	if err := s.repo.UpdateAnalysis(ctx, id, analysis); err != nil {
		return fmt.Errorf("could not store analysis: %w", err)
	}

	if err := s.notifier.PublishChange(ctx, record.OwnerID); err != nil {
		log.Printf("could not publish feed change for owner #%s: %v", record.OwnerID, err)
	}
	return nil
}

func buildAnalysis(record *model.Upload) string {
	md := record.Metadata
	switch {
	case IsImageKind(record.MediaKind):
		return fmt.Sprintf("image %dx%d, %d bytes", md.Width, md.Height, md.SizeBytes)
	case IsPdfKind(record.MediaKind):
		return fmt.Sprintf("pdf %d pages, %d bytes", md.PageCount, md.SizeBytes)
	default:
		return fmt.Sprintf("file %d bytes", md.SizeBytes)
	}
}
