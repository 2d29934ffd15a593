package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fjallet/uploadbox-go/internal/db"
	"github.com/fjallet/uploadbox-go/internal/mock"
	"github.com/fjallet/uploadbox-go/internal/model"
)

func ownedRecord(owner db.UUID, name string) model.Upload {
	return model.Upload{
		ID:          db.NewUUID(),
		OwnerID:     owner,
		FileName:    name,
		StoragePath: "uploads/" + owner.String() + "/1693000000000_" + name,
		MediaKind:   "image/webp",
		Analysis:    model.AnalysisPending,
	}
}

func TestListUploads_ResolvesURLsAndCaches(t *testing.T) {
	owner := db.NewUUID()
	repo := &mock.MockUploadRepo{ListOut: []model.Upload{ownedRecord(owner, "a.webp"), ownedRecord(owner, "b.webp")}}
	strg := &mock.Storage{DownloadURL: "https://example.com/presigned", ExistsOut: true}
	cache := &mock.Cache{}
	srv := NewUploadLister(repo, strg, cache, "uploads-bkt", 15*time.Minute)

	snapshot, err := srv.ListUploads(context.Background(), owner)
	if err != nil {
		t.Fatalf("ListUploads: %v", err)
	}
	if len(snapshot) != 2 {
		t.Fatalf("len(snapshot) = %d; want 2", len(snapshot))
	}
	for _, item := range snapshot {
		if item.DownloadURL == nil || *item.DownloadURL != "https://example.com/presigned" {
			t.Errorf("DownloadURL = %v; want presigned URL", item.DownloadURL)
		}
	}
	if !cache.SetCalled || cache.SetTTL != 15*time.Minute {
		t.Error("resolved URLs should be cached with the configured TTL")
	}
	if repo.ListOwnerID != owner {
		t.Errorf("queried owner = %s; want %s", repo.ListOwnerID, owner)
	}
}

func TestListUploads_CacheHitSkipsPresign(t *testing.T) {
	owner := db.NewUUID()
	repo := &mock.MockUploadRepo{ListOut: []model.Upload{ownedRecord(owner, "a.webp")}}
	strg := &mock.Storage{}
	cache := &mock.Cache{URLOut: "https://example.com/cached"}
	srv := NewUploadLister(repo, strg, cache, "uploads-bkt", 15*time.Minute)

	snapshot, err := srv.ListUploads(context.Background(), owner)
	if err != nil {
		t.Fatalf("ListUploads: %v", err)
	}
	if *snapshot[0].DownloadURL != "https://example.com/cached" {
		t.Errorf("DownloadURL = %q; want cached URL", *snapshot[0].DownloadURL)
	}
	if strg.GenerateDownloadLinkCalled {
		t.Error("no presign call expected on a cache hit")
	}
	if strg.FileExistsCalled {
		t.Error("no storage round trip expected on a cache hit")
	}
}

func TestListUploads_UnreadableObjectHasNoURL(t *testing.T) {
	owner := db.NewUUID()
	repo := &mock.MockUploadRepo{ListOut: []model.Upload{ownedRecord(owner, "a.webp")}}
	strg := &mock.Storage{ExistsOut: false}
	srv := NewUploadLister(repo, strg, &mock.Cache{}, "uploads-bkt", time.Minute)

	snapshot, err := srv.ListUploads(context.Background(), owner)
	if err != nil {
		t.Fatalf("ListUploads: %v", err)
	}
	if len(snapshot) != 1 {
		t.Fatalf("len(snapshot) = %d; want the record kept", len(snapshot))
	}
	if snapshot[0].DownloadURL != nil {
		t.Errorf("DownloadURL = %v; want nil while the object is unreadable", snapshot[0].DownloadURL)
	}
	if strg.GenerateDownloadLinkCalled {
		t.Error("no presign call expected for an unreadable object")
	}
}

func TestListUploads_PresignFailureKeepsRecord(t *testing.T) {
	owner := db.NewUUID()
	repo := &mock.MockUploadRepo{ListOut: []model.Upload{ownedRecord(owner, "a.webp")}}
	strg := &mock.Storage{GenerateDownloadLinkErr: errors.New("minio down"), ExistsOut: true}
	srv := NewUploadLister(repo, strg, &mock.Cache{}, "uploads-bkt", 15*time.Minute)

	snapshot, err := srv.ListUploads(context.Background(), owner)
	if err != nil {
		t.Fatalf("ListUploads: %v", err)
	}
	if len(snapshot) != 1 {
		t.Fatalf("len(snapshot) = %d; want the record kept", len(snapshot))
	}
	if snapshot[0].DownloadURL != nil {
		t.Errorf("DownloadURL = %v; want nil on presign failure", snapshot[0].DownloadURL)
	}
}

func TestListUploads_ForeignRecordDropped(t *testing.T) {
	owner := db.NewUUID()
	repo := &mock.MockUploadRepo{ListOut: []model.Upload{
		ownedRecord(owner, "mine.webp"),
		ownedRecord(db.NewUUID(), "theirs.webp"),
	}}
	strg := &mock.Storage{DownloadURL: "https://example.com/presigned", ExistsOut: true}
	srv := NewUploadLister(repo, strg, &mock.Cache{}, "uploads-bkt", time.Minute)

	snapshot, err := srv.ListUploads(context.Background(), owner)
	if err != nil {
		t.Fatalf("ListUploads: %v", err)
	}
	if len(snapshot) != 1 {
		t.Fatalf("len(snapshot) = %d; want only the owner's record", len(snapshot))
	}
	if snapshot[0].FileName != "mine.webp" {
		t.Errorf("FileName = %q; want %q", snapshot[0].FileName, "mine.webp")
	}
}

func TestListUploads_RepoErrorSurfaces(t *testing.T) {
	repo := &mock.MockUploadRepo{ListErr: errors.New("db gone")}
	srv := NewUploadLister(repo, &mock.Storage{}, &mock.Cache{}, "uploads-bkt", time.Minute)

	if _, err := srv.ListUploads(context.Background(), db.NewUUID()); err == nil {
		t.Fatal("expected the repository error to surface")
	}
}

func TestListUploads_EmptyOwnerHasEmptySnapshot(t *testing.T) {
	repo := &mock.MockUploadRepo{}
	srv := NewUploadLister(repo, &mock.Storage{}, &mock.Cache{}, "uploads-bkt", time.Minute)

	snapshot, err := srv.ListUploads(context.Background(), db.NewUUID())
	if err != nil {
		t.Fatalf("ListUploads: %v", err)
	}
	if len(snapshot) != 0 {
		t.Errorf("len(snapshot) = %d; want 0", len(snapshot))
	}
}
