package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"

	"github.com/Furiouss38/podv2/internal/model"
	"github.com/Furiouss38/podv2/internal/repository"
)

var videoColumns = []string{
	"id", "video", "allow_downloading", "is_360", "title", "slug", "owner_id",
	"date_added", "date_evt", "description", "cursus", "main_lang", "overview",
	"duration", "info_video", "is_draft", "is_restricted", "password", "tags",
	"thumbnails", "type_id", "groups", "disciplines",
}

func videoRows(id int64, title, slug, file string) *pgxmock.Rows {
	added := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return pgxmock.NewRows(videoColumns).AddRow(
		id, file, false, false, title, slug, int64(1),
		added, nil, "", "0", "fr", nil,
		3725, nil, false, false, nil, `go "web dev"`,
		nil, int64(1), []int64{}, []int64{2},
	)
}

func videoRequest(title string, ownerID int64) model.VideoRequest {
	return model.VideoRequest{Title: title, OwnerID: ownerID}
}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func newTestVideoService(t *testing.T, mock pgxmock.PgxPoolIface, cache *CacheService, store *memStore) *VideoService {
	t.Helper()
	svc := NewVideoService(
		repository.NewVideoRepo(mock),
		repository.NewOwnerRepo(mock),
		NewMediaService(store, "videos", "files"),
		cache, 1, "fr",
	)
	svc.now = func() time.Time { return time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC) }
	return svc
}

func TestVideoService_LookupCachesResponse(t *testing.T) {
	mock := newMockPool(t)
	cache, mr := newTestCache(t)
	svc := newTestVideoService(t, mock, cache, newMemStore())

	mock.ExpectQuery("WHERE v.slug").WithArgs("0004-intro").
		WillReturnRows(videoRows(4, "Intro", "0004-intro", ""))

	for i := 0; i < 2; i++ {
		resp, err := svc.Lookup(context.Background(), "0004-intro")
		if err != nil {
			t.Fatalf("Lookup #%d: %v", i, err)
		}
		if resp.ID != 4 || resp.DurationInTime != "01:02:05" {
			t.Errorf("Lookup #%d: id=%d duration=%q", i, resp.ID, resp.DurationInTime)
		}
		if strings.Join(resp.TagList, "|") != "go|web dev" {
			t.Errorf("Lookup #%d: tags = %v", i, resp.TagList)
		}
	}

	if !mr.Exists("video:0004-intro") {
		t.Error("response should be cached")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("second lookup should hit the cache: %v", err)
	}
}

func TestVideoService_LookupNotFound(t *testing.T) {
	mock := newMockPool(t)
	svc := newTestVideoService(t, mock, nil, newMemStore())

	mock.ExpectQuery("WHERE v.slug").WithArgs("missing").WillReturnError(pgx.ErrNoRows)

	if _, err := svc.Lookup(context.Background(), "missing"); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("err = %v, want pgx.ErrNoRows", err)
	}
}

func TestVideoService_CreateAppliesDefaults(t *testing.T) {
	mock := newMockPool(t)
	svc := newTestVideoService(t, mock, nil, newMemStore())
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM pg_sequences").WithArgs("videos").
		WillReturnRows(pgxmock.NewRows([]string{"next"}).AddRow(int64(12)))
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO videos").
		WithArgs(
			"", false, false, "Cours Été", "0012-cours-ete", int64(3),
			today, pgxmock.AnyArg(), "", "0", "fr", pgxmock.AnyArg(),
			0, pgxmock.AnyArg(), true, false, pgxmock.AnyArg(), "",
			pgxmock.AnyArg(), int64(1),
		).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(12)))
	mock.ExpectExec("DELETE FROM video_disciplines").WithArgs(int64(12)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("DELETE FROM video_groups").WithArgs(int64(12)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectCommit()

	resp, err := svc.Create(context.Background(), videoRequest("Cours Été", 3))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if resp.ID != 12 || resp.Slug != "0012-cours-ete" || !resp.IsDraft {
		t.Errorf("unexpected response %+v", resp.Video)
	}
	if resp.DateEvt == nil || !resp.DateEvt.Equal(today) {
		t.Errorf("DateEvt = %v, want %s", resp.DateEvt, today)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestVideoService_AttachFile(t *testing.T) {
	mock := newMockPool(t)
	cache, mr := newTestCache(t)
	store := newMemStore()
	store.objects["videos/oldhash/old.mp4"] = "old"
	svc := newTestVideoService(t, mock, cache, store)
	_ = cache.SetVideo(context.Background(), "0004-intro", "stale")

	mock.ExpectQuery("WHERE v.id").WithArgs(int64(4)).
		WillReturnRows(videoRows(4, "Intro", "0004-intro", "videos/oldhash/old.mp4"))
	mock.ExpectQuery("FROM owners").WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "hashkey"}).AddRow(int64(1), "jdoe", "abc123"))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE videos").WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("DELETE FROM video_disciplines").WithArgs(int64(4)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("INSERT INTO video_disciplines").WithArgs(int64(4), []int64{2}).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("DELETE FROM video_groups").WithArgs(int64(4)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectCommit()

	resp, err := svc.AttachFile(context.Background(), 4, Upload{
		Filename:    "Intro Lecture.mp4",
		ContentType: "video/mp4",
		Size:        5,
		Body:        strings.NewReader("video"),
	})
	if err != nil {
		t.Fatalf("AttachFile: %v", err)
	}

	const key = "videos/abc123/intro-lecture.mp4"
	if resp.File != key {
		t.Errorf("File = %q, want %q", resp.File, key)
	}
	if store.objects[key] != "video" {
		t.Error("upload not stored")
	}
	if _, ok := store.objects["videos/oldhash/old.mp4"]; ok {
		t.Error("replaced file should be removed")
	}
	if mr.Exists("video:0004-intro") {
		t.Error("cached response should be invalidated")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestVideoService_AttachFileKeepsExistingUpload(t *testing.T) {
	mock := newMockPool(t)
	store := newMemStore()
	store.objects["videos/abc123/intro.mp4"] = "other video"
	svc := newTestVideoService(t, mock, nil, store)
	svc.media.suffix = func() string { return "f00ba47" }

	mock.ExpectQuery("WHERE v.id").WithArgs(int64(5)).
		WillReturnRows(videoRows(5, "Intro bis", "0005-intro-bis", ""))
	mock.ExpectQuery("FROM owners").WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "hashkey"}).AddRow(int64(1), "jdoe", "abc123"))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE videos").WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("DELETE FROM video_disciplines").WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("INSERT INTO video_disciplines").WithArgs(int64(5), []int64{2}).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("DELETE FROM video_groups").WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectCommit()

	resp, err := svc.AttachFile(context.Background(), 5, Upload{
		Filename: "Intro.mp4",
		Size:     5,
		Body:     strings.NewReader("video"),
	})
	if err != nil {
		t.Fatalf("AttachFile: %v", err)
	}
	if resp.File != "videos/abc123/intro_f00ba47.mp4" {
		t.Errorf("File = %q", resp.File)
	}
	if store.objects["videos/abc123/intro.mp4"] != "other video" {
		t.Error("another video's file was overwritten")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestVideoService_UpdateKeepsStoredFields(t *testing.T) {
	mock := newMockPool(t)
	cache, mr := newTestCache(t)
	svc := newTestVideoService(t, mock, cache, newMemStore())
	_ = cache.SetVideo(context.Background(), "0004-intro", "stale")

	const file = "videos/abc123/intro.mp4"
	pw := "s3cret"
	thumbs := "files/thumbs/intro.png"
	added := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("WHERE v.id").WithArgs(int64(4)).
		WillReturnRows(pgxmock.NewRows(videoColumns).AddRow(
			int64(4), file, false, false, "Intro", "0004-intro", int64(1),
			added, nil, "", "0", "fr", nil,
			3725, nil, false, false, &pw, "",
			&thumbs, int64(1), []int64{}, []int64{2},
		))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE videos").
		WithArgs(
			file, false, false, "Intro renamed", "0004-intro-renamed", int64(1),
			added, pgxmock.AnyArg(), "", "0", "fr", pgxmock.AnyArg(),
			3725, pgxmock.AnyArg(), false, false, &pw, "",
			&thumbs, int64(1), int64(4),
		).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("DELETE FROM video_disciplines").WithArgs(int64(4)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM video_groups").WithArgs(int64(4)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectCommit()

	resp, err := svc.Update(context.Background(), 4, videoRequest("Intro renamed", 1))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if resp.File != file {
		t.Errorf("File = %q, want %q", resp.File, file)
	}
	if resp.Slug != "0004-intro-renamed" {
		t.Errorf("Slug = %q, want 0004-intro-renamed", resp.Slug)
	}
	if !resp.HasPassword || resp.Thumbnails == nil || *resp.Thumbnails != thumbs {
		t.Errorf("password/thumbnails dropped: hasPassword=%v thumbnails=%v", resp.HasPassword, resp.Thumbnails)
	}
	if mr.Exists("video:0004-intro") {
		t.Error("cached response under the old slug should be invalidated")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestVideoService_UpdateReplacesFile(t *testing.T) {
	mock := newMockPool(t)
	svc := newTestVideoService(t, mock, nil, newMemStore())

	next := "videos/abc123/intro-v2.mp4"
	mock.ExpectQuery("WHERE v.id").WithArgs(int64(4)).
		WillReturnRows(videoRows(4, "Intro", "0004-intro", "videos/abc123/intro.mp4"))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE videos").
		WithArgs(
			next, pgxmock.AnyArg(), pgxmock.AnyArg(), "Intro", "0004-intro", int64(1),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), int64(4),
		).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("DELETE FROM video_disciplines").WithArgs(int64(4)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM video_groups").WithArgs(int64(4)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectCommit()

	req := videoRequest("Intro", 1)
	req.File = &next
	resp, err := svc.Update(context.Background(), 4, req)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if resp.File != next {
		t.Errorf("File = %q, want %q", resp.File, next)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
