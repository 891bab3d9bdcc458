package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/stackr/internal/common"
	"github.com/dmitrijs2005/stackr/internal/logging"
	"github.com/dmitrijs2005/stackr/internal/server/models"
)

func newProfileService(t *testing.T, rm *fakeRepoManager) *ProfileService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	t.Cleanup(func() { db.Close() })
	cfg := testConfig()
	cfg.S3Bucket = "stackr-dev"
	cfg.S3BaseEndpoint = "http://127.0.0.1:9000/"
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewProfileService(db, rm, cfg, logger)
}

func strPtr(s string) *string { return &s }

func TestProfileUpdateAppliesOnlySetFields(t *testing.T) {
	rm := newFakeRepoManager()
	s := newProfileService(t, rm)
	ctx := context.Background()

	if _, err := rm.p.Create(ctx, &models.UserProfile{
		UserID:   "u1",
		Username: models.NullString("grace"),
		Bio:      models.NullString("hello"),
	}); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	updated, err := s.Update(ctx, "u1", ProfileUpdate{
		FirstName: strPtr("Grace"),
		Tagline:   strPtr("rpg fan"),
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.FirstName.String != "Grace" || updated.Tagline.String != "rpg fan" {
		t.Fatalf("fields not applied: %+v", updated)
	}
	if updated.Username.String != "grace" || updated.Bio.String != "hello" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestProfileUpdateUsernameConflict(t *testing.T) {
	rm := newFakeRepoManager()
	s := newProfileService(t, rm)
	ctx := context.Background()

	rm.p.Create(ctx, &models.UserProfile{UserID: "u1", Username: models.NullString("grace")})
	rm.p.Create(ctx, &models.UserProfile{UserID: "u2"})

	_, err := s.Update(ctx, "u2", ProfileUpdate{Username: strPtr("grace")})
	if !errors.Is(err, common.ErrorConflict) {
		t.Fatalf("want ErrorConflict, got %v", err)
	}
}

func TestApplyFederatedHintsFillsOnlyEmptyFields(t *testing.T) {
	rm := newFakeRepoManager()
	s := newProfileService(t, rm)
	ctx := context.Background()

	rm.p.Create(ctx, &models.UserProfile{
		UserID:    "u1",
		FirstName: models.NullString("G."),
	})

	err := s.ApplyFederatedHints(ctx, "u1", models.FederatedIdentity{
		FirstName:  "Grace",
		LastName:   "Hopper",
		PictureURL: "https://lh3.example/p.jpg",
	})
	if err != nil {
		t.Fatalf("ApplyFederatedHints error: %v", err)
	}

	profile := rm.p.profiles["u1"]
	if profile.FirstName.String != "G." {
		t.Fatalf("user-set first name overwritten: %+v", profile)
	}
	if profile.LastName.String != "Hopper" || profile.AvatarURL.String != "https://lh3.example/p.jpg" {
		t.Fatalf("empty fields not filled: %+v", profile)
	}
}

func TestApplyFederatedHintsCreatesMissingProfile(t *testing.T) {
	rm := newFakeRepoManager()
	s := newProfileService(t, rm)

	err := s.ApplyFederatedHints(context.Background(), "u1", models.FederatedIdentity{FirstName: "Grace"})
	if err != nil {
		t.Fatalf("ApplyFederatedHints error: %v", err)
	}
	if rm.p.profiles["u1"] == nil {
		t.Fatalf("profile row not created")
	}
}

func TestAvatarUploadURLValidation(t *testing.T) {
	s := newProfileService(t, newFakeRepoManager())
	ctx := context.Background()

	cases := []struct {
		name        string
		contentType string
		size        int64
	}{
		{name: "not an image", contentType: "application/pdf", size: 100},
		{name: "too large", contentType: "image/png", size: maxAvatarSizeBytes + 1},
		{name: "zero size", contentType: "image/png", size: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.AvatarUploadURL(ctx, "u1", tc.contentType, tc.size)
			if !errors.Is(err, common.ErrBadRequest) {
				t.Fatalf("want ErrBadRequest, got %v", err)
			}
		})
	}
}

func TestAvatarUploadURLPresigns(t *testing.T) {
	origPresign := presignPutObject
	defer func() { presignPutObject = origPresign }()

	var gotKey string
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		gotKey = *in.Key
		return &v4.PresignedHTTPRequest{URL: "https://minio.local/presigned"}, nil
	}

	s := newProfileService(t, newFakeRepoManager())
	upload, err := s.AvatarUploadURL(context.Background(), "u1", "image/png", 1024)
	if err != nil {
		t.Fatalf("AvatarUploadURL error: %v", err)
	}
	if upload.UploadURL != "https://minio.local/presigned" {
		t.Fatalf("unexpected upload url: %s", upload.UploadURL)
	}
	if !strings.HasPrefix(upload.Key, "avatars/u1/") || upload.Key != gotKey {
		t.Fatalf("unexpected key: %s (presigned %s)", upload.Key, gotKey)
	}
}

func TestConfirmAvatarRejectsForeignKey(t *testing.T) {
	s := newProfileService(t, newFakeRepoManager())

	_, err := s.ConfirmAvatar(context.Background(), "u1", "avatars/u2/abc")
	if !errors.Is(err, common.ErrBadRequest) {
		t.Fatalf("want ErrBadRequest, got %v", err)
	}
}

func TestConfirmAvatarStoresURL(t *testing.T) {
	rm := newFakeRepoManager()
	s := newProfileService(t, rm)
	ctx := context.Background()

	rm.p.Create(ctx, &models.UserProfile{UserID: "u1"})

	updated, err := s.ConfirmAvatar(ctx, "u1", "avatars/u1/abc")
	if err != nil {
		t.Fatalf("ConfirmAvatar error: %v", err)
	}
	want := "http://127.0.0.1:9000/stackr-dev/avatars/u1/abc"
	if updated.AvatarURL.String != want {
		t.Fatalf("avatar url = %s, want %s", updated.AvatarURL.String, want)
	}
}
