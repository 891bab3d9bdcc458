package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/stackr/internal/common"
	"github.com/dmitrijs2005/stackr/internal/logging"
	sc "github.com/dmitrijs2005/stackr/internal/server/config"
	"github.com/dmitrijs2005/stackr/internal/server/models"
	"github.com/dmitrijs2005/stackr/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// avatar uploads are capped to keep presigned PUTs from being abused as
// general object storage
const maxAvatarSizeBytes = 512 << 10

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// ProfileUpdate carries the profile fields a user may change. Nil pointers
// leave the stored value untouched.
type ProfileUpdate struct {
	Username  *string
	FirstName *string
	LastName  *string
	Tagline   *string
	Bio       *string
}

// AvatarUpload is a presigned PUT the client uploads the avatar image to,
// plus the storage key it must echo back on confirmation.
type AvatarUpload struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
}

// ProfileService manages user profile rows and avatar storage.
type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	logger      logging.Logger
}

// NewProfileService constructs a ProfileService.
func NewProfileService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config, logger logging.Logger) *ProfileService {
	return &ProfileService{
		db:          db,
		repomanager: m,
		config:      cfg,
		logger:      logger.With("module", "profiles"),
	}
}

// Get returns the profile for userID.
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	profile, err := s.repomanager.Profiles(s.db).GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return profile, nil
}

// Update applies the non-nil fields of upd to the user's profile. A username
// already taken by another user yields common.ErrorConflict.
func (s *ProfileService) Update(ctx context.Context, userID string, upd ProfileUpdate) (*models.UserProfile, error) {

	repo := s.repomanager.Profiles(s.db)
	profile, err := repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	if upd.Username != nil {
		profile.Username = models.NullString(*upd.Username)
	}
	if upd.FirstName != nil {
		profile.FirstName = models.NullString(*upd.FirstName)
	}
	if upd.LastName != nil {
		profile.LastName = models.NullString(*upd.LastName)
	}
	if upd.Tagline != nil {
		profile.Tagline = models.NullString(*upd.Tagline)
	}
	if upd.Bio != nil {
		profile.Bio = models.NullString(*upd.Bio)
	}

	updated, err := repo.Update(ctx, profile)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrorConflict
		}
		return nil, common.ErrorInternal
	}
	return updated, nil
}

// ApplyFederatedHints fills empty profile fields from a federated identity.
// Fields the user already set are never overwritten. The profile row is
// created first if the user predates profiles.
func (s *ProfileService) ApplyFederatedHints(ctx context.Context, userID string, identity models.FederatedIdentity) error {

	repo := s.repomanager.Profiles(s.db)
	profile, err := repo.GetByUserID(ctx, userID)
	if errors.Is(err, common.ErrorNotFound) {
		profile, err = repo.Create(ctx, &models.UserProfile{UserID: userID})
	}
	if err != nil {
		return err
	}

	changed := false
	if !profile.FirstName.Valid && identity.FirstName != "" {
		profile.FirstName = models.NullString(identity.FirstName)
		changed = true
	}
	if !profile.LastName.Valid && identity.LastName != "" {
		profile.LastName = models.NullString(identity.LastName)
		changed = true
	}
	if !profile.AvatarURL.Valid && identity.PictureURL != "" {
		profile.AvatarURL = models.NullString(identity.PictureURL)
		changed = true
	}
	if !changed {
		return nil
	}

	_, err = repo.Update(ctx, profile)
	return err
}

func avatarStorageKey(userID string) string {
	return fmt.Sprintf("avatars/%s/%v", userID, uuid.New())
}

func (s *ProfileService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// AvatarUploadURL validates the declared upload and returns a presigned PUT
// the client uploads the image to directly. Only image/* content up to
// 512 KiB is accepted.
func (s *ProfileService) AvatarUploadURL(ctx context.Context, userID, contentType string, size int64) (*AvatarUpload, error) {

	if !strings.HasPrefix(contentType, "image/") {
		return nil, common.ErrBadRequest
	}
	if size <= 0 || size > maxAvatarSizeBytes {
		return nil, common.ErrBadRequest
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return nil, common.ErrorInternal
	}

	bucket := s.config.S3Bucket
	key := avatarStorageKey(userID)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket:        &bucket,
		Key:           &key,
		ContentType:   &contentType,
		ContentLength: &size,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &AvatarUpload{UploadURL: req.URL, Key: key}, nil
}

// ConfirmAvatar records the uploaded object as the user's avatar. The key
// must be one previously handed out for this user.
func (s *ProfileService) ConfirmAvatar(ctx context.Context, userID, key string) (*models.UserProfile, error) {

	if !strings.HasPrefix(key, "avatars/"+userID+"/") {
		return nil, common.ErrBadRequest
	}

	avatarURL, err := url.JoinPath(s.config.S3BaseEndpoint, s.config.S3Bucket, key)
	if err != nil {
		return nil, common.ErrBadRequest
	}

	repo := s.repomanager.Profiles(s.db)
	profile, err := repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	profile.AvatarURL = models.NullString(avatarURL)
	updated, err := repo.Update(ctx, profile)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return updated, nil
}
