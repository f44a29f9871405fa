package service

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"

	"github.com/habitflow/habitflow-api/internal/core/domain"
	"github.com/habitflow/habitflow-api/internal/core/ports"
)

// maxAvatarBytes caps avatar uploads before they reach the image host.
const maxAvatarBytes = 5 << 20

// AvatarUploader abstracts the external image-hosting collaborator
// (Cloudinary in production). Returns the hosted file's URI.
type AvatarUploader interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (string, error)
}

// ProfileService implements profile reads/updates and avatar uploads.
type ProfileService struct {
	users    ports.UserRepository
	habits   ports.HabitRepository
	uploader AvatarUploader
	logger   zerolog.Logger
}

// NewProfileService wires the profile service. uploader may be nil when the
// image host is not configured; avatar updates then fail with
// domain.ErrUploadsUnavailable.
func NewProfileService(users ports.UserRepository, habits ports.HabitRepository, uploader AvatarUploader, logger zerolog.Logger) *ProfileService {
	return &ProfileService{users: users, habits: habits, uploader: uploader, logger: logger}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// GetPublic returns another user's public fields together with their habits.
func (s *ProfileService) GetPublic(ctx context.Context, userID string) (*ports.PublicProfileResult, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	habits, err := s.habits.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ports.PublicProfileResult{User: user.Public(), Habits: habits}, nil
}

func (s *ProfileService) Update(ctx context.Context, userID, displayName, bio string) (*domain.User, error) {
	return s.users.UpdateProfile(ctx, userID, strings.TrimSpace(displayName), strings.TrimSpace(bio))
}

// UpdateAvatar validates the uploaded file, delegates storage to the image
// host, and persists the returned URI on the user record.
func (s *ProfileService) UpdateAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (*domain.User, error) {
	if file == nil {
		return nil, domain.ErrAvatarRequired
	}
	if s.uploader == nil {
		return nil, domain.ErrUploadsUnavailable
	}
	if file.Size > maxAvatarBytes {
		return nil, domain.ErrImageTooLarge
	}
	if !isSupportedImage(file.Header.Get("Content-Type")) {
		return nil, domain.ErrUnsupportedImageType
	}

	url, err := s.uploader.Upload(ctx, file)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("avatar upload failed")
		return nil, err
	}

	return s.users.UpdateAvatar(ctx, userID, url)
}

func isSupportedImage(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png", "image/webp":
		return true
	}
	return false
}
