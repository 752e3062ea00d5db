package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/GastonDeS/SportMatch-Back/models"
	"github.com/GastonDeS/SportMatch-Back/repositories"
	"github.com/GastonDeS/SportMatch-Back/storage"
)

type UpdateUserInput struct {
	PhoneNumber *string  `json:"phoneNumber,omitempty"`
	Locations   []string `json:"locations,omitempty"`
	SportIDs    []int    `json:"sports,omitempty"`
}

type UserService struct {
	userRepo repositories.UserRepository
	uploader storage.FileUploader
}

func NewUserService(userRepo repositories.UserRepository, uploader storage.FileUploader) *UserService {
	return &UserService{
		userRepo: userRepo,
		uploader: uploader,
	}
}

func (s *UserService) GetUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *UserService) GetUserDetail(ctx context.Context, userID int) (*models.UserDetail, error) {
	detail, err := s.userRepo.GetDetailByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user detail: %w", err)
	}
	return detail, nil
}

// UpdateUser applies the present fields of the input: phone number,
// preferred locations, preferred sports. Preference replacements run in
// their own transactions at the repository.
func (s *UserService) UpdateUser(ctx context.Context, userID int, input UpdateUserInput) error {
	if input.PhoneNumber != nil {
		if err := s.userRepo.UpdatePhoneNumber(ctx, userID, *input.PhoneNumber); err != nil {
			switch {
			case errors.Is(err, repositories.ErrUserNotFound):
				return ErrUserNotFound
			case errors.Is(err, repositories.ErrUserPhoneConflict):
				return ErrUserPhoneConflict
			}
			return fmt.Errorf("failed to update phone number: %w", err)
		}
	}
	if input.Locations != nil {
		if err := s.userRepo.ReplaceLocations(ctx, userID, input.Locations); err != nil {
			return fmt.Errorf("failed to update locations: %w", err)
		}
	}
	if input.SportIDs != nil {
		if err := s.userRepo.ReplaceSports(ctx, userID, input.SportIDs); err != nil {
			return fmt.Errorf("failed to update sports: %w", err)
		}
	}
	return nil
}

// UpdateAvatar stores the user's avatar and returns its public URL.
func (s *UserService) UpdateAvatar(ctx context.Context, userID int, contentType string, reader io.Reader) (string, error) {
	ext, err := extensionFromContentType(contentType)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to check user: %w", err)
	}

	result, err := s.uploader.Upload(ctx, storage.AvatarKey(userID, ext), contentType, reader)
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}
	return result.Location, nil
}

func extensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	default:
		if parts := strings.Split(contentType, "/"); len(parts) == 2 && parts[0] == "image" && parts[1] != "" {
			return "." + strings.Split(parts[1], "+")[0], nil
		}
		return "", fmt.Errorf("unsupported avatar content type %q", contentType)
	}
}
