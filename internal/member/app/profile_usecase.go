package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"noteshub/internal/member/domain"
	"noteshub/internal/member/repository"
	"noteshub/pkg/database"
	errprocess "noteshub/pkg/err"

	"github.com/google/uuid"
)

// ProfileUseCase profile operations exposed to the handlers
type ProfileUseCase interface {
	// GetOrCreate fetch the member's profile, creating it lazily on first need
	GetOrCreate(ctx context.Context, memberID string) (*domain.Profile, error)
	Update(ctx context.Context, id, username string, about *string) (*domain.Profile, error)
	UploadAvatar(ctx context.Context, id, fileName string, size int64, file io.Reader) (*domain.Profile, error)
}

type profileUseCase struct {
	profileRepo repository.ProfileRepository
	minioClient database.ObjectStore
}

// NewProfileUseCase build a new ProfileUseCase
func NewProfileUseCase(profileRepo repository.ProfileRepository, minIO database.ObjectStore) ProfileUseCase {
	return &profileUseCase{
		profileRepo: profileRepo,
		minioClient: minIO,
	}
}

func (p *profileUseCase) GetOrCreate(ctx context.Context, memberID string) (*domain.Profile, error) {
	profile, err := p.profileRepo.GetByID(ctx, memberID)
	if err == nil {
		return profile, nil
	}

	profile = &domain.Profile{
		ID:        memberID,
		Username:  "user_" + uuid.New().String()[:8],
		CreatedAt: time.Now().UTC(),
	}
	if err := p.profileRepo.Create(ctx, profile); err != nil {
		return nil, errprocess.Set(fmt.Sprintf("profile[%s] create failed : %v", memberID, err))
	}
	return profile, nil
}

func (p *profileUseCase) Update(ctx context.Context, id, username string, about *string) (*domain.Profile, error) {
	if strings.TrimSpace(username) == "" {
		return nil, errprocess.Set("username can't be empty")
	}

	profile, err := p.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errprocess.Set(fmt.Sprintf("profile[%s] not found : %v", id, err))
	}

	profile.Username = username
	profile.About = about
	profile.UpdatedAt = time.Now().UTC()
	if err := p.profileRepo.Update(ctx, profile); err != nil {
		return nil, errprocess.Set(fmt.Sprintf("profile[%s] update failed : %v", id, err))
	}
	return profile, nil
}

// UploadAvatar store the image then point the profile at its public URL.
// Same gating as resource uploads: no profile change without a stored object.
func (p *profileUseCase) UploadAvatar(ctx context.Context, id, fileName string, size int64, file io.Reader) (*domain.Profile, error) {
	if file == nil {
		return nil, errprocess.Set("no avatar file selected")
	}

	profile, err := p.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errprocess.Set(fmt.Sprintf("profile[%s] not found : %v", id, err))
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	objectName := fmt.Sprintf("avatars/%s%s", id, ext)
	if err := p.minioClient.UploadObject(ctx, objectName, file, size, "image/"+strings.TrimPrefix(ext, ".")); err != nil {
		return nil, errprocess.Set(fmt.Sprintf("avatar[%s] store object failed : %v", fileName, err))
	}

	avatarURL := p.minioClient.PublicURL(objectName)
	if avatarURL == "" {
		return nil, errprocess.Set(fmt.Sprintf("avatar[%s] no public URL resolvable for stored object", fileName))
	}

	profile.AvatarURL = &avatarURL
	profile.UpdatedAt = time.Now().UTC()
	if err := p.profileRepo.Update(ctx, profile); err != nil {
		return nil, errprocess.Set(fmt.Sprintf("profile[%s] update failed : %v", id, err))
	}
	return profile, nil
}
