package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"noteshub/internal/catalog/domain"
	"noteshub/internal/catalog/repository"
	"noteshub/pkg/database"
	errprocess "noteshub/pkg/err"

	"github.com/google/uuid"
)

// CatalogUseCase exposes the resource catalog flow
type CatalogUseCase interface {
	ListResources(ctx context.Context, branch domain.Branch, subjectID string, tag domain.Tag) ([]domain.Resource, error)
	UploadResource(ctx context.Context, up domain.UploadResourceReq) (*domain.UploadResourceRes, error)
	DownloadResource(ctx context.Context, resourceID string) (fileURL, fileName string, err error)
	Subjects(branch domain.Branch) ([]domain.Subject, error)
}

type catalogUseCase struct {
	MinioClient  database.ObjectStore
	ResourceRepo repository.ResourceRepo
}

// NewCatalogUseCase build a new CatalogUseCase
func NewCatalogUseCase(minIO database.ObjectStore, repo repository.ResourceRepo) CatalogUseCase {
	return &catalogUseCase{
		MinioClient:  minIO,
		ResourceRepo: repo,
	}
}

// Subjects list the static subject catalog of one branch
func (s *catalogUseCase) Subjects(branch domain.Branch) ([]domain.Subject, error) {
	if !branch.Valid() {
		return nil, errprocess.Set(fmt.Sprintf("unknown branch [%s]", branch))
	}
	return domain.SubjectsByBranch(branch), nil
}

// ListResources answer "what resources exist for subject X under filter Y",
// newest first. An empty scope yields an empty slice, not an error.
func (s *catalogUseCase) ListResources(ctx context.Context, branch domain.Branch, subjectID string, tag domain.Tag) ([]domain.Resource, error) {
	if _, ok := domain.FindSubject(branch, subjectID); !ok {
		return nil, errprocess.Set(fmt.Sprintf("unknown subject [%s/%s]", branch, subjectID))
	}
	return s.ResourceRepo.FindBySubject(branch, subjectID, tag)
}

// UploadResource run the gated upload sequence: store the object, resolve its
// public URL, then insert the metadata row. Each step aborts the rest on
// failure, so a metadata row never exists without its object. The reverse, an
// object whose row insert failed, is left in place; there is no cross-step
// transaction and a re-upload simply runs the sequence again under a fresh
// object name.
func (s *catalogUseCase) UploadResource(ctx context.Context, up domain.UploadResourceReq) (*domain.UploadResourceRes, error) {
	if up.File == nil {
		return nil, errprocess.Set("no file selected for upload")
	}
	subject, ok := domain.FindSubject(up.Branch, up.SubjectID)
	if !ok {
		return nil, errprocess.Set(fmt.Sprintf("unknown subject [%s/%s]", up.Branch, up.SubjectID))
	}
	if !up.Tag.Valid() {
		return nil, errprocess.Set(fmt.Sprintf("unknown tag [%s]", up.Tag))
	}

	// Object path unique per subject: subject id + random token, extension kept
	ext := strings.ToLower(filepath.Ext(up.FileName))
	objectName := fmt.Sprintf("resources/%s/%s%s", subject.ID, uuid.New().String(), ext)

	if err := s.MinioClient.UploadObject(ctx, objectName, up.File, up.FileSize, contentTypeOf(ext)); err != nil {
		return nil, errprocess.Set(fmt.Sprintf("fileName[%s] store object failed : %v", up.FileName, err))
	}

	fileURL := s.MinioClient.PublicURL(objectName)
	if fileURL == "" {
		return nil, errprocess.Set(fmt.Sprintf("fileName[%s] no public URL resolvable for stored object", up.FileName))
	}

	resource := domain.Resource{
		ID:            uuid.New().String(),
		Branch:        up.Branch,
		SubjectID:     subject.ID,
		FileName:      up.FileName,
		FileType:      fileTypeOf(ext),
		FileSizeLabel: sizeLabel(up.FileSize),
		Tag:           up.Tag,
		FileURL:       fileURL,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.ResourceRepo.Create(&resource); err != nil {
		return nil, errprocess.Set(fmt.Sprintf("fileName[%s] insert resource record failed : %v", up.FileName, err))
	}

	return &domain.UploadResourceRes{
		Message:  fmt.Sprintf("%s uploaded successfully", up.FileName),
		Resource: &resource,
	}, nil
}

// DownloadResource resolve the stored URL and suggested file name. The bytes
// are never read here; retrieval is the caller's redirect.
func (s *catalogUseCase) DownloadResource(ctx context.Context, resourceID string) (string, string, error) {
	resource, err := s.ResourceRepo.GetByID(resourceID)
	if err != nil {
		return "", "", errprocess.Set(fmt.Sprintf("resource[%s] not found : %v", resourceID, err))
	}
	return resource.FileURL, resource.FileName, nil
}

// fileTypeOf derive the display type from the extension, upper-cased,
// "DOC" when the name carries none
func fileTypeOf(ext string) string {
	trimmed := strings.TrimPrefix(ext, ".")
	if trimmed == "" {
		return "DOC"
	}
	return strings.ToUpper(trimmed)
}

// sizeLabel format a byte count the way the catalog displays it
func sizeLabel(size int64) string {
	return fmt.Sprintf("%.2f MB", float64(size)/1024/1024)
}

func contentTypeOf(ext string) string {
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".doc", ".docx":
		return "application/msword"
	case ".ppt", ".pptx":
		return "application/vnd.ms-powerpoint"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
