package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"noteshub/internal/catalog/domain"
	"noteshub/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func init() {
	logger.SetNewNop()
}

func TestCatalogUseCase_UploadResource(t *testing.T) {
	ctx := context.Background()

	mockStore := new(MockObjectStore)
	mockRepo := new(MockResourceRepo)

	mockStore.On("UploadObject", ctx, mock.Anything, mock.Anything, int64(3*1024*1024), "application/pdf").Return(nil)
	mockStore.On("PublicURL", mock.Anything).Return("http://minio:9000/noteshub/resources/dsa/x.pdf")
	mockRepo.On("Create", mock.Anything).Return(nil)

	uc := NewCatalogUseCase(mockStore, mockRepo)
	res, err := uc.UploadResource(ctx, domain.UploadResourceReq{
		Branch:    domain.BranchCS,
		SubjectID: "dsa",
		FileName:  "Stacks and Queues.pdf",
		FileSize:  3 * 1024 * 1024,
		Tag:       domain.TagEndsem,
		File:      strings.NewReader("%PDF-1.4"),
	})

	assert.NoError(t, err)
	assert.NotNil(t, res.Resource)
	assert.Equal(t, "PDF", res.Resource.FileType)
	assert.Equal(t, "3.00 MB", res.Resource.FileSizeLabel)
	assert.Equal(t, "http://minio:9000/noteshub/resources/dsa/x.pdf", res.Resource.FileURL)

	// object path scoped under the subject, extension kept
	objectName := mockStore.Calls[0].Arguments.String(1)
	assert.True(t, strings.HasPrefix(objectName, "resources/dsa/"))
	assert.True(t, strings.HasSuffix(objectName, ".pdf"))

	mockStore.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestCatalogUseCase_UploadResource_NoFile(t *testing.T) {
	ctx := context.Background()

	mockStore := new(MockObjectStore)
	mockRepo := new(MockResourceRepo)

	uc := NewCatalogUseCase(mockStore, mockRepo)
	_, err := uc.UploadResource(ctx, domain.UploadResourceReq{
		Branch:    domain.BranchCS,
		SubjectID: "dsa",
		FileName:  "notes.pdf",
		Tag:       domain.TagOther,
	})

	// rejected before anything remote runs
	assert.Error(t, err)
	mockStore.AssertNotCalled(t, "UploadObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCatalogUseCase_UploadResource_StoreFailureSkipsInsert(t *testing.T) {
	ctx := context.Background()

	mockStore := new(MockObjectStore)
	mockRepo := new(MockResourceRepo)

	mockStore.On("UploadObject", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("minio down"))

	uc := NewCatalogUseCase(mockStore, mockRepo)
	_, err := uc.UploadResource(ctx, domain.UploadResourceReq{
		Branch:    domain.BranchIT,
		SubjectID: "dbms",
		FileName:  "er-diagrams.pdf",
		FileSize:  1024,
		Tag:       domain.TagMidterm,
		File:      strings.NewReader("x"),
	})

	// no metadata row without its object
	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCatalogUseCase_UploadResource_NoPublicURLSkipsInsert(t *testing.T) {
	ctx := context.Background()

	mockStore := new(MockObjectStore)
	mockRepo := new(MockResourceRepo)

	mockStore.On("UploadObject", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mockStore.On("PublicURL", mock.Anything).Return("")

	uc := NewCatalogUseCase(mockStore, mockRepo)
	_, err := uc.UploadResource(ctx, domain.UploadResourceReq{
		Branch:    domain.BranchCS,
		SubjectID: "se",
		FileName:  "uml.pdf",
		FileSize:  1024,
		Tag:       domain.TagTutorial,
		File:      strings.NewReader("x"),
	})

	// stored object without a resolvable URL stays orphaned, row skipped
	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCatalogUseCase_UploadResource_UnknownScope(t *testing.T) {
	ctx := context.Background()
	uc := NewCatalogUseCase(new(MockObjectStore), new(MockResourceRepo))

	_, err := uc.UploadResource(ctx, domain.UploadResourceReq{
		Branch:    domain.BranchCS,
		SubjectID: "dbms", // an IT subject, not offered under cs
		FileName:  "notes.pdf",
		Tag:       domain.TagOther,
		File:      strings.NewReader("x"),
	})
	assert.Error(t, err)

	_, err = uc.UploadResource(ctx, domain.UploadResourceReq{
		Branch:    domain.BranchCS,
		SubjectID: "dsa",
		FileName:  "notes.pdf",
		Tag:       domain.Tag("All"), // filter value, not an upload classification
		File:      strings.NewReader("x"),
	})
	assert.Error(t, err)
}

func TestCatalogUseCase_ListResources(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	mockRepo := new(MockResourceRepo)
	rows := []domain.Resource{
		{ID: "r2", SubjectID: "dsa", Tag: domain.TagEndsem, CreatedAt: base.Add(time.Hour)},
		{ID: "r1", SubjectID: "dsa", Tag: domain.TagEndsem, CreatedAt: base},
	}
	mockRepo.On("FindBySubject", domain.BranchCS, "dsa", domain.TagEndsem).Return(rows, nil)

	uc := NewCatalogUseCase(new(MockObjectStore), mockRepo)
	got, err := uc.ListResources(ctx, domain.BranchCS, "dsa", domain.TagEndsem)

	assert.NoError(t, err)
	assert.Equal(t, rows, got)
	mockRepo.AssertExpectations(t)
}

func TestCatalogUseCase_ListResources_EmptyScope(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockResourceRepo)
	mockRepo.On("FindBySubject", domain.BranchIT, "cg", domain.TagAll).Return([]domain.Resource{}, nil)

	uc := NewCatalogUseCase(new(MockObjectStore), mockRepo)
	got, err := uc.ListResources(ctx, domain.BranchIT, "cg", domain.TagAll)

	// nothing uploaded yet is an empty list, not a failure
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCatalogUseCase_ListResources_UnknownSubject(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockResourceRepo)
	uc := NewCatalogUseCase(new(MockObjectStore), mockRepo)

	_, err := uc.ListResources(ctx, domain.BranchCS, "nope", domain.TagAll)
	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "FindBySubject", mock.Anything, mock.Anything, mock.Anything)
}

func TestCatalogUseCase_DownloadResource(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockResourceRepo)
	mockRepo.On("GetByID", "r1").Return(&domain.Resource{
		ID:       "r1",
		FileName: "Stacks and Queues.pdf",
		FileURL:  "http://minio:9000/noteshub/resources/dsa/x.pdf",
	}, nil)

	uc := NewCatalogUseCase(new(MockObjectStore), mockRepo)
	url, name, err := uc.DownloadResource(ctx, "r1")

	assert.NoError(t, err)
	assert.Equal(t, "http://minio:9000/noteshub/resources/dsa/x.pdf", url)
	assert.Equal(t, "Stacks and Queues.pdf", name)
}

func TestCatalogUseCase_Subjects(t *testing.T) {
	uc := NewCatalogUseCase(new(MockObjectStore), new(MockResourceRepo))

	cs, err := uc.Subjects(domain.BranchCS)
	assert.NoError(t, err)
	assert.Len(t, cs, 5)

	it, err := uc.Subjects(domain.BranchIT)
	assert.NoError(t, err)
	assert.Len(t, it, 5)

	_, err = uc.Subjects(domain.Branch("ee"))
	assert.Error(t, err)
}

func TestFileTypeOf(t *testing.T) {
	assert.Equal(t, "PDF", fileTypeOf(".pdf"))
	assert.Equal(t, "PPTX", fileTypeOf(".pptx"))
	assert.Equal(t, "DOC", fileTypeOf(""))
}

func TestSizeLabel(t *testing.T) {
	assert.Equal(t, "3.00 MB", sizeLabel(3*1024*1024))
	assert.Equal(t, "0.50 MB", sizeLabel(512*1024))
}
