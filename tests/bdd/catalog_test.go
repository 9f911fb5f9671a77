package bdd

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"testing"
	"time"

	catalogapp "noteshub/internal/catalog/app"
	"noteshub/internal/catalog/domain"
	"noteshub/pkg/logger"

	"github.com/cucumber/godog"
)

func TestCatalogFeatures(t *testing.T) {
	logger.SetNewNop()
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeCatalogScenario,
		Options: &godog.Options{
			Paths:  []string{"./featureFiles/catalog.feature"},
			Format: "pretty",
			Output: os.Stdout,
		},
	}

	if suite.Run() != 0 {
		t.Fail()
	}
}

// InitializeCatalogScenario register catalog step definitions
func InitializeCatalogScenario(s *godog.ScenarioContext) {
	s.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		catalogState = newCatalogScenarioState()
		return ctx, nil
	})

	s.Step(`^an empty catalog$`, anEmptyCatalog)
	s.Step(`^I upload "([^"]*)" tagged "([^"]*)" to "([^"]*)"$`, iUploadTaggedTo)
	s.Step(`^I upload nothing to "([^"]*)"$`, iUploadNothingTo)
	s.Step(`^listing "([^"]*)" with tag "([^"]*)" returns (\d+) resources?$`, listingReturns)
	s.Step(`^the upload fails$`, theUploadFails)
}

// in-memory stand-ins behind the real usecase

type memoryResourceRepo struct {
	rows []domain.Resource
}

func (m *memoryResourceRepo) AutoMigrate() error { return nil }

func (m *memoryResourceRepo) Create(resource *domain.Resource) error {
	m.rows = append(m.rows, *resource)
	return nil
}

func (m *memoryResourceRepo) GetByID(id string) (*domain.Resource, error) {
	for i := range m.rows {
		if m.rows[i].ID == id {
			return &m.rows[i], nil
		}
	}
	return nil, fmt.Errorf("resource %s not found", id)
}

func (m *memoryResourceRepo) FindBySubject(branch domain.Branch, subjectID string, tag domain.Tag) ([]domain.Resource, error) {
	out := []domain.Resource{}
	for _, r := range m.rows {
		if r.Branch != branch || r.SubjectID != subjectID {
			continue
		}
		if tag != domain.TagAll && r.Tag != tag {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type memoryObjectStore struct {
	objects map[string][]byte
}

func (m *memoryObjectStore) UploadObject(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.objects[objectName] = data
	return nil
}

func (m *memoryObjectStore) PublicURL(objectName string) string {
	return "http://store.local/" + objectName
}

func (m *memoryObjectStore) PresignGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	return m.PublicURL(objectName), nil
}

type catalogScenarioState struct {
	uc      catalogapp.CatalogUseCase
	lastErr error
}

func newCatalogScenarioState() *catalogScenarioState {
	return &catalogScenarioState{
		uc: catalogapp.NewCatalogUseCase(
			&memoryObjectStore{objects: map[string][]byte{}},
			&memoryResourceRepo{},
		),
	}
}

var catalogState *catalogScenarioState

func splitScope(scope string) (domain.Branch, string) {
	parts := strings.SplitN(scope, "/", 2)
	return domain.Branch(parts[0]), parts[1]
}

func anEmptyCatalog() error {
	catalogState = newCatalogScenarioState()
	return nil
}

func iUploadTaggedTo(fileName, tag, scope string) error {
	branch, subjectID := splitScope(scope)
	_, catalogState.lastErr = catalogState.uc.UploadResource(context.Background(), domain.UploadResourceReq{
		Branch:    branch,
		SubjectID: subjectID,
		FileName:  fileName,
		FileSize:  1024,
		Tag:       domain.Tag(tag),
		File:      strings.NewReader("content"),
	})
	return nil
}

func iUploadNothingTo(scope string) error {
	branch, subjectID := splitScope(scope)
	_, catalogState.lastErr = catalogState.uc.UploadResource(context.Background(), domain.UploadResourceReq{
		Branch:    branch,
		SubjectID: subjectID,
		FileName:  "notes.pdf",
		Tag:       domain.TagOther,
	})
	return nil
}

func listingReturns(scope, tag string, count int) error {
	branch, subjectID := splitScope(scope)
	got, err := catalogState.uc.ListResources(context.Background(), branch, subjectID, domain.Tag(tag))
	if err != nil {
		return err
	}
	if len(got) != count {
		return fmt.Errorf("expected %d resources, got %d", count, len(got))
	}
	return nil
}

func theUploadFails() error {
	if catalogState.lastErr == nil {
		return fmt.Errorf("expected the upload to fail")
	}
	return nil
}
