package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"noteshub/internal/catalog/domain"
	"noteshub/pkg/database"
	"noteshub/pkg/logger"
	testtool "noteshub/pkg/test_tool"

	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgres(t *testing.T) ResourceRepo {
	if os.Getenv("INTEGRATION_TEST") == "" {
		t.Skip("INTEGRATION_TEST not set, skipping container test")
	}

	logger.SetNewNop()
	ctx := context.Background()

	container, host, port, err := testtool.SetupContainer(ctx, testcontainers.ContainerRequest{
		Image: "postgres:latest",
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	})
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	db, err := database.NewPGConnection(database.Connection{
		ConnectStr:    fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port),
		RetryCount:    5,
		RetryInterval: 2,
	})
	if err != nil {
		t.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}

	repo := NewResourceRepo(db)
	if err := repo.AutoMigrate(); err != nil {
		t.Fatalf("Migration failed: %v", err)
	}
	return repo
}

func TestResourceRepo_FindBySubject(t *testing.T) {
	repo := setupPostgres(t)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	seed := []domain.Resource{
		{ID: "r1", Branch: domain.BranchCS, SubjectID: "dsa", FileName: "old.pdf", Tag: domain.TagEndsem, FileURL: "u1", CreatedAt: base},
		{ID: "r2", Branch: domain.BranchCS, SubjectID: "dsa", FileName: "new.pdf", Tag: domain.TagMidterm, FileURL: "u2", CreatedAt: base.Add(time.Hour)},
		{ID: "r3", Branch: domain.BranchCS, SubjectID: "mp", FileName: "other-subject.pdf", Tag: domain.TagEndsem, FileURL: "u3", CreatedAt: base},
		{ID: "r4", Branch: domain.BranchIT, SubjectID: "dsa", FileName: "other-branch.pdf", Tag: domain.TagEndsem, FileURL: "u4", CreatedAt: base},
	}
	for i := range seed {
		assert.NoError(t, repo.Create(&seed[i]))
	}

	t.Run("All lists the whole scope newest first", func(t *testing.T) {
		got, err := repo.FindBySubject(domain.BranchCS, "dsa", domain.TagAll)
		assert.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, "r2", got[0].ID)
		assert.Equal(t, "r1", got[1].ID)
	})

	t.Run("tag filter narrows the scope", func(t *testing.T) {
		got, err := repo.FindBySubject(domain.BranchCS, "dsa", domain.TagMidterm)
		assert.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, "r2", got[0].ID)
	})

	t.Run("empty scope yields an empty slice", func(t *testing.T) {
		got, err := repo.FindBySubject(domain.BranchIT, "cg", domain.TagAll)
		assert.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("GetByID round trip", func(t *testing.T) {
		got, err := repo.GetByID("r1")
		assert.NoError(t, err)
		assert.Equal(t, "old.pdf", got.FileName)

		_, err = repo.GetByID("missing")
		assert.Error(t, err)
	})
}
