//go:build database

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestStudytrackWithMySQL tests the studytrack CLI with a MySQL backend.
func TestStudytrackWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "studytrack",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/studytrack?parseTime=true", host, port.Port())
	t.Setenv("STUDYTRACK_DB_BACKEND", "mysql")
	t.Setenv("STUDYTRACK_DB_CONNECT", connStr)

	runStoreLifecycle(t)
}

// TestStudytrackWithPostgres tests the studytrack CLI with a PostgreSQL backend.
func TestStudytrackWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	t.Setenv("STUDYTRACK_DB_BACKEND", "postgresql")
	t.Setenv("STUDYTRACK_DB_CONNECT", connStr)

	runStoreLifecycle(t)
}

// runStoreLifecycle clears, fills, checks, rolls back and re-migrates the store.
func runStoreLifecycle(t *testing.T) {
	t.Helper()

	runStudytrack(t, "store", "clear")
	verifyStore(t)

	out := runStudytrack(t, "store", "status")
	require.Contains(t, out, "11")

	out = runStudytrack(t, "notebook", "create", "--name", "wrong math", "--subject", "math", "--incorrect")
	require.Contains(t, out, "with 2 questions")

	out = runStudytrack(t, "store", "migrate", "--migrate-to", "0")
	require.Contains(t, out, "to 0")

	out = runStudytrack(t, "store", "migrate")
	require.Contains(t, out, "from version 0")

	runStudytrack(t, "store", "clear")
}
