package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/acrsolucoedig-spec/cellparts/internal/db"
)

const (
	dbUser     = "gateway_user"
	dbPassword = "gateway_pass"
	dbName     = "storefront"
)

// StartPostgres runs a throwaway Postgres with the gateway schema migrated and
// returns its DSN plus a func that stops it (also registered with t.Cleanup).
func StartPostgres(t *testing.T) (string, func()) {
	t.Helper()

	addr, terminate := startContainer(t, testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     dbUser,
			"POSTGRES_PASSWORD": dbPassword,
			"POSTGRES_DB":       dbName,
		},
		// initdb restarts the server once, so the ready line shows up twice.
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(90 * time.Second),
	}, "5432/tcp")

	dsn := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable", dbUser, dbPassword, addr, dbName)

	retry(t, "ping postgres", 30*time.Second, func() error {
		conn, err := sql.Open("postgres", dsn)
		if err != nil {
			return err
		}
		defer conn.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return conn.PingContext(ctx)
	})
	require.NoError(t, db.RunMigrations(dsn, log.New(io.Discard, "", 0)))

	return dsn, terminate
}
