package integration

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/go-redis/redis/v8"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

// TestContext holds the user databases shared by every scenario.
type TestContext struct {
	// Locations maps each available backend to its location. sqlite is
	// always available; the others run in containers.
	Locations  map[store.Kind]string
	Containers []testcontainers.Container
	BinaryPath string
	InlineMode bool

	tempDir   string
	redisAddr string
}

// NewTestContext starts the backend containers.
// Modes:
//   - Inline mode (default): the status server runs in-process
//   - Binary mode: set RELAYDB_BINARY to the path of the relayctl binary
//
// Set RELAYDB_IT_SQLITE_ONLY=1 to skip the containers.
func NewTestContext(ctx context.Context) (*TestContext, error) {
	tempDir, err := os.MkdirTemp("", "relaydb-it-")
	if err != nil {
		return nil, err
	}

	tc := &TestContext{
		Locations:  map[store.Kind]string{store.KindSqlite: filepath.Join(tempDir, "turndb")},
		BinaryPath: os.Getenv("RELAYDB_BINARY"),
		tempDir:    tempDir,
	}
	tc.InlineMode = tc.BinaryPath == ""
	if !tc.InlineMode {
		if _, err := os.Stat(tc.BinaryPath); err != nil {
			tc.Close(ctx)
			return nil, fmt.Errorf("RELAYDB_BINARY path does not exist: %s", tc.BinaryPath)
		}
		log.Printf("Using binary: %s", tc.BinaryPath)
	} else {
		log.Println("Using inline server mode")
	}

	if os.Getenv("RELAYDB_IT_SQLITE_ONLY") == "1" {
		return tc, nil
	}

	for kind, start := range map[store.Kind]func(context.Context) (testcontainers.Container, string, error){
		store.KindPostgresql: startPostgres,
		store.KindMysql:      startMysql,
		store.KindRedis:      startRedis,
	} {
		container, location, err := start(ctx)
		if container != nil {
			tc.Containers = append(tc.Containers, container)
		}
		if err != nil {
			tc.Close(ctx)
			return nil, fmt.Errorf("failed to start %s container: %w", kind, err)
		}
		tc.Locations[kind] = location
		if kind == store.KindRedis {
			host, port, _ := endpoint(ctx, container, "6379")
			tc.redisAddr = host + ":" + port
		}
	}
	return tc, nil
}

func startPostgres(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("turn"),
		tcpostgres.WithUsername("turn"),
		tcpostgres.WithPassword("turn"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return pgContainer, "", err
	}
	host, port, err := endpoint(ctx, pgContainer, "5432")
	if err != nil {
		return pgContainer, "", err
	}
	return pgContainer, fmt.Sprintf("postgres://turn:turn@%s:%s/turn?sslmode=disable", host, port), nil
}

func startMysql(ctx context.Context) (testcontainers.Container, string, error) {
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mysql:8.4",
			ExposedPorts: []string{"3306/tcp"},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": "turn",
				"MYSQL_DATABASE":      "turn",
			},
			WaitingFor: wait.ForAll(
				wait.ForLog("ready for connections").WithOccurrence(2),
				wait.ForListeningPort("3306/tcp"),
			).WithDeadline(120 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return container, "", err
	}
	host, port, err := endpoint(ctx, container, "3306")
	if err != nil {
		return container, "", err
	}
	return container, fmt.Sprintf("root:turn@tcp(%s:%s)/turn", host, port), nil
}

func startRedis(ctx context.Context) (testcontainers.Container, string, error) {
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return container, "", err
	}
	host, port, err := endpoint(ctx, container, "6379")
	if err != nil {
		return container, "", err
	}
	return container, fmt.Sprintf("ip=%s port=%s dbname=0", host, port), nil
}

func endpoint(ctx context.Context, c testcontainers.Container, port string) (string, string, error) {
	host, err := c.Host(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to get container host: %w", err)
	}
	mapped, err := c.MappedPort(ctx, nat.Port(port))
	if err != nil {
		return "", "", fmt.Errorf("failed to get container port: %w", err)
	}
	return host, mapped.Port(), nil
}

// userTables are every table the SQL backends create.
var userTables = []string{
	"turnusers_lt", "turn_secret", "allowed_peer_ip", "denied_peer_ip",
	"turn_origin_to_realm", "turn_realm_option", "oauth_key", "admin_user",
}

// Reset empties the user database of kind.
func (tc *TestContext) Reset(ctx context.Context, kind store.Kind) error {
	location := tc.Locations[kind]
	switch kind {
	case store.KindSqlite:
		for _, suffix := range []string{"", "-wal", "-shm"} {
			if err := os.Remove(location + suffix); err != nil && !os.IsNotExist(err) {
				return err
			}
		}
		return nil
	case store.KindPostgresql, store.KindMysql:
		dialector := gormpostgres.New(gormpostgres.Config{DSN: location, PreferSimpleProtocol: true})
		if kind == store.KindMysql {
			dialector = gormmysql.Open(location)
		}
		db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		defer func() { _ = sqlDB.Close() }()
		for _, table := range userTables {
			// Tables only exist once a driver opened the database.
			_ = db.WithContext(ctx).Exec("DELETE FROM " + table).Error
		}
		return nil
	case store.KindRedis:
		client := redis.NewClient(&redis.Options{Addr: tc.redisAddr})
		defer func() { _ = client.Close() }()
		return client.FlushDB(ctx).Err()
	default:
		return fmt.Errorf("no %s user database in this run", kind)
	}
}

// Close cleans up all test resources
func (tc *TestContext) Close(ctx context.Context) {
	for _, c := range tc.Containers {
		_ = c.Terminate(ctx)
	}
	if tc.tempDir != "" {
		_ = os.RemoveAll(tc.tempDir)
	}
}
