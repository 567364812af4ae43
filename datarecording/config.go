package datarecording

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/tebeka/atexit"
)

// A RecorderConfig selects and configures a DataRecorder backend.
type RecorderConfig struct {
	// Type selects the backend, "sqlite" (the default) or "clickhouse".
	Type string

	// Path is the SQLite database path without the ".sqlite3" suffix. If
	// empty, a unique name is generated.
	Path string

	// ConnStr configures ClickHouse in one string, in the form
	// clickhouse://host:port/database?username=u&password=p. It takes
	// precedence over the individual fields below.
	ConnStr string

	Host     string
	Port     int
	Database string
	Username string
	Password string

	// BatchSize is the number of rows buffered before an automatic flush.
	// Zero keeps the backend default.
	BatchSize int
}

// NewWithConfig creates a DataRecorder for the given configuration.
func NewWithConfig(cfg RecorderConfig) DataRecorder {
	switch cfg.Type {
	case "", "sqlite":
		return newSQLiteRecorder(cfg)
	case "clickhouse":
		return newClickHouseRecorder(cfg)
	default:
		panic(fmt.Sprintf("unknown recorder type: %s", cfg.Type))
	}
}

func newSQLiteRecorder(cfg RecorderConfig) DataRecorder {
	batchSize := cfg.BatchSize
	if batchSize == 0 {
		batchSize = 100000
	}

	w := &sqliteWriter{
		dbName:    cfg.Path,
		batchSize: batchSize,
		tables:    make(map[string]*table),
	}

	w.Init()

	atexit.Register(func() { w.Flush() })

	return w
}

func newClickHouseRecorder(cfg RecorderConfig) DataRecorder {
	host := cfg.Host
	port := cfg.Port
	database := cfg.Database
	username := cfg.Username
	password := cfg.Password

	if cfg.ConnStr != "" {
		host, port, database, username, password =
			parseClickHouseConnStr(cfg.ConnStr)
	}

	return NewClickHouse(
		host, port, database, username, password, cfg.BatchSize)
}

func parseClickHouseConnStr(
	connStr string,
) (host string, port int, database, username, password string) {
	u, err := url.Parse(connStr)
	if err != nil {
		panic(fmt.Errorf("invalid ClickHouse connection string: %w", err))
	}

	if u.Scheme != "clickhouse" {
		panic(fmt.Sprintf(
			"invalid ClickHouse connection string scheme: %s", u.Scheme))
	}

	host = u.Hostname()

	port = 9000
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil {
			panic(fmt.Errorf("invalid ClickHouse port: %w", err))
		}
	}

	database = strings.TrimPrefix(u.Path, "/")
	username = u.Query().Get("username")
	password = u.Query().Get("password")

	return host, port, database, username, password
}
