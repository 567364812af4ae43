package datarecording

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/tebeka/atexit"
)

// ClickHouseRecorder is a DataRecorder backed by a ClickHouse server. Rows
// are batched per table and sent with the native bulk protocol, which keeps
// long parameter sweeps cheap. The batches are type-specific so inserting
// stays reflection-free. All methods are safe for concurrent use.
type ClickHouseRecorder struct {
	conn      clickhouse.Conn
	mu        sync.Mutex
	batchSize int

	runInfoBatch  []RunProperty
	evictionBatch []EvictionRecord
	snapshotBatch []StatsSnapshot

	tables     map[string]tableType
	entryCount int
}

type tableType int

const (
	tableTypeRunInfo tableType = iota
	tableTypeEviction
	tableTypeSnapshot
)

// NewClickHouse creates a DataRecorder that writes into the given ClickHouse
// database. A zero batchSize falls back to the batch size the SQLite
// recorder uses. NewClickHouse panics if the server cannot be reached.
func NewClickHouse(
	host string,
	port int,
	database string,
	username string,
	password string,
	batchSize int,
) DataRecorder {
	if batchSize == 0 {
		batchSize = 100000
	}

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", host, port)},
		Auth: clickhouse.Auth{
			Database: database,
			Username: username,
			Password: password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		DialTimeout:      time.Second * 30,
		MaxOpenConns:     5,
		MaxIdleConns:     5,
		ConnMaxLifetime:  time.Hour,
		ConnOpenStrategy: clickhouse.ConnOpenInOrder,
		BlockBufferSize:  10,
	})
	if err != nil {
		panic(fmt.Errorf("failed to connect to ClickHouse: %w", err))
	}

	if err := conn.Ping(context.Background()); err != nil {
		panic(fmt.Errorf("failed to ping ClickHouse: %w", err))
	}

	r := &ClickHouseRecorder{
		conn:      conn,
		batchSize: batchSize,
		tables:    make(map[string]tableType),
	}

	atexit.Register(func() { r.Flush() })

	return r
}

// CreateTable creates a table. Only the table row types this package defines
// are supported.
func (r *ClickHouseRecorder) CreateTable(tableName string, sampleEntry any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var createSQL string
	var tType tableType

	switch sampleEntry.(type) {
	case RunProperty:
		tType = tableTypeRunInfo
		createSQL = fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				Property String,
				Value String
			) ENGINE = MergeTree()
			ORDER BY Property
		`, tableName)

	case EvictionRecord:
		tType = tableTypeEviction
		createSQL = fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				Cycle UInt64,
				Cache String,
				SetID Int32,
				WayID Int32,
				Tag UInt64,
				Cost Float64,
				Dirty Bool,
				AccessFreq UInt32,
				WriteCount UInt32,
				BytesUsed UInt32
			) ENGINE = MergeTree()
			ORDER BY (Cache, Cycle)
		`, tableName)

	case StatsSnapshot:
		tType = tableTypeSnapshot
		createSQL = fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				Cycle UInt64,
				Cache String,
				Reads UInt64,
				Writes UInt64,
				Hits UInt64,
				Misses UInt64,
				Evictions UInt64,
				WriteBacks UInt64
			) ENGINE = MergeTree()
			ORDER BY (Cache, Cycle)
		`, tableName)

	default:
		panic(fmt.Sprintf("unsupported table type: %T", sampleEntry))
	}

	err := r.conn.Exec(context.Background(), createSQL)
	if err != nil {
		panic(fmt.Errorf("failed to create table %s: %w", tableName, err))
	}

	r.tables[tableName] = tType
}

// InsertData buffers one row for a table that already exists.
func (r *ClickHouseRecorder) InsertData(tableName string, entry any) {
	r.mu.Lock()

	tType, exists := r.tables[tableName]
	if !exists {
		r.mu.Unlock()
		panic(fmt.Sprintf("table %s does not exist", tableName))
	}

	switch tType {
	case tableTypeRunInfo:
		e, ok := entry.(RunProperty)
		if !ok {
			r.mu.Unlock()
			panic(fmt.Sprintf("invalid entry type for %s: %T", tableName, entry))
		}
		r.runInfoBatch = append(r.runInfoBatch, e)

	case tableTypeEviction:
		e, ok := entry.(EvictionRecord)
		if !ok {
			r.mu.Unlock()
			panic(fmt.Sprintf("invalid entry type for %s: %T", tableName, entry))
		}
		r.evictionBatch = append(r.evictionBatch, e)

	case tableTypeSnapshot:
		e, ok := entry.(StatsSnapshot)
		if !ok {
			r.mu.Unlock()
			panic(fmt.Sprintf("invalid entry type for %s: %T", tableName, entry))
		}
		r.snapshotBatch = append(r.snapshotBatch, e)
	}

	r.entryCount++

	if r.entryCount >= r.batchSize {
		r.mu.Unlock()
		r.Flush()
		return
	}

	r.mu.Unlock()
}

// ListTables returns the names of all created tables.
func (r *ClickHouseRecorder) ListTables() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	tables := make([]string, 0, len(r.tables))
	for name := range r.tables {
		tables = append(tables, name)
	}

	return tables
}

// Flush sends all batched rows to ClickHouse using bulk inserts.
func (r *ClickHouseRecorder) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entryCount == 0 {
		return
	}

	ctx := context.Background()

	for tableName, tType := range r.tables {
		switch tType {
		case tableTypeRunInfo:
			if len(r.runInfoBatch) > 0 {
				r.flushRunInfo(ctx, tableName)
			}
		case tableTypeEviction:
			if len(r.evictionBatch) > 0 {
				r.flushEvictions(ctx, tableName)
			}
		case tableTypeSnapshot:
			if len(r.snapshotBatch) > 0 {
				r.flushSnapshots(ctx, tableName)
			}
		}
	}

	r.entryCount = 0
}

func (r *ClickHouseRecorder) flushRunInfo(
	ctx context.Context,
	tableName string,
) {
	batch, err := r.conn.PrepareBatch(ctx, "INSERT INTO "+tableName)
	if err != nil {
		panic(fmt.Errorf("failed to prepare batch for %s: %w", tableName, err))
	}

	for _, entry := range r.runInfoBatch {
		err = batch.Append(entry.Property, entry.Value)
		if err != nil {
			panic(fmt.Errorf("failed to append to batch: %w", err))
		}
	}

	err = batch.Send()
	if err != nil {
		panic(fmt.Errorf("failed to send batch: %w", err))
	}

	r.runInfoBatch = r.runInfoBatch[:0]
}

func (r *ClickHouseRecorder) flushEvictions(
	ctx context.Context,
	tableName string,
) {
	batch, err := r.conn.PrepareBatch(ctx, "INSERT INTO "+tableName)
	if err != nil {
		panic(fmt.Errorf("failed to prepare batch for %s: %w", tableName, err))
	}

	for _, entry := range r.evictionBatch {
		err = batch.Append(
			entry.Cycle,
			entry.Cache,
			int32(entry.SetID),
			int32(entry.WayID),
			entry.Tag,
			entry.Cost,
			entry.Dirty,
			entry.AccessFreq,
			entry.WriteCount,
			entry.BytesUsed,
		)
		if err != nil {
			panic(fmt.Errorf("failed to append to batch: %w", err))
		}
	}

	err = batch.Send()
	if err != nil {
		panic(fmt.Errorf("failed to send batch: %w", err))
	}

	r.evictionBatch = r.evictionBatch[:0]
}

func (r *ClickHouseRecorder) flushSnapshots(
	ctx context.Context,
	tableName string,
) {
	batch, err := r.conn.PrepareBatch(ctx, "INSERT INTO "+tableName)
	if err != nil {
		panic(fmt.Errorf("failed to prepare batch for %s: %w", tableName, err))
	}

	for _, entry := range r.snapshotBatch {
		err = batch.Append(
			entry.Cycle,
			entry.Cache,
			entry.Reads,
			entry.Writes,
			entry.Hits,
			entry.Misses,
			entry.Evictions,
			entry.WriteBacks,
		)
		if err != nil {
			panic(fmt.Errorf("failed to append to batch: %w", err))
		}
	}

	err = batch.Send()
	if err != nil {
		panic(fmt.Errorf("failed to send batch: %w", err))
	}

	r.snapshotBatch = r.snapshotBatch[:0]
}

// Close flushes remaining rows and closes the connection.
func (r *ClickHouseRecorder) Close() error {
	r.Flush()

	err := r.conn.Close()
	if err != nil {
		return fmt.Errorf("failed to close ClickHouse connection: %w", err)
	}

	return nil
}
