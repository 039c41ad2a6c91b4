package repository

import (
	"context"
	"fmt"
	"time"

	"VolSentry/internal/domain/models"
	"VolSentry/internal/domain/repository"
	"VolSentry/pkg/clickhouse"
	"VolSentry/pkg/logger"
)

var tradeSchema = []string{
	`CREATE TABLE IF NOT EXISTS trades (
		symbol    LowCardinality(String),
		ts        DateTime,
		price     Float64,
		quantity  Float64,
		notional  Float64
	) ENGINE = MergeTree()
	PARTITION BY toYYYYMMDD(ts)
	ORDER BY (symbol, ts)
	TTL ts + INTERVAL 30 DAY`,
}

// ClickHouseTradeArchive batches raw trades into ClickHouse. Record is
// non-blocking: when the queue is full the trade is dropped so the hot
// ingestion path never stalls on the archive.
type ClickHouseTradeArchive struct {
	client        *clickhouse.Client
	log           *logger.Logger
	queue         chan *models.Trade
	batchSize     int
	flushInterval time.Duration
	done          chan struct{}
	stopped       chan struct{}
}

// ArchiveOptions tunes batching behavior.
type ArchiveOptions struct {
	BatchSize     int
	FlushInterval time.Duration
	QueueSize     int
}

// NewClickHouseTradeArchive initializes the trades table and starts the
// background flush loop.
func NewClickHouseTradeArchive(client *clickhouse.Client, log *logger.Logger, opts ArchiveOptions) (repository.TradeRecorder, error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 500
	}
	if opts.FlushInterval <= 0 {
		opts.FlushInterval = 5 * time.Second
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 4096
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, tradeSchema); err != nil {
		return nil, fmt.Errorf("trade archive schema: %w", err)
	}

	a := &ClickHouseTradeArchive{
		client:        client,
		log:           log,
		queue:         make(chan *models.Trade, opts.QueueSize),
		batchSize:     opts.BatchSize,
		flushInterval: opts.FlushInterval,
		done:          make(chan struct{}),
		stopped:       make(chan struct{}),
	}
	go a.run()
	return a, nil
}

func (a *ClickHouseTradeArchive) Record(t *models.Trade) {
	select {
	case a.queue <- t:
	default:
		// queue full, drop rather than block ingestion
	}
}

// Close flushes whatever is pending and stops the loop.
func (a *ClickHouseTradeArchive) Close() error {
	close(a.done)
	<-a.stopped
	return nil
}

func (a *ClickHouseTradeArchive) run() {
	defer close(a.stopped)

	ticker := time.NewTicker(a.flushInterval)
	defer ticker.Stop()

	batch := make([]*models.Trade, 0, a.batchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := a.insert(batch); err != nil {
			a.log.Error("trade archive flush failed",
				logger.Int("batch_size", len(batch)),
				logger.Error(err))
		}
		batch = batch[:0]
	}

	for {
		select {
		case t := <-a.queue:
			batch = append(batch, t)
			if len(batch) >= a.batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-a.done:
			// drain what is already queued, then final flush
			for {
				select {
				case t := <-a.queue:
					batch = append(batch, t)
					if len(batch) >= a.batchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		}
	}
}

func (a *ClickHouseTradeArchive) insert(batch []*models.Trade) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tx, err := a.client.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO trades (symbol, ts, price, quantity, notional) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare batch: %w", err)
	}
	for _, t := range batch {
		if _, err := stmt.ExecContext(ctx,
			t.Symbol, time.Unix(t.Timestamp, 0), t.Price, t.Quantity, t.Notional()); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("append row: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}
