package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueReconcile = "jobs:reconcile"

	maxAttempts = 3
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// ReconcilePayload targets either one item's containers or an explicit
// package list.
type ReconcilePayload struct {
	ItemID     *uuid.UUID  `json:"item_id,omitempty"`
	PackageIDs []uuid.UUID `json:"package_ids,omitempty"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueReconcileItem queues a total refresh for every package containing
// the item.
func (d *Dispatcher) EnqueueReconcileItem(ctx context.Context, itemID uuid.UUID) error {
	return d.enqueue(ctx, ReconcilePayload{ItemID: &itemID})
}

// EnqueueReconcilePackages queues a total refresh for an explicit package set.
func (d *Dispatcher) EnqueueReconcilePackages(ctx context.Context, packageIDs []uuid.UUID) error {
	return d.enqueue(ctx, ReconcilePayload{PackageIDs: packageIDs})
}

func (d *Dispatcher) enqueue(ctx context.Context, payload ReconcilePayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: "reconcile", Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, QueueReconcile, encoded).Err()
}

// StartWorkerPool launches numWorkers goroutines consuming the reconcile
// queue. Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, rec *Reconciler, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, rec, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, rec *Reconciler, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueReconcile).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, rec, result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, rec *Reconciler, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal job")
		return
	}

	var payload ReconcilePayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		SendToDLQ(ctx, rdb, QueueReconcile, job.Type, job.Payload, "malformed payload: "+err.Error(), job.Attempts)
		return
	}

	var err error
	switch {
	case payload.ItemID != nil:
		err = rec.ReconcileItem(ctx, *payload.ItemID)
	case len(payload.PackageIDs) > 0:
		err = rec.ReconcilePackages(ctx, payload.PackageIDs)
	default:
		return // empty job, nothing to do
	}
	if err == nil {
		return
	}

	job.Attempts++
	if job.Attempts >= maxAttempts {
		SendToDLQ(ctx, rdb, QueueReconcile, job.Type, job.Payload, err.Error(), job.Attempts)
		return
	}
	// Requeue for another attempt
	encoded, marshalErr := json.Marshal(job)
	if marshalErr != nil {
		log.Error().Err(marshalErr).Msg("failed to requeue job")
		return
	}
	if pushErr := rdb.LPush(ctx, QueueReconcile, encoded).Err(); pushErr != nil {
		log.Error().Err(pushErr).Msg("failed to requeue job")
	}
	log.Warn().Err(err).Int("attempts", job.Attempts).Msg("reconcile job failed, requeued")
}
