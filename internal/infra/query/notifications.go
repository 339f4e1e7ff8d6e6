package query

import (
	"context"
	"time"
)

const createNotificationJob = `
INSERT INTO notification_jobs (kind, topic, payload, status, run_at)
VALUES ($1, $2, $3, $4, $5)`

type CreateNotificationJobParams struct {
	Kind    string
	Topic   string
	Payload []byte
	Status  string
	RunAt   time.Time
}

func (q *Queries) CreateNotificationJob(ctx context.Context, db DBTX, arg CreateNotificationJobParams) error {
	_, err := db.Exec(ctx, createNotificationJob, arg.Kind, arg.Topic, arg.Payload, arg.Status, arg.RunAt)
	return err
}
