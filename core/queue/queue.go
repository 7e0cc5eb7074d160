package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"booker-api/core/config"
	"booker-api/core/logger"

	"github.com/hibiken/asynq"
)

// Publisher enqueues background tasks. Payloads are JSON encoded.
type Publisher interface {
	Enqueue(ctx context.Context, taskType string, payload any) error
}

type HandlerFunc func(ctx context.Context, payload []byte) error

type Client struct {
	client *asynq.Client
}

func redisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func NewClient(cfg config.RedisConfig) *Client {
	return &Client{client: asynq.NewClient(redisOpt(cfg))}
}

func (c *Client) Enqueue(ctx context.Context, taskType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s payload: %w", taskType, err)
	}
	info, err := c.client.EnqueueContext(ctx, asynq.NewTask(taskType, data), asynq.MaxRetry(3))
	if err != nil {
		logger.Error("Queue:Enqueue:Error", "type", taskType, "error", err)
		return fmt.Errorf("failed to enqueue %s: %w", taskType, err)
	}
	logger.Debug("Queue:Enqueue:Done", "type", taskType, "id", info.ID, "queue", info.Queue)
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

func NewWorker(cfg config.RedisConfig, concurrency int) *Worker {
	if concurrency <= 0 {
		concurrency = 1
	}
	server := asynq.NewServer(redisOpt(cfg), asynq.Config{
		Concurrency: concurrency,
		Logger:      asynqLogger{},
	})
	return &Worker{server: server, mux: asynq.NewServeMux()}
}

func (w *Worker) Handle(taskType string, handler HandlerFunc) {
	w.mux.HandleFunc(taskType, func(ctx context.Context, t *asynq.Task) error {
		if err := handler(ctx, t.Payload()); err != nil {
			logger.Error("Queue:Worker:Handle:Error", "type", t.Type(), "error", err)
			return err
		}
		return nil
	})
}

// Start runs the worker in the background.
func (w *Worker) Start() error {
	return w.server.Start(w.mux)
}

func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

type asynqLogger struct{}

func (asynqLogger) Debug(args ...any) { logger.Debug(fmt.Sprint(args...)) }
func (asynqLogger) Info(args ...any)  { logger.Info(fmt.Sprint(args...)) }
func (asynqLogger) Warn(args ...any)  { logger.Warn(fmt.Sprint(args...)) }
func (asynqLogger) Error(args ...any) { logger.Error(fmt.Sprint(args...)) }
func (asynqLogger) Fatal(args ...any) {
	logger.Error(fmt.Sprint(args...))
	os.Exit(1)
}
