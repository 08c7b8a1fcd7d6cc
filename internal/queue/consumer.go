package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "github.com/redis/go-redis/v9"

    "github.com/movify/movify-server/internal/config"
    "github.com/movify/movify-server/internal/middleware"
)

// StartStatusConsumer connects to RabbitMQ, declares the status.changed
// queue (durable), and starts consuming messages. Each event drops the
// cached catalog reads for its movie and appends an audit line to
// logs/status.log. The function runs a reconnect loop; it keeps running and
// logs any processing errors while rejecting the offending message so the
// server continues operating. A nil redis client disables cache
// invalidation but the audit trail is still written.
func StartStatusConsumer(rdb *redis.Client, cacheCfg config.CacheConfig) error {
    backoff := time.Second
    for {
        conn, err := amqp.Dial(brokerURL())
        if err != nil {
            log.Printf("status-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
            time.Sleep(backoff)
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second // reset after successful connect

        if err := consumeLoop(conn, rdb, cacheCfg); err != nil {
            log.Printf("status-consumer: consume loop ended: %v; reconnecting", err)
            time.Sleep(2 * time.Second)
            continue
        }
    }
}

func consumeLoop(conn *amqp.Connection, rdb *redis.Client, cacheCfg config.CacheConfig) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        log.Printf("status-consumer: set QoS failed: %v", err)
    }

    _, err = ch.QueueDeclare(statusQueueName, true, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }

    msgs, err := ch.Consume(statusQueueName, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for d := range msgs {
        if err := handleMessage(d.Body, rdb, cacheCfg); err != nil {
            log.Printf("status-consumer: handle message failed: %v", err)
            _ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
            continue
        }
        _ = d.Ack(false)
    }
    return errors.New("deliveries channel closed")
}

func handleMessage(body []byte, rdb *redis.Client, cacheCfg config.CacheConfig) error {
    var ev StatusChangedEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }

    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    if err := middleware.InvalidateMovie(ctx, rdb, cacheCfg, ev.MovieID); err != nil {
        // Stale cache entries expire on their own; log and keep the message.
        log.Printf("status-consumer: invalidate movie %d failed: %v", ev.MovieID, err)
    }

    return appendAuditLine(ev)
}

func appendAuditLine(ev StatusChangedEvent) error {
    if err := os.MkdirAll("logs", 0o755); err != nil {
        return fmt.Errorf("mkdir logs: %w", err)
    }
    fpath := filepath.Join("logs", "status.log")
    f, err := os.OpenFile(fpath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()

    sched := ev.ScheduledDate
    if sched == "" {
        sched = "-"
    }
    line := fmt.Sprintf("[%s] Status changed | movie_id=%d | action=%s | status=%s | favorite=%t | scheduled=%s | removed=%t\n",
        ev.ChangedAt, ev.MovieID, ev.Action, ev.Status, ev.IsFavorite, sched, ev.Removed)

    if _, err := f.WriteString(line); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}
