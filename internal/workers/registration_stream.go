package workers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"secret-santa-backend/internal/common/logger"
	"secret-santa-backend/internal/features/codes/models"
	codessvc "secret-santa-backend/internal/features/codes/service"
)

const (
	consumerGroup = "santa_backend"

	EventRegisterRequested  = "register_requested"
	EventRegistrationFailed = "registration_failed"
)

// Redeemer turns an invite code into a participant.
type Redeemer interface {
	Redeem(ctx context.Context, in models.Redemption) (*models.RedeemResult, error)
}

// Publisher reports outcomes back to the chat bot.
type Publisher interface {
	Publish(ctx context.Context, eventType string, fields map[string]interface{}) (string, error)
}

// RegistrationWorker consumes registration requests the chat bot appends to
// a redis stream and redeems them. Successful registrations are announced by
// the issuer itself; failures are published here with a reason.
type RegistrationWorker struct {
	rdb       redis.Cmdable
	stream    string
	consumer  string
	block     time.Duration
	redeemer  Redeemer
	publisher Publisher
}

func NewRegistrationWorker(rdb redis.Cmdable, stream, consumer string, redeemer Redeemer, publisher Publisher) *RegistrationWorker {
	return &RegistrationWorker{
		rdb:       rdb,
		stream:    stream,
		consumer:  consumer,
		block:     5 * time.Second,
		redeemer:  redeemer,
		publisher: publisher,
	}
}

// Start runs until ctx is cancelled. Entries this consumer read but never
// acked, for example when the process died mid batch, are handled first.
func (w *RegistrationWorker) Start(ctx context.Context) {
	if err := w.ensureGroup(ctx); err != nil {
		logger.Error().Err(err).Str("stream", w.stream).Msg("failed to create consumer group")
		return
	}
	if err := w.ProcessPending(ctx); err != nil {
		logger.Warn().Err(err).Str("stream", w.stream).Msg("failed to replay pending registration requests")
	}

	logger.Info().Str("stream", w.stream).Str("consumer", w.consumer).Msg("Registration stream worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Registration stream worker stopped")
			return
		default:
		}

		if _, err := w.ProcessBatch(ctx); err != nil && ctx.Err() == nil {
			logger.Warn().Err(err).Str("stream", w.stream).Msg("failed to read registration stream")
			time.Sleep(time.Second)
		}
	}
}

// ensureGroup creates the group at the start of the stream so requests the
// bot queued before the first deploy are not skipped.
func (w *RegistrationWorker) ensureGroup(ctx context.Context) error {
	err := w.rdb.XGroupCreateMkStream(ctx, w.stream, consumerGroup, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

// ProcessBatch reads and acknowledges up to ten new entries. It returns the
// number of entries handled; an empty read is not an error.
func (w *RegistrationWorker) ProcessBatch(ctx context.Context) (int, error) {
	return w.process(ctx, ">", w.block)
}

// ProcessPending handles entries delivered to this consumer earlier but
// never acked.
func (w *RegistrationWorker) ProcessPending(ctx context.Context) error {
	for {
		n, err := w.process(ctx, "0", -1)
		if err != nil || n == 0 {
			return err
		}
	}
}

func (w *RegistrationWorker) process(ctx context.Context, from string, block time.Duration) (int, error) {
	streams, err := w.rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    consumerGroup,
		Consumer: w.consumer,
		Streams:  []string{w.stream, from},
		Count:    10,
		Block:    block,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}

	// Entries already read are finished and acked even when shutdown starts.
	work := context.WithoutCancel(ctx)

	n := 0
	for _, s := range streams {
		for _, msg := range s.Messages {
			w.handle(work, msg.ID, msg.Values)
			if err := w.rdb.XAck(work, w.stream, consumerGroup, msg.ID).Err(); err != nil {
				logger.Warn().Err(err).Str("id", msg.ID).Msg("failed to ack registration request")
			}
			n++
		}
	}
	return n, nil
}

func (w *RegistrationWorker) handle(ctx context.Context, id string, values map[string]interface{}) {
	if eventType, _ := values["type"].(string); eventType != EventRegisterRequested {
		return
	}

	in, err := parseRedemption(values)
	if err != nil {
		w.fail(ctx, id, values, "invalid_input", err)
		return
	}

	res, err := w.redeemer.Redeem(ctx, in)
	if err != nil {
		w.fail(ctx, id, values, failureReason(err), err)
		return
	}

	logger.Debug().Str("id", id).Int64("participant_id", res.ParticipantID).Msg("registration request processed")
}

func (w *RegistrationWorker) fail(ctx context.Context, id string, values map[string]interface{}, reason string, cause error) {
	logger.Info().Err(cause).Str("id", id).Str("reason", reason).Msg("registration request rejected")
	if w.publisher == nil {
		return
	}

	fields := map[string]interface{}{
		"request_id": id,
		"reason":     reason,
	}
	for _, k := range []string{"telegram_id", "code"} {
		if v, ok := values[k]; ok {
			fields[k] = v
		}
	}
	if _, err := w.publisher.Publish(ctx, EventRegistrationFailed, fields); err != nil {
		logger.Warn().Err(err).Str("id", id).Msg("failed to publish registration failure")
	}
}

func parseRedemption(values map[string]interface{}) (models.Redemption, error) {
	code, _ := values["code"].(string)
	name, _ := values["name"].(string)
	rawID, _ := values["telegram_id"].(string)

	telegramID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return models.Redemption{}, fmt.Errorf("invalid telegram_id %q", rawID)
	}
	return models.Redemption{Code: code, Name: name, TelegramID: telegramID}, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, codessvc.ErrCodeNotFound):
		return "code_not_found"
	case errors.Is(err, codessvc.ErrCodeAlreadyUsed):
		return "code_already_used"
	case errors.Is(err, codessvc.ErrAlreadyRegistered):
		return "already_registered"
	case errors.Is(err, codessvc.ErrInvalidInput):
		return "invalid_input"
	default:
		return "internal"
	}
}
