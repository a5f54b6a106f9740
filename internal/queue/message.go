package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newMessage(payload any) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("failed to encode payload: %w", err)
	}

	return Message{
		ID:      uuid.NewString(),
		Payload: data,
	}, nil
}

// dispatch runs handler on msg, turning panics into logged errors.
func dispatch(ctx context.Context, handler Handler, msg Message, logger *zap.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("queue handler panicked", zap.String("id", msg.ID), zap.Any("panic", r))
		}
	}()

	if handler == nil {
		logger.Error("message dropped", zap.String("id", msg.ID), zap.Error(ErrNoHandler))
		return
	}

	if err := handler(ctx, msg); err != nil {
		logger.Error("failed to process message", zap.String("id", msg.ID), zap.Error(err))
		return
	}

	logger.Debug("message processed", zap.String("id", msg.ID))
}
