package runners

import (
	"context"
	"errors"
	"time"

	"github.com/gammazero/workerpool"
	"github.com/google/uuid"
	"gitlab.com/BIC_Dev/reaction-role-manager/utils/logging"
	"go.uber.org/zap"
)

// ReconcileReactions periodically re-asserts the bot's decorative emoji
// reaction on every configured message. Missing reactions happen when the
// best-effort react failed at finalize time or someone removed the bot's
// reaction; re-adding an existing own-reaction is a no-op for Discord.
func (r *Runners) ReconcileReactions(ctx context.Context, delay time.Duration) {
	ctx = logging.AddValues(ctx,
		zap.String("scope", logging.GetFuncName()),
		zap.String("runner", "reconcile"),
	)

	if delay != 0 {
		time.Sleep(time.Second * delay)
	}

	ticker := time.NewTicker(r.Config.Runners.Reconcile.Frequency * time.Second)

	wp := workerpool.New(r.Config.Runners.Reconcile.Workers)

	for range ticker.C {
		requestID := uuid.New()
		gCtx := logging.AddValues(ctx, zap.String("request_id", requestID.String()))

		if wp.WaitingQueueSize() > 0 {
			newCtx := logging.AddValues(gCtx,
				zap.Int("queue_size", wp.WaitingQueueSize()),
				zap.NamedError("error", errors.New("queue not empty")),
				zap.String("error_message", "cannot start new reconcile run with non-empty queue"),
			)
			logger := logging.Logger(newCtx)
			logger.Error("runner_log")
			continue
		}

		startCtx := logging.AddValues(gCtx, zap.String("runner_message", "Started reaction reconcile runner"))
		logger := logging.Logger(startCtx)
		logger.Info("runner_log")

		bindings := r.Storage.Bindings(gCtx)

		for messageID, messageBindings := range bindings {
			channelID, ok := r.Storage.ChannelForMessage(gCtx, messageID)
			if !ok {
				newCtx := logging.AddValues(gCtx,
					zap.String("message_id", messageID),
					zap.NamedError("error", errors.New("no channel recorded")),
					zap.String("error_message", "cannot reconcile message without a channel"),
				)
				logger := logging.Logger(newCtx)
				logger.Error("runner_log")
				continue
			}

			messageID := messageID
			messageBindings := messageBindings
			mCtx := logging.AddValues(gCtx,
				zap.String("message_id", messageID),
				zap.String("channel_id", channelID),
			)

			wp.Submit(func() {
				for _, binding := range messageBindings {
					if arErr := r.Discord.AddReaction(channelID, messageID, binding.Emoji); arErr != nil {
						newCtx := logging.AddValues(mCtx,
							zap.NamedError("error", arErr.Err),
							zap.String("error_message", arErr.Message),
							zap.Int("status_code", arErr.Code),
							zap.String("emoji", binding.Emoji),
						)
						logger := logging.Logger(newCtx)
						logger.Error("runner_log")
					}
				}
			})
		}
	}
}
