// Package notifications publishes interaction events into Redis channels
// for downstream consumers (digests, activity feeds). Delivery is best
// effort: a nil client or a publish failure never blocks the request.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"

	"github.com/redis/go-redis/v9"
)

// Notifier provides helpers to publish events into Redis channels
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// UserChannel derives the Redis channel name for a user's event stream.
func UserChannel(uid string) string {
	return "events:user:" + uid
}

// PublishFollow announces a follow or unfollow to the target user's channel.
func (n *Notifier) PublishFollow(ctx context.Context, targetUID, followerUID string, following bool) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	payload := map[string]interface{}{
		"type":      "follow",
		"uid":       followerUID,
		"following": following,
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return n.rdb.Publish(ctx, UserChannel(targetUID), string(payloadJSON)).Err()
}

// PublishComment announces a new comment on a post to the post author's channel.
func (n *Notifier) PublishComment(ctx context.Context, authorUID, commenterUID, postID, commentID string) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	payload := map[string]interface{}{
		"type":      "comment",
		"uid":       commenterUID,
		"postId":    postID,
		"commentId": commentID,
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return n.rdb.Publish(ctx, UserChannel(authorUID), string(payloadJSON)).Err()
}

// PublishInteraction announces a like or save action on a post.
func (n *Notifier) PublishInteraction(ctx context.Context, authorUID, actorUID, postID, action string) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	payload := map[string]interface{}{
		"type":   "interaction",
		"uid":    actorUID,
		"postId": postID,
		"action": action,
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return n.rdb.Publish(ctx, UserChannel(authorUID), string(payloadJSON)).Err()
}

// PublishPostCreated announces a publish outcome to the author's channel.
func (n *Notifier) PublishPostCreated(ctx context.Context, authorUID, postID string, duplicate bool) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	payload := map[string]interface{}{
		"type":      "publish",
		"postId":    postID,
		"duplicate": duplicate,
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return n.rdb.Publish(ctx, UserChannel(authorUID), string(payloadJSON)).Err()
}

// StartPatternSubscriber subscribes to pattern `events:user:*` and calls
// onMessage for each incoming message. onMessage receives channel and payload.
func (n *Notifier) StartPatternSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, "events:user:*")
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in PatternSubscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}
