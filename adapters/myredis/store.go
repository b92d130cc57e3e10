package myredis

import (
	"context"
	"errors"
	"fmt"

	"facilitator/domain"
	"facilitator/service"

	"github.com/go-redis/redis/v8"
)

// addScript appends ARGV[1] to the queue list KEYS[1] unless it is already
// a member of the index set KEYS[2].
var addScript = redis.NewScript(`
if redis.call("SADD", KEYS[2], ARGV[1]) == 0 then
	return 0
end
redis.call("RPUSH", KEYS[1], ARGV[1])
return 1
`)

// takeScript pops the head of the queue list KEYS[1] and drops it from the
// index set KEYS[2].
var takeScript = redis.NewScript(`
local v = redis.call("LPOP", KEYS[1])
if not v then
	return false
end
redis.call("SREM", KEYS[2], v)
return v
`)

type redisStore struct {
	client     redis.UniversalClient
	queueKey   string
	membersKey string
}

// NewStore creates redis implementation of interfaces.RegistrationStore.
// Endpoints are stored in their formatted form, queued in a list and
// indexed in a set; both are updated by one script per operation.
func NewStore(client redis.UniversalClient, prefix string) *redisStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &redisStore{
		client:     client,
		queueKey:   prefix + ":queue",
		membersKey: prefix + ":members",
	}
}

func (r *redisStore) Add(ctx context.Context, endpoint domain.Endpoint) (bool, error) {
	member := endpoint.String()
	added, err := addScript.Run(ctx, r.client, []string{r.queueKey, r.membersKey}, member).Int()
	if err != nil {
		return false, service.NewInternalServerError("Redis add registration error", fmt.Errorf("can't add %s to redis (key='%s'), err: %w", member, r.queueKey, err))
	}
	return added == 1, nil
}

func (r *redisStore) Take(ctx context.Context) (domain.Endpoint, bool, error) {
	member, err := takeScript.Run(ctx, r.client, []string{r.queueKey, r.membersKey}).Text()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Endpoint{}, false, nil
		}
		return domain.Endpoint{}, false, service.NewInternalServerError("Redis take registration error", fmt.Errorf("can't pop from redis (key='%s'), err: %w", r.queueKey, err))
	}

	endpoint, err := domain.Parse(member, "", 0)
	if err != nil {
		return domain.Endpoint{}, false, service.NewFacilitatorError(service.ErrInternalServerError, "Redis decode registration error", fmt.Errorf("can't decode %q from redis (key='%s'), err: %w", member, r.queueKey, err))
	}
	return endpoint, true, nil
}

func (r *redisStore) Size(ctx context.Context) (int, error) {
	n, err := r.client.LLen(ctx, r.queueKey).Result()
	if err != nil {
		return 0, service.NewInternalServerError("Redis size error", fmt.Errorf("can't read length of redis list (key='%s'), err: %w", r.queueKey, err))
	}
	return int(n), nil
}

// Reset drops every queued registration. Called once at startup so the queue
// always starts empty.
func (r *redisStore) Reset(ctx context.Context) error {
	if err := r.client.Del(ctx, r.queueKey, r.membersKey).Err(); err != nil {
		return service.NewInternalServerError("Redis reset error", fmt.Errorf("can't delete redis keys (prefix='%s'), err: %w", r.queueKey, err))
	}
	return nil
}
