package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/rueidis"
)

// RedisJobQueue keeps order ids in a sorted set scored by due time (unix ms)
// and the job payloads in a hash next to it. A claimed job keeps both entries
// with its score pushed out by lease until the worker cancels it.
type RedisJobQueue struct {
	client     rueidis.Client
	key        string
	payloadKey string
	lease      time.Duration
}

func NewRedisJobQueue(client rueidis.Client, queueKey string, lease time.Duration) *RedisJobQueue {
	return &RedisJobQueue{
		client:     client,
		key:        queueKey,
		payloadKey: queueKey + ":payload",
		lease:      lease,
	}
}

func (r *RedisJobQueue) Schedule(ctx context.Context, job CompletionJob, runAt time.Time) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode job: %w", err)
	}

	cmds := rueidis.Commands{
		r.client.B().Hset().Key(r.payloadKey).FieldValue().FieldValue(job.OrderID, string(payload)).Build(),
		r.client.B().Zadd().Key(r.key).ScoreMember().ScoreMember(float64(runAt.UnixMilli()), job.OrderID).Build(),
	}

	for _, res := range r.client.DoMulti(ctx, cmds...) {
		if err := res.Error(); err != nil {
			return err
		}
	}

	return nil
}

func (r *RedisJobQueue) Cancel(ctx context.Context, orderID string) error {
	cmds := rueidis.Commands{
		r.client.B().Zrem().Key(r.key).Member(orderID).Build(),
		r.client.B().Hdel().Key(r.payloadKey).Field(orderID).Build(),
	}

	for _, res := range r.client.DoMulti(ctx, cmds...) {
		if err := res.Error(); err != nil {
			return err
		}
	}

	return nil
}

// claimScript moves each due job's score to the end of its lease in one step,
// so two pollers never lease the same job. Members without a payload are
// leftovers of a partial Cancel and are removed.
var claimScript = rueidis.NewLuaScript(`
local ids = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', ARGV[1], 'LIMIT', 0, tonumber(ARGV[3]))
local out = {}
for _, id in ipairs(ids) do
	local payload = redis.call('HGET', KEYS[2], id)
	if payload then
		redis.call('ZADD', KEYS[1], 'XX', ARGV[2], id)
		table.insert(out, payload)
	else
		redis.call('ZREM', KEYS[1], id)
	end
end
return out
`)

func (r *RedisJobQueue) ClaimDue(ctx context.Context, now time.Time, limit int) ([]CompletionJob, error) {
	if limit <= 0 {
		return nil, nil
	}

	args := []string{
		strconv.FormatInt(now.UnixMilli(), 10),
		strconv.FormatInt(now.Add(r.lease).UnixMilli(), 10),
		strconv.Itoa(limit),
	}

	payloads, err := claimScript.Exec(ctx, r.client, []string{r.key, r.payloadKey}, args).AsStrSlice()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, nil
		}
		return nil, err
	}

	jobs := make([]CompletionJob, 0, len(payloads))
	for _, raw := range payloads {
		var job CompletionJob
		if err := json.Unmarshal([]byte(raw), &job); err != nil {
			return jobs, fmt.Errorf("decode job: %w", err)
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}
