package snapshot

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"pkg.world.dev/world-engine/sprite/codec"
	"pkg.world.dev/world-engine/sprite/types"
)

// RedisStore persists snapshots of one park under its namespace.
type RedisStore struct {
	client    redis.Cmdable
	namespace types.Namespace
	tracer    trace.Tracer
}

func NewRedisStore(client redis.Cmdable, namespace types.Namespace) (*RedisStore, error) {
	if err := namespace.Validate(); err != nil {
		return nil, err
	}
	return &RedisStore{
		client:    client,
		namespace: namespace,
		tracer:    otel.Tracer("snapshot"),
	}, nil
}

// Save stores snap and marks it as the latest snapshot in a single transaction.
func (r *RedisStore) Save(ctx context.Context, snap *Snapshot) error {
	ctx, span := r.tracer.Start(ctx, "snapshot.save")
	defer span.End()

	bz, err := codec.Encode(snap)
	if err != nil {
		return r.fail(span, err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, redisSnapshotKey(r.namespace, snap.Tick), bz, 0)
	pipe.Set(ctx, redisLatestTickKey(r.namespace), snap.Tick, 0)
	pipe.ZAdd(ctx, redisTicksKey(r.namespace), redis.Z{Score: float64(snap.Tick), Member: snap.Tick})
	if _, err := pipe.Exec(ctx); err != nil {
		return r.fail(span, eris.Wrap(err, ""))
	}
	return nil
}

// Load returns the most recently saved snapshot, or ErrNoSnapshot.
func (r *RedisStore) Load(ctx context.Context) (*Snapshot, error) {
	tick, err := r.client.Get(ctx, redisLatestTickKey(r.namespace)).Uint64()
	if err == redis.Nil {
		return nil, eris.Wrapf(ErrNoSnapshot, "namespace %s", r.namespace)
	} else if err != nil {
		return nil, eris.Wrap(err, "")
	}
	return r.LoadTick(ctx, tick)
}

// LoadTick returns the snapshot saved at the given tick, or ErrNoSnapshot.
func (r *RedisStore) LoadTick(ctx context.Context, tick uint64) (*Snapshot, error) {
	ctx, span := r.tracer.Start(ctx, "snapshot.load")
	defer span.End()

	bz, err := r.client.Get(ctx, redisSnapshotKey(r.namespace, tick)).Bytes()
	if err == redis.Nil {
		return nil, eris.Wrapf(ErrNoSnapshot, "namespace %s tick %d", r.namespace, tick)
	} else if err != nil {
		return nil, r.fail(span, eris.Wrap(err, ""))
	}
	snap, err := codec.Decode[Snapshot](bz)
	if err != nil {
		return nil, r.fail(span, err)
	}
	return &snap, nil
}

// Ticks returns every tick with a stored snapshot, ascending.
func (r *RedisStore) Ticks(ctx context.Context) ([]uint64, error) {
	members, err := r.client.ZRange(ctx, redisTicksKey(r.namespace), 0, -1).Result()
	if err != nil {
		return nil, eris.Wrap(err, "")
	}
	ticks := make([]uint64, 0, len(members))
	for _, m := range members {
		tick, err := strconv.ParseUint(m, 10, 64)
		if err != nil {
			return nil, eris.Wrapf(err, "bad tick member %q", m)
		}
		ticks = append(ticks, tick)
	}
	return ticks, nil
}

// Prune deletes every snapshot except the newest keep. The latest snapshot is always kept.
func (r *RedisStore) Prune(ctx context.Context, keep int) error {
	keep = max(keep, 1)
	ticks, err := r.Ticks(ctx)
	if err != nil {
		return err
	}
	if len(ticks) <= keep {
		return nil
	}
	stale := ticks[:len(ticks)-keep]

	pipe := r.client.TxPipeline()
	for _, tick := range stale {
		pipe.Del(ctx, redisSnapshotKey(r.namespace, tick))
		pipe.ZRem(ctx, redisTicksKey(r.namespace), tick)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return eris.Wrap(err, "")
	}
	return nil
}

func (r *RedisStore) fail(span trace.Span, err error) error {
	span.SetStatus(codes.Error, eris.ToString(err, true))
	span.RecordError(err)
	return err
}
