package redis

import (
	"context"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/helix/internal/db"
)

// SetWithMeta stores value at key and replaces the hash at metaKey inside
// one MULTI/EXEC, sent as a single pipeline.
func (s *Store) SetWithMeta(ctx context.Context, key string, value []byte, metaKey string, meta map[string]string) error {
	b := s.b()
	cmds := rueidis.Commands{
		b.Multi().Build(),
		b.Set().Key(key).Value(rueidis.BinaryString(value)).Build(),
		b.Del().Key(metaKey).Build(),
	}
	if len(meta) > 0 {
		hset := b.Hset().Key(metaKey).FieldValue()
		for k, v := range meta {
			hset = hset.FieldValue(k, v)
		}
		cmds = append(cmds, hset.Build())
	}
	cmds = append(cmds, b.Exec().Build())

	resps := s.client.DoMulti(ctx, cmds...)
	for _, resp := range resps {
		if err := resp.Error(); err != nil {
			return &db.Error{Op: db.OpExec, Err: err}
		}
	}

	// Queued commands fail inside the EXEC reply, not on their own.
	replies, err := resps[len(resps)-1].ToArray()
	if err != nil {
		return &db.Error{Op: db.OpExec, Err: err}
	}
	for _, r := range replies {
		if err := r.Error(); err != nil {
			return &db.Error{Op: db.OpExec, Err: err}
		}
	}
	return nil
}
