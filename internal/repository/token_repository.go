package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRepo maintains the access-token revocation list. The durable record
// is a row in revoked_tokens; a redis key mirrors each revocation with a
// TTL equal to the token's remaining lifetime so that the per-request
// blocklist lookup usually never touches the database. The redis client is
// optional: with a nil client every lookup falls through to the table.
type TokenRepo struct {
	DB  *sql.DB
	RDB *redis.Client
}

func NewTokenRepo(db *sql.DB, rdb *redis.Client) *TokenRepo {
	return &TokenRepo{DB: db, RDB: rdb}
}

// Revoke records a token's jti as revoked. The database row is the source
// of truth; mirroring into redis is best-effort. Revocation is terminal
// and idempotent: revoking the same jti twice hits the unique key and is
// not an error.
func (r *TokenRepo) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if _, err := r.DB.ExecContext(ctx,
		"INSERT INTO revoked_tokens (jti) VALUES (?)", jti); err != nil {
		if !strings.Contains(err.Error(), mysqlDupEntry) {
			return err
		}
	}
	markRevoked(ctx, r.RDB, jti, ttl)
	return nil
}

// IsRevoked reports whether a jti appears on the revocation list. A redis
// hit answers immediately; a miss or an unavailable client falls back to
// the table, so redis outages only cost latency, never correctness.
func (r *TokenRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if cachedRevoked(ctx, r.RDB, jti) {
		return true, nil
	}
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM revoked_tokens WHERE jti=? LIMIT 1", jti).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

const revokedKeyPrefix = "revoked:"

// markRevoked mirrors a revocation into redis with the given TTL. Errors
// are swallowed: the durable row already exists and lookups degrade to it.
func markRevoked(ctx context.Context, rdb *redis.Client, jti string, ttl time.Duration) {
	if rdb == nil || ttl <= 0 {
		return
	}
	_ = rdb.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err()
}

// cachedRevoked reports whether redis knows the jti as revoked. False means
// either "not revoked" or "cache unavailable"; callers must consult the
// table before treating a token as valid.
func cachedRevoked(ctx context.Context, rdb *redis.Client, jti string) bool {
	if rdb == nil {
		return false
	}
	n, err := rdb.Exists(ctx, revokedKeyPrefix+jti).Result()
	return err == nil && n > 0
}
