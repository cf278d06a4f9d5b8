package ban

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rogerio-castellano/inventory-sheets/internal/logger"
	"github.com/rogerio-castellano/inventory-sheets/internal/redissvc"
)

const (
	DailyBanLogKey = "ratelimit:banlog:daily"
	strikePrefix   = "ratelimit:strikes:"
	banPrefix      = "ratelimit:ban:"

	MaxStrikes    = 10
	StrikeWindow  = 10 * time.Minute
	BanDuration   = 15 * time.Minute
	summaryWindow = 24 * time.Hour
)

type BanLogEntry struct {
	Target  string    `json:"target"`
	Route   string    `json:"route"`
	Strikes int       `json:"strikes"`
	Time    time.Time `json:"time"`
}

// Summary aggregates the ban log of one day.
type Summary struct {
	Total    int
	ByRoute  map[string]int
	ByTarget map[string]int
	Entries  []BanLogEntry
}

// Banner counts rate limit strikes in Redis and bans repeat offenders.
type Banner struct {
	rdb *redis.Client
	log *logger.Logger
	now func() time.Time
}

func NewBanner(rs *redissvc.RedisService, log *logger.Logger) *Banner {
	if log == nil {
		log = logger.Nop()
	}
	return &Banner{rdb: rs.Rdb(), log: log, now: time.Now}
}

// IsBanned reports whether target is serving a ban.
func (b *Banner) IsBanned(ctx context.Context, target string) (bool, error) {
	n, err := b.rdb.Exists(ctx, banPrefix+target).Result()
	if err != nil {
		return false, fmt.Errorf("check ban: %w", err)
	}
	return n > 0, nil
}

// Strike records one rejected request. It returns true when the strike
// pushed target over the limit and a ban was placed.
func (b *Banner) Strike(ctx context.Context, target, route string) (bool, error) {
	key := strikePrefix + target
	strikes, err := b.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("count strike: %w", err)
	}
	if strikes == 1 {
		if err := b.rdb.Expire(ctx, key, StrikeWindow).Err(); err != nil {
			return false, fmt.Errorf("expire strikes: %w", err)
		}
	}
	if strikes < MaxStrikes {
		return false, nil
	}

	pipe := b.rdb.TxPipeline()
	pipe.Set(ctx, banPrefix+target, route, BanDuration)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("place ban: %w", err)
	}

	b.log.Warn(b.log.WithFields(ctx, map[string]any{
		"target":  target,
		"route":   route,
		"strikes": strikes,
	}), "client banned")

	if err := b.logBanEvent(ctx, target, route, int(strikes)); err != nil {
		b.log.Error(ctx, "failed to record ban event", err)
	}
	return true, nil
}

func (b *Banner) logBanEvent(ctx context.Context, target, route string, strikes int) error {
	entry := BanLogEntry{
		Target:  target,
		Route:   route,
		Strikes: strikes,
		Time:    b.now().UTC(),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return b.rdb.RPush(ctx, DailyBanLogKey, data).Err()
}

// StartDailyBanSummary logs the ban summary at 23:59 every day until ctx is done.
func (b *Banner) StartDailyBanSummary(ctx context.Context) {
	for {
		now := b.now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, now.Location())
		if now.After(next) {
			next = next.Add(summaryWindow)
		}

		timer := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if _, err := b.SendDailyBanSummary(ctx); err != nil {
			b.log.Error(ctx, "daily ban summary failed", err)
		}
	}
}

// SendDailyBanSummary drains the ban log and logs its aggregate.
func (b *Banner) SendDailyBanSummary(ctx context.Context) (Summary, error) {
	entries, err := b.rdb.LRange(ctx, DailyBanLogKey, 0, -1).Result()
	if err != nil {
		return Summary{}, fmt.Errorf("read ban log: %w", err)
	}
	if len(entries) == 0 {
		return Summary{}, nil
	}
	if err := b.rdb.Del(ctx, DailyBanLogKey).Err(); err != nil {
		return Summary{}, fmt.Errorf("clear ban log: %w", err)
	}

	summary := Summarize(entries)
	b.log.Info(b.log.WithFields(ctx, map[string]any{
		"total":     summary.Total,
		"by_route":  summary.ByRoute,
		"by_target": summary.ByTarget,
	}), "daily ban summary")
	return summary, nil
}

// Summarize aggregates raw ban log entries. Malformed entries are skipped.
func Summarize(raw []string) Summary {
	summary := Summary{
		ByRoute:  make(map[string]int),
		ByTarget: make(map[string]int),
	}
	for _, item := range raw {
		var entry BanLogEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			continue
		}
		summary.Entries = append(summary.Entries, entry)
		summary.ByRoute[entry.Route]++
		summary.ByTarget[entry.Target]++
	}
	summary.Total = len(summary.Entries)
	return summary
}
