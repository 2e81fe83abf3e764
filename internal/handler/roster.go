package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const rosterCacheKey = "roster_view"

// GetRoster 返回按天分组的完整名单。
// 名单是只读投影且对所有人公开，所以带一个短 TTL 的缓存，
// 每次成功提交后缓存会被删除
func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	cached, err := h.redisClient.Get(ctx, rosterCacheKey).Bytes()
	if err == nil {
		h.successResponse(w, r, "获取名单成功", json.RawMessage(cached))
		return
	}
	if !errors.Is(err, redis.Nil) {
		// 缓存不可用时直接回源，不影响请求
		slog.Error("无法读取名单缓存", "error", err)
	}

	rosterDays, err := h.service.GetRosterView()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	data, err := json.Marshal(rosterDays)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.redisClient.Set(ctx, rosterCacheKey, data, time.Duration(h.config.Redis.RosterCacheTTL)*time.Second).Err(); err != nil {
		slog.Error("无法写入名单缓存", "error", err)
	}

	h.successResponse(w, r, "获取名单成功", json.RawMessage(data))
}

func (h *Handler) invalidateRosterCache(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	if err := h.redisClient.Del(ctx, rosterCacheKey).Err(); err != nil {
		slog.Error("无法删除名单缓存", "error", err)
	}
}
