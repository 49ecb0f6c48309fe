package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DRSN-tech/shop-console/internal/cfg"
	"github.com/DRSN-tech/shop-console/internal/domain"
	"github.com/DRSN-tech/shop-console/internal/repository/redis/converter"
	"github.com/DRSN-tech/shop-console/pkg/clients"
	"github.com/DRSN-tech/shop-console/pkg/e"
	"github.com/DRSN-tech/shop-console/pkg/logger"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// releasePendingScript удаляет флаг ожидания, только если в нём лежит токен вызывающего.
var releasePendingScript = r.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// SessionRepo хранит сессии консоли в Redis. Каждое сохранение продлевает TTL.
type SessionRepo struct {
	client *clients.RedisClient
	conv   converter.SessionConverter
	cfg    *cfg.SessionCfg
	logger logger.Logger
}

func NewSessionRepo(client *clients.RedisClient, conv converter.SessionConverter,
	cfg *cfg.SessionCfg, logger logger.Logger) *SessionRepo {
	return &SessionRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// Get возвращает сессию или e.ErrSessionNotFound, если её нет или она истекла.
func (s *SessionRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	data, err := s.client.Client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, e.ErrSessionNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model, err := unmarshalSession(data)
	if err != nil {
		s.logger.Warnf("Redis unmarshal failed for session %s: %v", id, err)
		if delErr := s.client.Client.Del(ctx, sessionKey(id)).Err(); delErr != nil {
			s.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), delErr))
		}
		return nil, e.ErrSessionNotFound
	}

	return s.conv.ToEntity(model), nil
}

func (s *SessionRepo) Save(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(s.conv.ToRedisModel(session))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := s.client.Client.Set(ctx, sessionKey(session.ID), data, s.cfg.TTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Touch продлевает TTL сессии. Пропавшая сессия даёт e.ErrSessionNotFound.
func (s *SessionRepo) Touch(ctx context.Context, id string) error {
	ok, err := s.client.Client.Expire(ctx, sessionKey(id), s.cfg.TTL).Result()
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if !ok {
		return e.ErrSessionNotFound
	}

	return nil
}

// AcquirePending ставит флаг ожидания через SET NX со случайным токеном владельца.
// Флаг истекает сам через PendingTTL, если процесс упал, не сняв его.
func (s *SessionRepo) AcquirePending(ctx context.Context, id string) (string, bool, error) {
	token := uuid.NewString()

	ok, err := s.client.Client.SetNX(ctx, pendingKey(id), token, s.cfg.PendingTTL).Result()
	if err != nil {
		return "", false, e.Wrap(whereami.WhereAmI(), err)
	}
	if !ok {
		return "", false, nil
	}

	return token, true, nil
}

// ReleasePending снимает флаг, только если он всё ещё принадлежит token.
// Флаг, который успел истечь и достаться другому запросу, не трогается.
func (s *SessionRepo) ReleasePending(ctx context.Context, id, token string) error {
	deleted, err := releasePendingScript.Run(ctx, s.client.Client, []string{pendingKey(id)}, token).Int()
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if deleted == 0 {
		s.logger.Warnf("pending flag of session %s expired before release", id)
	}

	return nil
}

func unmarshalSession(data []byte) (*converter.SessionRedisModel, error) {
	var model converter.SessionRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, err
	}
	if model.ID == "" {
		return nil, fmt.Errorf("session model without id")
	}

	return &model, nil
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

func pendingKey(id string) string {
	return fmt.Sprintf("session:%s:pending", id)
}
