package services

import (
	"fmt"

	"exportlens/internal/models"
	"exportlens/internal/providers"
	"exportlens/internal/statistic"
)

const sessionKeyPrefix = "table:"

type SessionStoreInterface interface {
	Get(sessionID string) (*models.Table, bool)
	Put(sessionID string, table *models.Table) error
	Delete(sessionID string)
}

// SessionStore keeps the last successfully built table of each session.
// Tables are stored encoded, so readers always get their own copy.
type SessionStore struct {
	cache  providers.CacheProviderInterface
	codec  *statistic.TableCodec
	logger providers.Logger
}

func NewSessionStore(cache providers.CacheProviderInterface, codec *statistic.TableCodec, logger providers.Logger) SessionStoreInterface {
	return &SessionStore{
		cache:  cache,
		codec:  codec,
		logger: logger,
	}
}

func (s *SessionStore) Get(sessionID string) (*models.Table, bool) {
	data, ok := s.cache.Get(sessionKeyPrefix + sessionID)
	if !ok {
		return nil, false
	}
	table, err := s.codec.Decode(data)
	if err != nil {
		s.logger.Errorf(providers.TypeGet, "Corrupted session table %s: %s", sessionID, err)
		s.cache.Del(sessionKeyPrefix + sessionID)
		return nil, false
	}
	return table, true
}

func (s *SessionStore) Put(sessionID string, table *models.Table) error {
	data, err := s.codec.Encode(table)
	if err != nil {
		return err
	}
	if err := s.cache.Set(sessionKeyPrefix+sessionID, data); err != nil {
		return fmt.Errorf("store table for session %s (%d bytes): %w", sessionID, len(data), err)
	}
	return nil
}

func (s *SessionStore) Delete(sessionID string) {
	s.cache.Del(sessionKeyPrefix + sessionID)
}
