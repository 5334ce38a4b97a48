package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/slotbot/internal/domain"
	"github.com/bnema/slotbot/internal/ports"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

const (
	addrKey              = "redis.addr"
	passwordKey          = "redis.password"
	dbKey                = "redis.db"
	keyPrefixKey         = "redis.key_prefix"
	conditionalWritesKey = "documents.conditional_writes"

	defaultAddr      = "127.0.0.1:6379"
	defaultKeyPrefix = "slotbot:doc:"

	textField     = "text"
	revisionField = "rev"
)

// Store keeps each document in a hash holding its text and a revision
// counter. Conditional writes run under WATCH so a concurrent writer aborts
// the transaction.
type Store struct {
	client      *redis.Client
	prefix      string
	conditional bool
}

var _ ports.DocumentStore = (*Store)(nil)

func NewClient(cfg *viper.Viper) *redis.Client {
	if cfg == nil {
		cfg = viper.New()
	}
	cfg.SetDefault(addrKey, defaultAddr)
	cfg.SetDefault(dbKey, 0)

	return redis.NewClient(&redis.Options{
		Addr:     cfg.GetString(addrKey),
		Password: cfg.GetString(passwordKey),
		DB:       cfg.GetInt(dbKey),
	})
}

func NewStore(client *redis.Client, cfg *viper.Viper) *Store {
	if cfg == nil {
		cfg = viper.New()
	}
	cfg.SetDefault(keyPrefixKey, defaultKeyPrefix)
	cfg.SetDefault(conditionalWritesKey, true)

	return &Store{
		client:      client,
		prefix:      cfg.GetString(keyPrefixKey),
		conditional: cfg.GetBool(conditionalWritesKey),
	}
}

func (s *Store) Fetch(ctx context.Context, id domain.DocumentID) (domain.Document, error) {
	key, err := s.key(id)
	if err != nil {
		return domain.Document{}, err
	}

	values, err := s.client.HMGet(ctx, key, textField, revisionField).Result()
	if err != nil {
		return domain.Document{}, fmt.Errorf("redis fetch %q: %w", id, err)
	}

	return documentFromValues(id, values)
}

// Create stores the text and its first revision in one transaction, so a
// reader never sees a document without a revision.
func (s *Store) Create(ctx context.Context, doc domain.Document) (domain.Document, error) {
	key, err := s.key(doc.ID)
	if err != nil {
		return domain.Document{}, err
	}

	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		exists, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if exists > 0 {
			return fmt.Errorf("document %q: %w", doc.ID, domain.ErrDocumentExists)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, textField, doc.Text, revisionField, 1)
			return nil
		})
		return err
	}, key)
	switch {
	case errors.Is(err, redis.TxFailedErr):
		return domain.Document{}, fmt.Errorf("document %q: %w", doc.ID, domain.ErrDocumentExists)
	case errors.Is(err, domain.ErrDocumentExists):
		return domain.Document{}, err
	case err != nil:
		return domain.Document{}, fmt.Errorf("redis create %q: %w", doc.ID, err)
	}

	doc.Revision = "1"
	return doc, nil
}

func (s *Store) Write(ctx context.Context, doc domain.Document) (domain.Document, error) {
	key, err := s.key(doc.ID)
	if err != nil {
		return domain.Document{}, err
	}

	var revision int64
	if s.conditional {
		err = s.client.Watch(ctx, func(tx *redis.Tx) error {
			values, err := tx.HMGet(ctx, key, textField, revisionField).Result()
			if err != nil {
				return fmt.Errorf("redis fetch %q: %w", doc.ID, err)
			}
			current, err := documentFromValues(doc.ID, values)
			if err != nil {
				return err
			}
			if doc.Revision != "" && doc.Revision != current.Revision {
				return fmt.Errorf("document %q: %w", doc.ID, domain.ErrConcurrentModification)
			}

			revision, err = replace(ctx, tx, key, doc.Text)
			return err
		}, key)
	} else {
		revision, err = s.overwrite(ctx, key, doc)
	}
	if errors.Is(err, redis.TxFailedErr) {
		return domain.Document{}, fmt.Errorf("document %q: %w", doc.ID, domain.ErrConcurrentModification)
	}
	if err != nil {
		if errors.Is(err, domain.ErrConcurrentModification) || errors.Is(err, domain.ErrDocumentNotFound) {
			return domain.Document{}, err
		}
		return domain.Document{}, fmt.Errorf("redis write %q: %w", doc.ID, err)
	}

	doc.Revision = strconv.FormatInt(revision, 10)
	return doc, nil
}

func (s *Store) overwrite(ctx context.Context, key string, doc domain.Document) (int64, error) {
	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if exists == 0 {
		return 0, fmt.Errorf("document %q: %w", doc.ID, domain.ErrDocumentNotFound)
	}

	return replace(ctx, s.client, key, doc.Text)
}

type txPipeliner interface {
	TxPipelined(ctx context.Context, fn func(redis.Pipeliner) error) ([]redis.Cmder, error)
}

func replace(ctx context.Context, client txPipeliner, key string, text string) (int64, error) {
	var revision *redis.IntCmd
	_, err := client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, textField, text)
		revision = pipe.HIncrBy(ctx, key, revisionField, 1)
		return nil
	})
	if err != nil {
		return 0, err
	}

	return revision.Val(), nil
}

func (s *Store) key(id domain.DocumentID) (string, error) {
	trimmed := strings.TrimSpace(string(id))
	if trimmed == "" {
		return "", errors.New("document id is empty")
	}

	return s.prefix + trimmed, nil
}

func documentFromValues(id domain.DocumentID, values []interface{}) (domain.Document, error) {
	if len(values) != 2 || values[0] == nil {
		return domain.Document{}, fmt.Errorf("document %q: %w", id, domain.ErrDocumentNotFound)
	}

	text, _ := values[0].(string)
	revision, _ := values[1].(string)
	return domain.Document{ID: id, Text: text, Revision: revision}, nil
}
