package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/michaeljabbour/openai-images-mcp/models"
)

var conversationsBucket = []byte("conversations")

// BoltStore keeps all conversations in a single bbolt file, one
// JSON-encoded record per key. Useful when a directory of loose files is
// unwanted; same durability contract as the file store.
type BoltStore struct {
	db   *bolt.DB
	path string
}

func NewBoltStore(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open conversation db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(conversationsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BoltStore{db: db, path: path}, nil
}

func (bs *BoltStore) Close() error {
	return bs.db.Close()
}

func (bs *BoltStore) Create(mode models.DialogueMode) (*models.Conversation, error) {
	conv := NewConversation(mode)
	if err := bs.Save(conv); err != nil {
		return nil, err
	}
	return conv, nil
}

func (bs *BoltStore) Load(id string) (*models.Conversation, error) {
	var conv models.Conversation
	err := bs.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(conversationsBucket).Get([]byte(id))
		if data == nil {
			return ErrNotFound
		}
		return json.Unmarshal(data, &conv)
	})
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (bs *BoltStore) Save(conv *models.Conversation) error {
	data, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("encode conversation %s: %w", conv.ID, err)
	}
	return bs.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(conversationsBucket).Put([]byte(conv.ID), data)
	})
}

func (bs *BoltStore) Delete(id string) error {
	return bs.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(conversationsBucket)
		if bucket.Get([]byte(id)) == nil {
			return ErrNotFound
		}
		return bucket.Delete([]byte(id))
	})
}

func (bs *BoltStore) List() ([]models.ConversationSummary, error) {
	var summaries []models.ConversationSummary
	err := bs.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(conversationsBucket).ForEach(func(k, v []byte) error {
			var conv models.Conversation
			if err := json.Unmarshal(v, &conv); err != nil {
				// Skip malformed entries instead of failing the listing.
				return nil
			}
			summaries = append(summaries, summarize(&conv))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sortSummaries(summaries)
	return summaries, nil
}

func (bs *BoltStore) Search(query string) ([]models.ConversationSummary, error) {
	var matches []models.ConversationSummary
	err := bs.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(conversationsBucket).ForEach(func(k, v []byte) error {
			if len(matches) >= searchLimit {
				return nil
			}
			var conv models.Conversation
			if err := json.Unmarshal(v, &conv); err != nil {
				return nil
			}
			if excerpt, ok := matchConversation(&conv, query); ok {
				summary := summarize(&conv)
				summary.MatchingMessage = excerpt
				matches = append(matches, summary)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sortSummaries(matches)
	return matches, nil
}

func (bs *BoltStore) Stats() (models.StoreStats, error) {
	stats := models.StoreStats{Location: bs.path}
	err := bs.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(conversationsBucket).ForEach(func(k, v []byte) error {
			stats.Conversations++
			stats.TotalBytes += int64(len(v))
			return nil
		})
	})
	if err != nil {
		return models.StoreStats{}, err
	}
	return stats, nil
}
