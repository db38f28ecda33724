package credstore

import (
	"fmt"
	"sync"

	"github.com/awnumar/memguard"
	"go.etcd.io/bbolt"
)

const (
	credentialBucket = "credentials"
	keyToken         = "token"
	keyRole          = "role"
	keyNickname      = "nickname"
)

// Bolt is a Store backed by a BBolt database, so the credential survives
// process restarts. Between reads the token is cached in a memguard
// Enclave rather than as a plain string; role and nickname are display
// values and are kept in the clear.
type Bolt struct {
	mu    sync.Mutex
	db    *bbolt.DB
	token *memguard.Enclave
}

var _ Store = (*Bolt)(nil)

// NewBolt returns a credential store backed by the given BBolt database.
func NewBolt(db *bbolt.DB) (*Bolt, error) {
	s := &Bolt{db: db}
	tok, err := s.read(keyToken)
	if err != nil {
		return nil, err
	}
	if tok != "" {
		s.token = memguard.NewEnclave([]byte(tok))
	}
	return s, nil
}

// NewBoltFromFile opens a BBolt database at the given path and returns a
// credential store on top of it.
func NewBoltFromFile(path string, options *bbolt.Options) (*Bolt, error) {
	db, err := bbolt.Open(path, 0600, options)
	if err != nil {
		return nil, fmt.Errorf("opening credential db: %w", err)
	}
	return NewBolt(db)
}

// Close closes the underlying BBolt database.
func (s *Bolt) Close() error {
	return s.db.Close()
}

func (s *Bolt) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == nil {
		return "", false
	}
	buf, err := s.token.Open()
	if err != nil {
		return "", false
	}
	defer buf.Destroy()
	tok := string(buf.Bytes())
	return tok, tok != ""
}

func (s *Bolt) Role() (string, bool) {
	role, err := s.read(keyRole)
	if err != nil {
		return "", false
	}
	return role, role != ""
}

func (s *Bolt) Nickname() (string, bool) {
	nickname, err := s.read(keyNickname)
	if err != nil {
		return "", false
	}
	return nickname, nickname != ""
}

func (s *Bolt) SetSession(token, role, nickname string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(credentialBucket))
		if err != nil {
			return err
		}
		if err := b.Put([]byte(keyToken), []byte(token)); err != nil {
			return err
		}
		if err := b.Put([]byte(keyRole), []byte(role)); err != nil {
			return err
		}
		return b.Put([]byte(keyNickname), []byte(nickname))
	})
	if err != nil {
		return fmt.Errorf("storing credential: %w", err)
	}
	if token != "" {
		s.token = memguard.NewEnclave([]byte(token))
	} else {
		s.token = nil
	}
	return nil
}

func (s *Bolt) SetRole(role string) error {
	return s.write(keyRole, role)
}

func (s *Bolt) SetNickname(nickname string) error {
	return s.write(keyNickname, nickname)
}

func (s *Bolt) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = nil
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(credentialBucket))
		if b == nil {
			return nil
		}
		for _, key := range []string{keyToken, keyRole, keyNickname} {
			if err := b.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Bolt) read(key string) (string, error) {
	var value string
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(credentialBucket))
		if b == nil {
			return nil
		}
		value = string(b.Get([]byte(key)))
		return nil
	})
	return value, err
}

func (s *Bolt) write(key, value string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(credentialBucket))
		if err != nil {
			return err
		}
		return b.Put([]byte(key), []byte(value))
	})
}
