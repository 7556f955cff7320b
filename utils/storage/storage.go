package storage

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"os"
	"sync"

	"gitlab.com/BIC_Dev/reaction-role-manager/models"
	"gitlab.com/BIC_Dev/reaction-role-manager/utils/logging"
	"go.uber.org/zap"
)

// Storage owns the durable reaction role state. Every mutation rewrites the
// whole backing document synchronously; the in-memory store stays
// authoritative for the session when a write fails. Single-process,
// single-writer only.
type Storage struct {
	Path string

	mu    sync.Mutex
	store *models.Store
}

// Load reads the backing file and returns a Storage. A missing or
// unparsable file yields an empty store, never a fatal error.
func Load(ctx context.Context, path string) *Storage {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()), zap.String("storage_path", path))

	s := &Storage{
		Path:  path,
		store: models.NewStore(),
	}

	data, err := ioutil.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			newCtx := logging.AddValues(ctx, zap.NamedError("error", err), zap.String("error_message", "Failed to read storage file, starting with empty store"))
			logger := logging.Logger(newCtx)
			logger.Error("error_log")
		}
		return s
	}

	store := models.NewStore()
	if umErr := json.Unmarshal(data, store); umErr != nil {
		newCtx := logging.AddValues(ctx, zap.NamedError("error", umErr), zap.String("error_message", "Failed to parse storage file, starting with empty store"))
		logger := logging.Logger(newCtx)
		logger.Error("error_log")
		return s
	}

	if store.RoleEmoji == nil {
		store.RoleEmoji = make(map[string]string)
	}
	if store.MessageBindings == nil {
		store.MessageBindings = make(map[string][]models.RoleBinding)
	}
	if store.MessageChannels == nil {
		store.MessageChannels = make(map[string]string)
	}

	s.store = store
	return s
}

// EmojiForRole returns the emoji configured for a role
func (s *Storage) EmojiForRole(ctx context.Context, roleID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.EmojiForRole(roleID)
}

// SetRoleEmoji stores the emoji choice for a role and flushes the document
func (s *Storage) SetRoleEmoji(ctx context.Context, roleID string, emoji string) *StorageError {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.SetRoleEmoji(roleID, emoji)
	return s.save(ctx)
}

// AppendBinding appends a binding to a message and flushes the document
func (s *Storage) AppendBinding(ctx context.Context, messageID string, channelID string, binding models.RoleBinding) *StorageError {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.AppendBinding(messageID, channelID, binding)
	return s.save(ctx)
}

// FindBinding returns the earliest-inserted binding on a message matching
// the emoji
func (s *Storage) FindBinding(ctx context.Context, messageID string, emoji string) (models.RoleBinding, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.FindBinding(messageID, emoji)
}

// Bindings returns a copy of the message binding table
func (s *Storage) Bindings(ctx context.Context) map[string][]models.RoleBinding {
	s.mu.Lock()
	defer s.mu.Unlock()

	bindings := make(map[string][]models.RoleBinding, len(s.store.MessageBindings))
	for messageID, list := range s.store.MessageBindings {
		copied := make([]models.RoleBinding, len(list))
		copy(copied, list)
		bindings[messageID] = copied
	}

	return bindings
}

// RoleEmoji returns a copy of the role emoji table
func (s *Storage) RoleEmoji(ctx context.Context) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	roleEmoji := make(map[string]string, len(s.store.RoleEmoji))
	for roleID, emoji := range s.store.RoleEmoji {
		roleEmoji[roleID] = emoji
	}

	return roleEmoji
}

// ChannelForMessage returns the channel a bound message lives in
func (s *Storage) ChannelForMessage(ctx context.Context, messageID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	channelID, ok := s.store.MessageChannels[messageID]
	return channelID, ok
}

// save rewrites the whole document. Caller must hold the mutex.
func (s *Storage) save(ctx context.Context) *StorageError {
	data, jsonErr := json.MarshalIndent(s.store, "", "  ")
	if jsonErr != nil {
		return &StorageError{
			Message: "Unable to marshal store document",
			Err:     jsonErr,
		}
	}

	if wErr := ioutil.WriteFile(s.Path, data, 0644); wErr != nil {
		return &StorageError{
			Message: "Unable to write store document",
			Err:     wErr,
		}
	}

	return nil
}
