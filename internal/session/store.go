package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"docchat-backend/models"
)

// Session holds the embedded chunks and chat history of one document
// upload. Chunks are replaced wholesale when the session's documents are
// reprocessed; history is append-only and reset on reprocessing.
type Session struct {
	ID        string
	Chunks    []models.EmbeddedChunk
	History   []models.ChatTurn
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store is an in-memory session registry. There is no persistence; a
// restart drops every session.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
	}
}

// Create registers a new session owning the given embedded chunks.
func (s *Store) Create(chunks []models.EmbeddedChunk) *Session {
	now := time.Now()
	sess := &Session{
		ID:        uuid.NewString(),
		Chunks:    chunks,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return sess
}

// Chunks returns the embedded chunks of a session.
func (s *Store) Chunks(id string) ([]models.EmbeddedChunk, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	return sess.Chunks, true
}

// Replace swaps a session's chunks for a fresh processing run and resets
// its chat history.
func (s *Store) Replace(id string, chunks []models.EmbeddedChunk) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return false
	}
	sess.Chunks = chunks
	sess.History = nil
	sess.UpdatedAt = time.Now()
	return true
}

// AppendTurn adds one exchange unit to a session's chat history.
func (s *Store) AppendTurn(id string, turn models.ChatTurn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return false
	}
	sess.History = append(sess.History, turn)
	sess.UpdatedAt = time.Now()
	return true
}

// History returns a copy of a session's chat history in insertion order.
func (s *Store) History(id string) ([]models.ChatTurn, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	turns := make([]models.ChatTurn, len(sess.History))
	copy(turns, sess.History)
	return turns, true
}

// Delete removes a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
