package project

import (
	"context"
)

// SaveProjectDocument schedules a debounced write of the project document.
func (s *Store) SaveProjectDocument() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.armed {
		return ErrNotLoaded
	}
	s.saveDoc.Trigger()
	return nil
}

// SaveUserStateDocument schedules a debounced write of the user state document.
func (s *Store) SaveUserStateDocument() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.armed {
		return ErrNotLoaded
	}
	s.saveUser.Trigger()
	return nil
}

// Flush performs pending saves right away.
func (s *Store) Flush() {
	s.mu.Lock()
	saveDoc, saveUser := s.saveDoc, s.saveUser
	s.mu.Unlock()

	if saveDoc != nil {
		saveDoc.Flush()
	}
	if saveUser != nil {
		saveUser.Flush()
	}
}

// persistProjectDocument записывает текущий документ проекта; ошибки только логируются
func (s *Store) persistProjectDocument() {
	s.mu.Lock()
	if s.project == nil {
		s.mu.Unlock()
		return
	}
	p := *s.project
	doc := s.doc.Clone()
	s.mu.Unlock()

	if err := s.apiClient.PutProjectDocument(context.Background(), p, doc); err != nil {
		s.logger.Warn("Failed to save project document", "project", p.URL(), "error", err)
		return
	}
	s.logger.Debug("Project document saved", "project", p.URL())
}

// persistUserState записывает пользовательское состояние; ошибки только логируются
func (s *Store) persistUserState() {
	s.mu.Lock()
	if s.project == nil {
		s.mu.Unlock()
		return
	}
	p := *s.project
	user := s.user.Clone()
	s.mu.Unlock()

	if err := s.apiClient.PutUserState(context.Background(), p, user); err != nil {
		s.logger.Warn("Failed to save user state", "project", p.URL(), "error", err)
		return
	}
	s.logger.Debug("User state saved", "project", p.URL())
}
