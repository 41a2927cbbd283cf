package store

import (
	"context"

	"mhimmo/internal/domain"
)

// CreateMessage appends a message. Messages are always created unread and
// default to the text type.
func (s *Store) CreateMessage(ctx context.Context, in domain.NewMessage) (domain.Message, error) {
	if in.Type == "" {
		in.Type = domain.MessageText
	}
	s.mu.Lock()
	m := domain.Message{
		ID:          freshID(s, "msg", s.data.Messages, func(m domain.Message) string { return m.ID }),
		SenderID:    in.SenderID,
		RecipientID: in.RecipientID,
		Content:     in.Content,
		Type:        in.Type,
		CreatedAt:   s.now(),
		Read:        false,
	}
	s.data.Messages = append(s.data.Messages, m)
	err := s.commit(ctx, pending{domain.CollectionMessages, clone(s.data.Messages)})
	return m, err
}

func (s *Store) Messages() []domain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.data.Messages)
}

// MarkRead flips every unread message sent by senderID to recipientID and
// returns how many changed. Only the recipient's side of a thread is touched.
func (s *Store) MarkRead(ctx context.Context, recipientID, senderID string) (int, error) {
	s.mu.Lock()
	n := 0
	for i := range s.data.Messages {
		m := &s.data.Messages[i]
		if m.RecipientID == recipientID && m.SenderID == senderID && !m.Read {
			m.Read = true
			n++
		}
	}
	if n == 0 {
		s.mu.Unlock()
		return 0, nil
	}
	err := s.commit(ctx, pending{domain.CollectionMessages, clone(s.data.Messages)})
	return n, err
}
