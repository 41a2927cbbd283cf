// Package messaging derives conversation threads and unread counters from the
// flat message collection and enforces who may message whom. There is no push
// channel: callers re-query after every send.
package messaging

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"mhimmo/internal/domain"
	"mhimmo/internal/store"
)

type Conversation struct {
	User        domain.User     `json:"user"`
	LastMessage *domain.Message `json:"last_message,omitempty"`
	UnreadCount int             `json:"unread_count"`
}

// Thread returns the messages exchanged between a and b, oldest first. Equal
// timestamps keep insertion order.
func Thread(msgs []domain.Message, a, b string) []domain.Message {
	out := make([]domain.Message, 0)
	for _, m := range msgs {
		if m.Between(a, b) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// Conversations builds the conversation list of viewer: one entry per
// permitted counterpart, most recent activity first, silent counterparts last
// in insertion order.
func Conversations(d store.Dataset, viewer domain.User) []Conversation {
	cands := Candidates(d.Users, viewer)
	convs := make([]Conversation, 0, len(cands))
	for _, c := range cands {
		th := Thread(d.Messages, viewer.ID, c.ID)
		conv := Conversation{User: c}
		if n := len(th); n > 0 {
			last := th[n-1]
			conv.LastMessage = &last
		}
		for _, m := range th {
			if m.RecipientID == viewer.ID && !m.Read {
				conv.UnreadCount++
			}
		}
		convs = append(convs, conv)
	}
	sort.SliceStable(convs, func(i, j int) bool {
		a, b := convs[i].LastMessage, convs[j].LastMessage
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return convs
}

// Index answers messaging queries against the live store.
type Index struct {
	store *store.Store
	log   *zap.Logger
}

func NewIndex(s *store.Store, l *zap.Logger) *Index {
	if l == nil {
		l = zap.NewNop()
	}
	return &Index{store: s, log: l}
}

// Conversations returns the conversation list of the user viewerID. ok is
// false when viewerID does not resolve to a user.
func (ix *Index) Conversations(viewerID string) (convs []Conversation, ok bool) {
	ix.store.View(func(d store.Dataset) {
		var viewer domain.User
		if viewer, ok = d.UserByID(viewerID); ok {
			convs = Conversations(d, viewer)
		}
	})
	return
}

func (ix *Index) Thread(a, b string) (th []domain.Message) {
	ix.store.View(func(d store.Dataset) { th = Thread(d.Messages, a, b) })
	return
}

// UnreadTotal counts every unread message addressed to userID.
func (ix *Index) UnreadTotal(userID string) (n int) {
	ix.store.View(func(d store.Dataset) {
		for _, m := range d.Messages {
			if m.RecipientID == userID && !m.Read {
				n++
			}
		}
	})
	return
}

// Send validates and stores a message from senderID. The sender must be a
// known user, the trimmed content non-empty and the recipient one of the
// sender's permitted counterparts.
func (ix *Index) Send(ctx context.Context, senderID, recipientID, content string, typ domain.MessageType) (domain.Message, error) {
	if senderID == "" {
		return domain.Message{}, domain.ErrNotAuthenticated
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Message{}, domain.ErrEmptyContent
	}
	if typ != "" && !typ.Valid() {
		typ = domain.MessageText
	}

	var sender, recipient domain.User
	var senderOK, recipientOK bool
	ix.store.View(func(d store.Dataset) {
		sender, senderOK = d.UserByID(senderID)
		recipient, recipientOK = d.UserByID(recipientID)
	})
	if !senderOK {
		return domain.Message{}, domain.ErrNotAuthenticated
	}
	if !recipientOK || recipient.ID == sender.ID || !CanMessage(sender.Role, recipient.Role) {
		ix.log.Debug("message rejected by visibility matrix",
			zap.String("sender", sender.ID), zap.String("recipient", recipientID))
		return domain.Message{}, domain.ErrRecipientNotAllowed
	}

	return ix.store.CreateMessage(ctx, domain.NewMessage{
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		Content:     content,
		Type:        typ,
	})
}

// MarkThreadRead marks as read the messages counterpartID sent to viewerID.
func (ix *Index) MarkThreadRead(ctx context.Context, viewerID, counterpartID string) (int, error) {
	if viewerID == "" {
		return 0, domain.ErrNotAuthenticated
	}
	return ix.store.MarkRead(ctx, viewerID, counterpartID)
}
