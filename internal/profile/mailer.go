package profile

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/FleaMarket_Go/internal/domain"
	"github.com/osse101/FleaMarket_Go/internal/logger"
	"github.com/osse101/FleaMarket_Go/internal/utils"
)

// Mail is one delivered message carrying items.
type Mail struct {
	ID     string             `json:"_id"`
	To     string             `json:"to"`
	Items  []domain.ItemStack `json:"items"`
	SentAt time.Time          `json:"sent_at"`
}

// Mailbox keeps delivered mail per profile.
type Mailbox struct {
	mu    sync.Mutex
	boxes map[string][]Mail
	now   func() time.Time
}

// NewMailbox creates an empty mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{boxes: make(map[string][]Mail), now: time.Now}
}

// ReturnItems delivers items to a profile as a single message.
func (m *Mailbox) ReturnItems(ctx context.Context, profileID string, items []domain.ItemStack) error {
	if len(items) == 0 {
		return fmt.Errorf(ErrMsgProfileFmt, domain.ErrInvalidInput, ErrMsgEmptyMail)
	}
	mail := Mail{
		ID:     utils.NewItemID(),
		To:     profileID,
		Items:  domain.CloneItems(items),
		SentAt: m.now(),
	}

	m.mu.Lock()
	m.boxes[profileID] = append(m.boxes[profileID], mail)
	m.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgItemsMailed, "profile_id", profileID, "mail_id", mail.ID, "items", len(items))
	return nil
}

// Inbox returns a copy of a profile's mail, oldest first.
func (m *Mailbox) Inbox(profileID string) []Mail {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Mail, len(m.boxes[profileID]))
	for i, mail := range m.boxes[profileID] {
		mail.Items = domain.CloneItems(mail.Items)
		out[i] = mail
	}
	return out
}
