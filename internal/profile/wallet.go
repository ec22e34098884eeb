package profile

import (
	"context"
	"fmt"
	"sync"

	"github.com/osse101/FleaMarket_Go/internal/domain"
)

// Wallet holds currency balances per profile and charges barter costs against the
// profile's inventory.
type Wallet struct {
	mu       sync.Mutex
	balances map[string]map[string]int
	inv      *Inventory
}

// NewWallet creates a wallet. inv may be nil when barter trades are not needed.
func NewWallet(inv *Inventory) *Wallet {
	return &Wallet{balances: make(map[string]map[string]int), inv: inv}
}

// Balance returns a profile's balance in one currency.
func (w *Wallet) Balance(profileID, currency string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.balances[profileID][currency]
}

// Credit adds money to a profile.
func (w *Wallet) Credit(ctx context.Context, profileID string, money domain.Money) error {
	if money.Amount <= 0 {
		return fmt.Errorf(ErrMsgBadAmountFmt, domain.ErrInvalidInput, money.Amount)
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	b, ok := w.balances[profileID]
	if !ok {
		b = make(map[string]int)
		w.balances[profileID] = b
	}
	b[money.Currency] += money.Amount
	return nil
}

// Charge takes a cost from a profile. Money comes from the balance, barter items from
// the inventory. Nothing is taken when the profile cannot cover the whole cost.
func (w *Wallet) Charge(ctx context.Context, profileID string, cost domain.Cost) error {
	if cost.Money != nil {
		return w.chargeMoney(profileID, *cost.Money)
	}
	return w.chargeBarter(profileID, cost.Barter)
}

func (w *Wallet) chargeMoney(profileID string, money domain.Money) error {
	if money.Amount < 0 {
		return fmt.Errorf(ErrMsgBadAmountFmt, domain.ErrInvalidInput, money.Amount)
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	have := w.balances[profileID][money.Currency]
	if have < money.Amount {
		return fmt.Errorf(ErrMsgShortFundsFmt, domain.ErrInsufficientFunds, profileID, have, money.Amount, money.Currency)
	}
	if money.Amount > 0 {
		w.balances[profileID][money.Currency] = have - money.Amount
	}
	return nil
}

func (w *Wallet) chargeBarter(profileID string, barter []domain.Requirement) error {
	if len(barter) == 0 {
		return nil
	}
	if w.inv == nil {
		return fmt.Errorf(ErrMsgShortFundsFmt, domain.ErrInsufficientFunds, profileID, 0, barter[0].Count, barter[0].TemplateID)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for _, r := range barter {
		if have := w.inv.Units(profileID, r.TemplateID); have < r.Count {
			return fmt.Errorf(ErrMsgShortFundsFmt, domain.ErrInsufficientFunds, profileID, have, r.Count, r.TemplateID)
		}
	}
	for _, r := range barter {
		if !w.inv.TakeUnits(profileID, r.TemplateID, r.Count) {
			return fmt.Errorf(ErrMsgShortFundsFmt, domain.ErrInsufficientFunds, profileID, 0, r.Count, r.TemplateID)
		}
	}
	return nil
}
