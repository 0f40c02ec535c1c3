package registry

import (
	"github.com/openalpha/lob-core/pkg/fixedpoint"
	"github.com/openalpha/lob-core/pkg/id"
	"github.com/openalpha/lob-core/x/orderbook/types"
)

// AccountRegistry owns Account balances the same way OrderRegistry owns
// orders: same Registry discipline, a specialized constructor on top.
type AccountRegistry struct {
	*Registry[types.Account]
}

// NewAccountRegistry constructs an empty account registry.
func NewAccountRegistry() *AccountRegistry {
	return &AccountRegistry{Registry: New[types.Account]()}
}

// Create opens a new account for participantRef with the given starting
// balance.
func (r *AccountRegistry) Create(participantRef id.Id, balance fixedpoint.Price) types.Account {
	_, account := r.Registry.Create(func(assigned id.Id) types.Account {
		return types.NewAccount(assigned, participantRef, balance)
	})
	return account
}

// SetBalance overwrites an account's balance.
func (r *AccountRegistry) SetBalance(accountID id.Id, balance fixedpoint.Price) (types.Account, error) {
	return r.Registry.Mutate(accountID, func(a types.Account) (types.Account, error) {
		return a.WithBalance(balance), nil
	})
}
