package types

import (
	"github.com/google/uuid"
	"github.com/openalpha/lob-core/pkg/fixedpoint"
	"github.com/openalpha/lob-core/pkg/id"
)

// Account is the balance record the registry can also own, per spec 2's
// note that specialized registries expose constructors for both Order and
// Account. The matching core never reads it directly; it exists so a
// position-keeping consumer can share the same registry machinery.
type Account struct {
	ID id.Id

	// ParticipantRef identifies which trading participant this balance
	// belongs to. Orders carry the same reference in their optional
	// ParticipantID field, so two accounts never collide just because they
	// happen to trade the same instrument.
	ParticipantRef id.Id
	Balance        fixedpoint.Price

	// ExternalRef is a stable reference usable outside this process (e.g.
	// to correlate with a participant catalog entry), independent of the
	// process-local monotonic ID.
	ExternalRef uuid.UUID
}

// GetID implements EventData so account-related notifications can reuse the
// same event plumbing as orders and trades.
func (a Account) GetID() id.Id { return a.ID }

// NewAccount constructs an Account with a fresh external reference.
func NewAccount(accountID, participantRef id.Id, balance fixedpoint.Price) Account {
	return Account{
		ID:             accountID,
		ParticipantRef: participantRef,
		Balance:        balance,
		ExternalRef:    uuid.New(),
	}
}

// WithBalance returns a copy of a with Balance replaced.
func (a Account) WithBalance(balance fixedpoint.Price) Account {
	a.Balance = balance
	return a
}
