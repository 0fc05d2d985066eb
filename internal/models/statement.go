package models

type CashFlow string

const (
	CashFlowAll    CashFlow = "All"
	CashFlowCredit CashFlow = "Credit"
	CashFlowDebit  CashFlow = "Debit"
)

// BalanceTransferStatement is the immutable record of a completed transfer.
// CreatedAt is epoch milliseconds. CashFlow is not persisted; it depends on who is viewing.
type BalanceTransferStatement struct {
	ID                   int64    `json:"id" db:"id"`
	SenderUserID         int64    `json:"senderUserId" db:"sender_user_id"`
	ReceiverUserID       int64    `json:"receiverUserId" db:"receiver_user_id"`
	Amount               int64    `json:"amount" db:"amount"`
	Purpose              string   `json:"purpose" db:"purpose"`
	Remarks              string   `json:"remarks" db:"remarks"`
	SenderUsername       string   `json:"senderUsername" db:"sender_username"`
	ReceiverUsername     string   `json:"receiverUsername" db:"receiver_username"`
	SenderTotalBalance   int64    `json:"senderTotalBalance" db:"sender_total_balance"`
	ReceiverTotalBalance int64    `json:"receiverTotalBalance" db:"receiver_total_balance"`
	CreatedAt            int64    `json:"createdAt" db:"created_at"`
	CashFlow             CashFlow `json:"cashFlow,omitempty" db:"-"`
}

// ForViewer labels the statement from the viewer's side: Credit for the sender, Debit for the receiver.
func (s BalanceTransferStatement) ForViewer(viewerID int64) BalanceTransferStatement {
	if s.SenderUserID == viewerID {
		s.CashFlow = CashFlowCredit
	} else {
		s.CashFlow = CashFlowDebit
	}
	return s
}
