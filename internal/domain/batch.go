package domain

// OperationBatch is the staged outcome of one logical operation. Nothing is
// persisted mid-flow; the whole batch is written and committed by a single
// unit-of-work save at the end of the handler.
type OperationBatch struct {
	// Accounts whose balance, digest, status or version changed.
	Accounts []*Account
	// Ledger entries created by the operation, one per affected account.
	Transactions []*Transaction
	// Teller drawer mirror rows.
	TellerOperations []*TellerOperation
	// Transfer record to create (ID zero) or whose decision to persist.
	Transfer *Transfer
}
