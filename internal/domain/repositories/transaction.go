package repositories

import "context"

// TxFn runs with a context that carries the open transaction
type TxFn func(ctx context.Context) error

// TransactionManager scopes a unit of work, e.g. a folder delete that first
// reassigns its PDFs. Repositories called with the ctx passed to fn take part
// in the transaction; a nested ExecTx joins the outer one instead of opening
// a second.
type TransactionManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}
