package unitofwork

import "context"

// RunInTransaction begins a transaction on uow, runs fn and commits.
// Any error from fn, or a panic, rolls the transaction back.
func RunInTransaction(ctx context.Context, uow UnitOfWork, fn func() error) (err error) {
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			_ = uow.Rollback()
			panic(r)
		}
	}()

	if err = fn(); err != nil {
		_ = uow.Rollback()
		return err
	}
	return uow.Commit()
}
