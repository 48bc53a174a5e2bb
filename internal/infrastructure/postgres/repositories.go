package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Xausdorf/vietqr-hub/internal/domain/entity"
	"github.com/Xausdorf/vietqr-hub/internal/domain/repository"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type UnitOfWork struct {
	pool *pgxpool.Pool
	tx   pgx.Tx
}

func NewUnitOfWork(pool *pgxpool.Pool) *UnitOfWork {
	return &UnitOfWork{pool: pool}
}

func (u *UnitOfWork) Begin(ctx context.Context) (repository.UnitOfWork, error) {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &UnitOfWork{pool: u.pool, tx: tx}, nil
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Commit(ctx)
}

func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Rollback(ctx)
}

func (u *UnitOfWork) Accounts() repository.BankAccountRepository {
	return &BankAccountRepo{q: u.querier()}
}

func (u *UnitOfWork) Issuances() repository.IssuanceRepository {
	return &IssuanceRepo{q: u.querier()}
}

func (u *UnitOfWork) querier() querier {
	if u.tx != nil {
		return u.tx
	}
	return u.pool
}

type BankAccountRepo struct {
	q querier
}

func (r *BankAccountRepo) FindByIDForShare(ctx context.Context, id uuid.UUID) (*entity.BankAccount, error) {
	var (
		accountNumber string
		holderName    string
		bankName      string
		bankCode      *string
	)
	err := r.q.QueryRow(ctx,
		`SELECT account_number, account_holder_name, bank_name, bank_code
		 FROM bank_accounts WHERE id = $1 FOR SHARE`,
		id,
	).Scan(&accountNumber, &holderName, &bankName, &bankCode)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	code := ""
	if bankCode != nil {
		code = *bankCode
	}
	return entity.ReconstructBankAccount(id, accountNumber, holderName, bankName, code), nil
}

type IssuanceRepo struct {
	q querier
}

func (r *IssuanceRepo) Create(ctx context.Context, i *entity.Issuance) error {
	var amount *int64
	if i.Amount() > 0 {
		a := i.Amount()
		amount = &a
	}
	var purpose *string
	if i.Purpose() != "" {
		p := i.Purpose()
		purpose = &p
	}

	_, err := r.q.Exec(ctx,
		`INSERT INTO qr_issuances (id, account_id, amount, purpose, initiation_method, payload, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		i.ID(), i.AccountID(), amount, purpose, string(i.Method()), i.Payload(), i.CreatedAt(),
	)
	return err
}
