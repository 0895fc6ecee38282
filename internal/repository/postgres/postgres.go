package postgres

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"raffle-api/internal/domain/models"
	"raffle-api/internal/repository"

	"github.com/Masterminds/squirrel"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var userColumns = []string{
	"id", "first_name", "last_name", "email", "password", "gender", "mobile_number", "birthday",
	"street", "city", "campaign_id", "campaign_name", "entry_count", "date_created", "date_updated", "last_login",
}

var purchaseColumns = []string{
	"id", "user_id", "amount", "store_name", "card_used", "transaction_date", "transaction_type",
	"campaign_id", "campaign_name", "entries_earned", "date_created", "deleted_at",
}

type Storage struct {
	db *pgxpool.Pool
}

func NewPostgres(ctx context.Context, conn string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := pgxpool.New(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

// RunMigrations applies every pending up migration from migrationsFS.
// conn must be a postgres:// URL.
func RunMigrations(conn string, migrationsFS fs.FS) (uint, error) {
	const op = "storage.postgres.RunMigrations"

	src, err := iofs.New(migrationsFS, ".")
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, conn)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	version, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return version, nil
}

func (s *Storage) SaveUser(ctx context.Context, user models.User) error {
	const op = "storage.postgres.SaveUser"

	sql, args, err := psql.Insert("users").
		Columns(userColumns...).
		Values(
			user.ID, user.FirstName, user.LastName, user.Email, user.Password, user.Gender, user.MobileNumber,
			user.Birthday, user.Address.Street, user.Address.City, user.AcceptedTerms.CampaignID,
			user.AcceptedTerms.CampaignName, user.EntryCount, user.DateCreated, user.DateUpdated, user.LastLogin,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = s.db.Exec(ctx, sql, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, repository.ErrUserAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error) {
	const op = "storage.postgres.GetUserByID"

	sql, args, err := psql.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	user, err := scanUser(s.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, fmt.Errorf("%s: %w", op, repository.ErrUserNotFound)
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	const op = "storage.postgres.GetUserByEmail"

	sql, args, err := psql.Select(userColumns...).
		From("users").
		Where("lower(email) = lower(?)", email).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	user, err := scanUser(s.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, fmt.Errorf("%s: %w", op, repository.ErrUserNotFound)
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]models.User, error) {
	const op = "storage.postgres.ListUsers"

	sql, args, err := psql.Select(userColumns...).
		From("users").
		OrderBy("date_created").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return users, nil
}

// UpdateUser writes the profile fields. entry_count is never part of the update.
func (s *Storage) UpdateUser(ctx context.Context, user models.User) error {
	const op = "storage.postgres.UpdateUser"

	query := psql.Update("users").
		Set("first_name", user.FirstName).
		Set("last_name", user.LastName).
		Set("email", user.Email).
		Set("gender", user.Gender).
		Set("mobile_number", user.MobileNumber).
		Set("birthday", user.Birthday).
		Set("street", user.Address.Street).
		Set("city", user.Address.City).
		Set("date_updated", user.DateUpdated).
		Where(squirrel.Eq{"id": user.ID})
	if len(user.Password) > 0 {
		query = query.Set("password", user.Password)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := s.db.Exec(ctx, sql, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, repository.ErrUserAlreadyExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrUserNotFound)
	}

	return nil
}

func (s *Storage) TouchLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	const op = "storage.postgres.TouchLastLogin"

	sql, args, err := psql.Update("users").
		Set("last_login", at).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := s.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrUserNotFound)
	}

	return nil
}

// DeleteUser removes the user's purchases and then the user in one transaction.
func (s *Storage) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	const op = "storage.postgres.DeleteUser"

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	purchasesQuery, purchasesArgs, err := psql.Delete("purchases").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := tx.Exec(ctx, purchasesQuery, purchasesArgs...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	userQuery, userArgs, err := psql.Delete("users").
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	tag, err := tx.Exec(ctx, userQuery, userArgs...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrUserNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ReconcileEntries sets entry_count to the sum of entries_earned over all of
// the user's purchases, soft-deleted ones included.
func (s *Storage) ReconcileEntries(ctx context.Context, userID uuid.UUID) (models.User, error) {
	const op = "storage.postgres.ReconcileEntries"

	sql, args, err := reconcileEntriesQuery(userID).ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	user, err := scanUser(s.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, fmt.Errorf("%s: %w", op, repository.ErrUserNotFound)
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// CreatePurchase inserts the purchase and credits its entries to the owner in
// a single transaction. The increment is done in SQL, so concurrent purchases
// for one user never overwrite each other's credit.
func (s *Storage) CreatePurchase(ctx context.Context, purchase models.Purchase) error {
	const op = "storage.postgres.CreatePurchase"

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	creditQuery, creditArgs, err := creditEntriesQuery(purchase.UserID, purchase.EntriesEarned).ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := tx.Exec(ctx, creditQuery, creditArgs...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrUserNotFound)
	}

	insertQuery, insertArgs, err := psql.Insert("purchases").
		Columns(purchaseColumns...).
		Values(
			purchase.ID, purchase.UserID, purchase.Amount, purchase.StoreName, purchase.CardUsed,
			purchase.TransactionDate, purchase.TransactionType, purchase.Campaign.ID, purchase.Campaign.Name,
			purchase.EntriesEarned, purchase.DateCreated, purchase.DeletedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := tx.Exec(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) GetPurchase(ctx context.Context, purchaseID uuid.UUID) (models.Purchase, error) {
	const op = "storage.postgres.GetPurchase"

	sql, args, err := psql.Select(purchaseColumns...).
		From("purchases").
		Where(squirrel.Eq{"id": purchaseID, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return models.Purchase{}, fmt.Errorf("%s: %w", op, err)
	}

	purchase, err := scanPurchase(s.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Purchase{}, fmt.Errorf("%s: %w", op, repository.ErrPurchaseNotFound)
		}
		return models.Purchase{}, fmt.Errorf("%s: %w", op, err)
	}

	return purchase, nil
}

func (s *Storage) ListPurchases(ctx context.Context, userID *uuid.UUID) ([]models.Purchase, error) {
	const op = "storage.postgres.ListPurchases"

	sql, args, err := listPurchasesQuery(userID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	purchases := make([]models.Purchase, 0)
	for rows.Next() {
		purchase, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		purchases = append(purchases, purchase)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return purchases, nil
}

// DeletePurchase marks the purchase deleted. The owner's entry_count is not touched.
func (s *Storage) DeletePurchase(ctx context.Context, purchaseID uuid.UUID) error {
	const op = "storage.postgres.DeletePurchase"

	sql, args, err := psql.Update("purchases").
		Set("deleted_at", time.Now()).
		Where(squirrel.Eq{"id": purchaseID, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := s.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrPurchaseNotFound)
	}

	return nil
}

func (s *Storage) Close() error {
	s.db.Close()
	return nil
}

func creditEntriesQuery(userID uuid.UUID, entries int) squirrel.UpdateBuilder {
	return psql.Update("users").
		Set("entry_count", squirrel.Expr("entry_count + ?", entries)).
		Where(squirrel.Eq{"id": userID})
}

func reconcileEntriesQuery(userID uuid.UUID) squirrel.UpdateBuilder {
	return psql.Update("users").
		Set("entry_count", squirrel.Expr(
			"(SELECT COALESCE(SUM(entries_earned), 0) FROM purchases WHERE user_id = ?)", userID)).
		Where(squirrel.Eq{"id": userID}).
		Suffix("RETURNING " + strings.Join(userColumns, ", "))
}

func listPurchasesQuery(userID *uuid.UUID) squirrel.SelectBuilder {
	query := psql.Select(purchaseColumns...).
		From("purchases").
		Where(squirrel.Eq{"deleted_at": nil}).
		OrderBy("date_created")
	if userID != nil {
		query = query.Where(squirrel.Eq{"user_id": *userID})
	}

	return query
}

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Password, &u.Gender, &u.MobileNumber, &u.Birthday,
		&u.Address.Street, &u.Address.City, &u.AcceptedTerms.CampaignID, &u.AcceptedTerms.CampaignName,
		&u.EntryCount, &u.DateCreated, &u.DateUpdated, &u.LastLogin,
	)

	return u, err
}

func scanPurchase(row pgx.Row) (models.Purchase, error) {
	var p models.Purchase
	err := row.Scan(
		&p.ID, &p.UserID, &p.Amount, &p.StoreName, &p.CardUsed, &p.TransactionDate, &p.TransactionType,
		&p.Campaign.ID, &p.Campaign.Name, &p.EntriesEarned, &p.DateCreated, &p.DeletedAt,
	)

	return p, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
