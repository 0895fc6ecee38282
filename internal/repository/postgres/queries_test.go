package postgres

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreditEntriesQuery_IncrementsInPlace(t *testing.T) {
	userID := uuid.New()

	sql, args, err := creditEntriesQuery(userID, 2).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "UPDATE users SET entry_count = entry_count + $1 WHERE id = $2", sql)
	// squirrel.Eq runs driver.Valuer, so the id arrives as its string form.
	assert.Equal(t, []interface{}{2, userID.String()}, args)
}

func TestReconcileEntriesQuery(t *testing.T) {
	userID := uuid.New()

	sql, args, err := reconcileEntriesQuery(userID).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "SET entry_count = (SELECT COALESCE(SUM(entries_earned), 0) FROM purchases WHERE user_id = $1)")
	assert.Contains(t, sql, "WHERE id = $2 RETURNING id, first_name")
	assert.NotContains(t, sql, "deleted_at")
	assert.Equal(t, []interface{}{userID, userID.String()}, args)
}

func TestListPurchasesQuery(t *testing.T) {
	sql, args, err := listPurchasesQuery(nil).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "WHERE deleted_at IS NULL ORDER BY date_created")
	assert.Empty(t, args)

	userID := uuid.New()
	sql, args, err = listPurchasesQuery(&userID).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "WHERE deleted_at IS NULL AND user_id = $1")
	assert.Equal(t, []interface{}{userID.String()}, args)
}
