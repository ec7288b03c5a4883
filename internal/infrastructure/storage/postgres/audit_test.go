package postgres

import (
	"context"
	"encoding/json"
	"os"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	appctx "stockroom/internal/core/context"
	"stockroom/internal/core/id"
	"stockroom/internal/core/types"
	"stockroom/internal/domain/ledger"
)

// recordingTx captures every Exec issued on the transaction. Unused
// pgx.Tx methods panic if reached.
type recordingTx struct {
	pgx.Tx

	sqls []string
	args [][]any
}

func (t *recordingTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	t.sqls = append(t.sqls, sql)
	t.args = append(t.args, arguments)
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func newRecordingAudit(t *testing.T) (*AuditService, *recordingTx, context.Context) {
	t.Helper()

	svc, err := NewAuditService(NewTxManagerFromRawPool(nil))
	require.NoError(t, err)

	rec := &recordingTx{}
	ctx := context.WithValue(context.Background(), txKey{}, &Tx{Tx: rec})
	return svc, rec, ctx
}

func auditMovement(tenantID id.ID) *ledger.Movement {
	supplierID := id.New()
	mv := ledger.NewEntry(tenantID, time.Now().UTC(), ledger.OriginSupplier)
	mv.SupplierID = &supplierID
	mv.Number = "ENT-2026-000001"
	mv.AddEntryItem(id.New(), 3, types.MustMoney("10.50"))
	return mv
}

var insertColsRE = regexp.MustCompile(`INSERT INTO sys_audit \(([^)]+)\)`)

// The insert must bind exactly the columns the migration declares, one
// placeholder per argument.
func TestAuditMovementPosted_MatchesSchemaColumns(t *testing.T) {
	svc, rec, ctx := newRecordingAudit(t)

	err := svc.MovementPosted(ctx, auditMovement(id.New()))
	require.NoError(t, err)
	require.Len(t, rec.sqls, 1)

	match := insertColsRE.FindStringSubmatch(strings.Join(strings.Fields(rec.sqls[0]), " "))
	require.NotNil(t, match, "insert statement not recognized: %s", rec.sqls[0])

	var insertCols []string
	for _, col := range strings.Split(match[1], ",") {
		insertCols = append(insertCols, strings.TrimSpace(col))
	}
	require.Equal(t, auditCols, insertCols)
	require.Len(t, rec.args[0], len(insertCols))

	ddl, err := os.ReadFile("../../../../migrations/001_init.sql")
	require.NoError(t, err)

	start := strings.Index(string(ddl), "CREATE TABLE sys_audit (")
	require.GreaterOrEqual(t, start, 0, "sys_audit missing from migration")
	table := string(ddl)[start:]
	table = table[:strings.Index(table, ");")]

	for _, col := range insertCols {
		require.Contains(t, table, "\n    "+col, "column %s not in sys_audit DDL", col)
	}
}

func TestAuditMovementPosted_NoPrincipalLeavesUserNull(t *testing.T) {
	svc, rec, ctx := newRecordingAudit(t)

	err := svc.MovementPosted(ctx, auditMovement(id.New()))
	require.NoError(t, err)

	// user_id is $6, user_email is $7
	userID, ok := rec.args[0][5].(*id.ID)
	require.True(t, ok, "user_id bound as %T", rec.args[0][5])
	require.Nil(t, userID)
	require.Equal(t, "", rec.args[0][6])
}

func TestAuditMovementPosted_StampsPrincipal(t *testing.T) {
	svc, rec, ctx := newRecordingAudit(t)

	principal := &appctx.Principal{
		UserID: id.New(),
		Email:  "almox@example.com",
	}
	ctx = appctx.WithPrincipal(ctx, principal)

	err := svc.MovementPosted(ctx, auditMovement(id.New()))
	require.NoError(t, err)

	userID, ok := rec.args[0][5].(*id.ID)
	require.True(t, ok)
	require.NotNil(t, userID)
	require.Equal(t, principal.UserID, *userID)
	require.Equal(t, "almox@example.com", rec.args[0][6])
}

func TestAuditMovementPosted_CompressesLargeSnapshots(t *testing.T) {
	svc, rec, ctx := newRecordingAudit(t)
	svc.compressThreshold = 64

	mv := auditMovement(id.New())
	notes := strings.Repeat("opening stock count, aisle 7. ", 20)
	mv.Notes = &notes

	err := svc.MovementPosted(ctx, mv)
	require.NoError(t, err)

	// changes is $8, compression_algo is $9
	require.Equal(t, CompressionZstd, rec.args[0][8])

	compressed, ok := rec.args[0][7].([]byte)
	require.True(t, ok)

	restored, err := svc.decoder.DecodeAll(compressed, nil)
	require.NoError(t, err)

	expected, err := json.Marshal(mv)
	require.NoError(t, err)
	require.JSONEq(t, string(expected), string(restored))
}

func TestAuditMovementPosted_SmallSnapshotStoredRaw(t *testing.T) {
	svc, rec, ctx := newRecordingAudit(t)

	mv := auditMovement(id.New())
	err := svc.MovementPosted(ctx, mv)
	require.NoError(t, err)

	require.Equal(t, CompressionNone, rec.args[0][8])

	raw, ok := rec.args[0][7].([]byte)
	require.True(t, ok)
	require.True(t, json.Valid(raw))
}
