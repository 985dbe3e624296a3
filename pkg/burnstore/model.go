package burnstore

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"github.com/xenartist/memo.rip/pkg/burn"
)

// BurnDao maps directly to the 'burns' table in PostgreSQL.
type BurnDao struct {
	bun.BaseModel `bun:"table:burns,alias:b"`
	Signature     string              `bun:"signature,pk,type:varchar(128)"`
	Burner        *string             `bun:"burner,type:varchar(64)"`
	Amount        decimal.NullDecimal `bun:"amount,type:numeric(20,0)"`
	Token         *string             `bun:"token,type:varchar(64)"`
	Memo          *string             `bun:"memo,type:text"`
	BlockTime     *time.Time          `bun:"block_time,type:timestamptz"`
	Reconciled    bool                `bun:"reconciled,notnull,default:false"`
	CheckAttempts int                 `bun:"check_attempts,notnull,default:0"`
	LastCheckedAt *time.Time          `bun:"last_checked_at,type:timestamptz"`
	LastError     *string             `bun:"last_error,type:text"`
	CreatedAt     time.Time           `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt     time.Time           `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// AddressTotalRow is the scan target of the per-address aggregate.
type AddressTotalRow struct {
	Burner      string          `bun:"burner"`
	TotalAmount decimal.Decimal `bun:"total_amount"`
	BurnCount   int64           `bun:"burn_count"`
}

func toReconciledDao(d *burn.Detail) *BurnDao {
	blockTime := d.Timestamp.UTC()
	dao := &BurnDao{
		Signature:  d.Signature,
		Burner:     &d.Burner,
		Amount:     decimal.NewNullDecimal(decimal.NewFromUint64(d.Amount)),
		Token:      &d.Token,
		BlockTime:  &blockTime,
		Reconciled: true,
	}
	if d.Memo != "" {
		dao.Memo = &d.Memo
	}
	return dao
}

func toRecord(dao *BurnDao) burn.Record {
	rec := burn.Record{
		Signature:     dao.Signature,
		Reconciled:    dao.Reconciled,
		CreatedAt:     dao.CreatedAt,
		CheckAttempts: dao.CheckAttempts,
		LastCheckedAt: dao.LastCheckedAt,
	}
	if dao.Burner != nil {
		rec.Burner = *dao.Burner
	}
	if dao.Amount.Valid {
		rec.Amount = dao.Amount.Decimal.BigInt().Uint64()
	}
	if dao.Token != nil {
		rec.Token = *dao.Token
	}
	if dao.Memo != nil {
		rec.Memo = *dao.Memo
	}
	if dao.BlockTime != nil {
		rec.Timestamp = dao.BlockTime.UTC()
	}
	if dao.LastError != nil {
		rec.LastError = *dao.LastError
	}
	return rec
}

func toRecords(daos []BurnDao) []burn.Record {
	out := make([]burn.Record, len(daos))
	for i := range daos {
		out[i] = toRecord(&daos[i])
	}
	return out
}

func toAddressTotals(rows []AddressTotalRow) []burn.AddressTotal {
	out := make([]burn.AddressTotal, len(rows))
	for i, row := range rows {
		out[i] = burn.AddressTotal{
			Address:     row.Burner,
			TotalAmount: row.TotalAmount,
			BurnCount:   row.BurnCount,
		}
	}
	return out
}
