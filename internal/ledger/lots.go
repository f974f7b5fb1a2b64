package ledger

import (
	"fmt"
	"strconv"
	"time"

	"github.com/avc/points-ledger/internal/domain"
)

// ExpirationReason метка операций сгорания
const ExpirationReason = "points_expired"

// Lot партия начисленных баллов и ее непотраченный остаток
type Lot struct {
	TransactionID int64
	Kind          domain.TransactionKind
	Points        int64
	Remaining     int64
	CreatedAt     time.Time
	ExpiresAt     *time.Time
}

// Overdue возвращает true, если срок партии истек к моменту now, а остаток не нулевой
func (l *Lot) Overdue(now time.Time) bool {
	return l.Remaining > 0 && l.ExpiresAt != nil && !l.ExpiresAt.After(now)
}

// Lots строит партии начислений по журналу в порядке добавления.
// Списания расходуют самые ранние партии (FIFO), сгорание обнуляет
// остаток партии, на которую ссылается.
func Lots(txs []*domain.PointTransaction) []*Lot {
	var lots []*Lot
	byID := make(map[int64]*Lot)

	for _, tx := range txs {
		switch {
		case tx.Kind.IsCredit():
			lot := &Lot{
				TransactionID: tx.ID,
				Kind:          tx.Kind,
				Points:        tx.Points,
				Remaining:     tx.Points,
				CreatedAt:     tx.CreatedAt,
				ExpiresAt:     tx.ExpiresAt,
			}
			lots = append(lots, lot)
			byID[tx.ID] = lot

		case tx.Kind == domain.KindExpired && tx.ReferenceType == domain.ReferenceTypeTransaction:
			id, err := strconv.ParseInt(tx.ReferenceID, 10, 64)
			lot, ok := byID[id]
			if err != nil || !ok {
				consume(lots, tx.Magnitude())
				continue
			}
			lot.Remaining -= tx.Magnitude()
			if lot.Remaining < 0 {
				lot.Remaining = 0
			}

		case tx.Kind == domain.KindRedeemed || tx.Kind == domain.KindExpired:
			consume(lots, tx.Magnitude())
		}
	}

	return lots
}

// consume списывает amount с партий начиная с самой ранней
func consume(lots []*Lot, amount int64) {
	for _, lot := range lots {
		if amount == 0 {
			return
		}
		if lot.Remaining == 0 {
			continue
		}
		take := min(lot.Remaining, amount)
		lot.Remaining -= take
		amount -= take
	}
}

// ExpirationEntries формирует операции сгорания для всех просроченных партий.
// Каждая операция ссылается на свою партию и не превышает ее остатка.
func ExpirationEntries(userID int64, txs []*domain.PointTransaction, now time.Time) []*domain.PointTransaction {
	var entries []*domain.PointTransaction
	for _, lot := range Lots(txs) {
		if !lot.Overdue(now) {
			continue
		}
		entries = append(entries, &domain.PointTransaction{
			UserID:        userID,
			Points:        -lot.Remaining,
			Kind:          domain.KindExpired,
			Reason:        ExpirationReason,
			Description:   fmt.Sprintf("expired remainder of transaction %d earned at %s", lot.TransactionID, lot.CreatedAt.Format(time.RFC3339)),
			ReferenceType: domain.ReferenceTypeTransaction,
			ReferenceID:   strconv.FormatInt(lot.TransactionID, 10),
			CreatedAt:     now,
		})
	}
	return entries
}
