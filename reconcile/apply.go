package reconcile

import (
	"encoding/json"
	"fmt"

	"khata-backend/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Action names the sale flow that triggered a reconciliation batch.
type Action string

const (
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Apply adjusts stock levels inside the caller's transaction and records an
// audit row. Each delta is an atomic `quantity = quantity + ?` update, so
// concurrent sales of the same item cannot lose each other's writes. A delta
// whose stock name matches no row is a soft miss: logged and skipped, the
// sale itself is unaffected. Database errors abort the whole transaction.
func Apply(tx *gorm.DB, action Action, billNo string, lines []Line, deltas []Delta) error {
	for _, d := range deltas {
		res := tx.Model(&models.StockItem{}).
			Where("name = ?", d.Stock).
			Update("quantity", gorm.Expr("quantity + ?", d.Qty))
		if res.Error != nil {
			return fmt.Errorf("stock adjustment for %q failed: %w", d.Stock, res.Error)
		}
		if res.RowsAffected == 0 {
			zap.L().Warn("stock item not found for sold line, reconciliation skipped",
				zap.String("stock", d.Stock),
				zap.String("billno", billNo),
				zap.String("action", string(action)))
		}
	}

	snapshot, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal adjustment snapshot: %w", err)
	}
	adj := models.StockAdjustment{
		BillNo: billNo,
		Action: string(action),
		Lines:  snapshot,
	}
	if err := tx.Create(&adj).Error; err != nil {
		return fmt.Errorf("record stock adjustment: %w", err)
	}
	return nil
}
