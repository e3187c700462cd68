package validators

import (
	"github.com/CardLedger/CardLedger-Backend/src/models"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

func CheckIntent(item *models.ItemModel, desired models.Intent) error {
	if item.Intent != desired {
		return &IntentMismatchError{ItemID: item.ID, Expected: desired, Actual: item.Intent}
	}
	return nil
}

func CheckStatus(item *models.ItemModel, desired models.Status) error {
	if item.Status != desired {
		return &StatusMismatchError{ItemID: item.ID, Expected: desired, Actual: item.Status}
	}
	return nil
}

// CheckGradingRecordUpdate enforces that an ungraded record receives its fee, grade and cert
// together.
func CheckGradingRecordUpdate(record *models.GradingRecordModel, update models.GradingRecordUpdate) error {
	if !record.IsUngraded() {
		return nil
	}
	changes := []bool{setsValue(update.GradingFee), setsValue(update.Grade), setsValue(update.Cert)}
	if lo.Contains(changes, true) && lo.Contains(changes, false) {
		return NewValidationError(RuleGradingRecordUpdate,
			"Updating a record from ungraded to graded requires setting all of grading_fee, grade, and cert",
			"grading_fee", "grade", "cert")
	}
	return nil
}

func setsValue[T any](o mo.Option[*T]) bool {
	v, ok := o.Get()
	return ok && v != nil
}
