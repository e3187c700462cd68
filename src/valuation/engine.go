// Package valuation computes the derived cost, grading and return figures of an item.
//
// Every figure exists twice: as a pure Go function over a loaded item (this file) and as a
// SQL expression over the items and grading_records tables (expressions.go). Both follow the
// same null rules and round half away from zero, so filtering in the database and displaying
// in memory always agree.
package valuation

import (
	"github.com/CardLedger/CardLedger-Backend/src/models"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/shopspring/decimal"
)

// Values holds every derived figure of one item.
type Values struct {
	TotalGradingFees int
	TotalCost        int
	GradingCompany   models.GradingCompany
	Grade            mo.Option[float64]
	Cert             mo.Option[int]
	TotalFees        mo.Option[float64]
	ReturnUSD        mo.Option[float64]
	ReturnJPY        mo.Option[int]
	NetJPY           mo.Option[int]
	NetPercent       mo.Option[float64]
}

// Evaluate computes all derived values of item. GradingRecords and their Submission must be
// loaded; a record without its submission contributes the purchase grading company.
func Evaluate(item *models.ItemModel) Values {
	v := Values{}
	v.TotalGradingFees = TotalGradingFees(item.GradingRecords)
	v.TotalCost = TotalCost(item.PurchasePrice, v.TotalGradingFees, item.ImportFee)
	v.GradingCompany, v.Grade, v.Cert = Grading(item)
	v.TotalFees = TotalFees(item.Shipping, item.SaleFee)
	v.ReturnUSD = ReturnUSD(item.SaleTotal, v.TotalFees)
	v.ReturnJPY = ReturnJPY(v.ReturnUSD, item.UsdToJpyRate)
	v.NetJPY = NetJPY(v.ReturnJPY, v.TotalCost)
	v.NetPercent = NetPercent(v.NetJPY, v.TotalCost)
	return v
}

func TotalGradingFees(records []models.GradingRecordModel) int {
	return lo.SumBy(records, func(r models.GradingRecordModel) int {
		return lo.FromPtr(r.GradingFee)
	})
}

func TotalCost(purchasePrice, totalGradingFees, importFee int) int {
	return purchasePrice + totalGradingFees + importFee
}

// LatestRecord returns the record with the highest submission number.
func LatestRecord(records []models.GradingRecordModel) (models.GradingRecordModel, bool) {
	if len(records) == 0 {
		return models.GradingRecordModel{}, false
	}
	return lo.MaxBy(records, func(a, b models.GradingRecordModel) bool {
		return a.SubmissionNumber > b.SubmissionNumber
	}), true
}

// Grading resolves the effective grading company, grade and cert of an item.
func Grading(item *models.ItemModel) (models.GradingCompany, mo.Option[float64], mo.Option[int]) {
	raw := func() (models.GradingCompany, mo.Option[float64], mo.Option[int]) {
		return models.GradingCompanyRaw, mo.None[float64](), mo.None[int]()
	}

	company := item.PurchaseGradingCompany
	var grade *float64
	var cert *int

	latest, ok := LatestRecord(item.GradingRecords)
	switch {
	case ok && latest.IsCracked:
		return raw()
	case !ok && item.CrackedFromPurchase:
		return raw()
	case ok:
		if latest.Submission != nil {
			company = latest.Submission.SubmissionCompany
		}
		grade, cert = latest.Grade, latest.Cert
	}

	if grade == nil {
		grade = item.PurchaseGrade
	}
	if cert == nil {
		cert = item.PurchaseCert
	}
	return company, optionOf(grade), optionOf(cert)
}

func TotalFees(shipping, saleFee *float64) mo.Option[float64] {
	if shipping == nil || saleFee == nil {
		return mo.None[float64]()
	}
	return mo.Some(round(decimal.NewFromFloat(*shipping).Add(decimal.NewFromFloat(*saleFee)), 2))
}

func ReturnUSD(saleTotal *float64, totalFees mo.Option[float64]) mo.Option[float64] {
	fees, ok := totalFees.Get()
	if saleTotal == nil || !ok {
		return mo.None[float64]()
	}
	return mo.Some(round(decimal.NewFromFloat(*saleTotal).Sub(decimal.NewFromFloat(fees)), 2))
}

func ReturnJPY(returnUSD mo.Option[float64], rate *float64) mo.Option[int] {
	usd, ok := returnUSD.Get()
	if !ok || rate == nil {
		return mo.None[int]()
	}
	return mo.Some(int(decimal.NewFromFloat(usd).Mul(decimal.NewFromFloat(*rate)).Round(0).IntPart()))
}

func NetJPY(returnJPY mo.Option[int], totalCost int) mo.Option[int] {
	jpy, ok := returnJPY.Get()
	if !ok {
		return mo.None[int]()
	}
	return mo.Some(jpy - totalCost)
}

// NetPercent is 0 for a free item, even one that has not been sold.
func NetPercent(netJPY mo.Option[int], totalCost int) mo.Option[float64] {
	if totalCost == 0 {
		return mo.Some(0.0)
	}
	net, ok := netJPY.Get()
	if !ok {
		return mo.None[float64]()
	}
	return mo.Some(round(decimal.NewFromInt(int64(100*net)).Div(decimal.NewFromInt(int64(totalCost))), 2))
}

// Round rounds x to the given number of decimal places, halves away from zero. x is taken at
// its shortest decimal representation, the value a NUMERIC cast sees, so 1.005 rounds to 1.01.
func Round(x float64, places int) float64 {
	return round(decimal.NewFromFloat(x), places)
}

func round(d decimal.Decimal, places int) float64 {
	return d.Round(int32(places)).InexactFloat64()
}

func optionOf[T any](p *T) mo.Option[T] {
	if p == nil {
		return mo.None[T]()
	}
	return mo.Some(*p)
}
