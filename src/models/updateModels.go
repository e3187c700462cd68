package models

import (
	"time"

	"github.com/samber/mo"
)

// ItemUpdate is a sparse item edit. An absent option leaves the stored value untouched;
// for nullable columns mo.Some(nil) clears the stored value.
type ItemUpdate struct {
	Name                   mo.Option[string]
	SetName                mo.Option[string]
	Category               mo.Option[Category]
	Language               mo.Option[Language]
	Qualifiers             mo.Option[[]Qualifier]
	Details                mo.Option[*string]
	PurchaseDate           mo.Option[time.Time]
	PurchasePrice          mo.Option[int]
	ImportFee              mo.Option[int]
	PurchaseGradingCompany mo.Option[GradingCompany]
	PurchaseGrade          mo.Option[*float64]
	PurchaseCert           mo.Option[*int]
	Status                 mo.Option[Status]
	Intent                 mo.Option[Intent]
	CrackedFromPurchase    mo.Option[bool]
	ListPrice              mo.Option[*float64]
	ListType               mo.Option[ListingType]
	ListDate               mo.Option[*time.Time]
	SaleTotal              mo.Option[*float64]
	SaleDate               mo.Option[*time.Time]
	Shipping               mo.Option[*float64]
	SaleFee                mo.Option[*float64]
	UsdToJpyRate           mo.Option[*float64]
	GroupDiscount          mo.Option[bool]
	AuditTarget            mo.Option[bool]
	ObjectVariant          mo.Option[ObjectVariant]
}

// ApplyTo copies every supplied field onto item.
func (u ItemUpdate) ApplyTo(item *ItemModel) {
	apply(u.Name, &item.Name)
	apply(u.SetName, &item.SetName)
	apply(u.Category, &item.Category)
	apply(u.Language, &item.Language)
	if q, ok := u.Qualifiers.Get(); ok {
		item.Qualifiers = append([]Qualifier{}, q...)
	}
	apply(u.Details, &item.Details)
	apply(u.PurchaseDate, &item.PurchaseDate)
	apply(u.PurchasePrice, &item.PurchasePrice)
	apply(u.ImportFee, &item.ImportFee)
	apply(u.PurchaseGradingCompany, &item.PurchaseGradingCompany)
	apply(u.PurchaseGrade, &item.PurchaseGrade)
	apply(u.PurchaseCert, &item.PurchaseCert)
	apply(u.Status, &item.Status)
	apply(u.Intent, &item.Intent)
	apply(u.CrackedFromPurchase, &item.CrackedFromPurchase)
	apply(u.ListPrice, &item.ListPrice)
	apply(u.ListType, &item.ListType)
	apply(u.ListDate, &item.ListDate)
	apply(u.SaleTotal, &item.SaleTotal)
	apply(u.SaleDate, &item.SaleDate)
	apply(u.Shipping, &item.Shipping)
	apply(u.SaleFee, &item.SaleFee)
	apply(u.UsdToJpyRate, &item.UsdToJpyRate)
	apply(u.GroupDiscount, &item.GroupDiscount)
	apply(u.AuditTarget, &item.AuditTarget)
	apply(u.ObjectVariant, &item.ObjectVariant)
}

// GradingRecordUpdate is a sparse grading record edit.
type GradingRecordUpdate struct {
	GradingFee mo.Option[*int]
	Grade      mo.Option[*float64]
	Cert       mo.Option[*int]
	IsCracked  mo.Option[bool]
}

func (u GradingRecordUpdate) ApplyTo(record *GradingRecordModel) {
	apply(u.GradingFee, &record.GradingFee)
	apply(u.Grade, &record.Grade)
	apply(u.Cert, &record.Cert)
	apply(u.IsCracked, &record.IsCracked)
}

// SubmissionUpdate edits submission metadata. The submission number is immutable.
type SubmissionUpdate struct {
	SubmissionCompany mo.Option[GradingCompany]
	SubmissionDate    mo.Option[time.Time]
	ReturnDate        mo.Option[*time.Time]
	BreakEvenDate     mo.Option[*time.Time]
}

func (u SubmissionUpdate) ApplyTo(submission *SubmissionModel) {
	apply(u.SubmissionCompany, &submission.SubmissionCompany)
	apply(u.SubmissionDate, &submission.SubmissionDate)
	apply(u.ReturnDate, &submission.ReturnDate)
	apply(u.BreakEvenDate, &submission.BreakEvenDate)
}

func apply[T any](o mo.Option[T], dst *T) {
	if v, ok := o.Get(); ok {
		*dst = v
	}
}
