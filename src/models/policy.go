package models

import "github.com/samber/lo"

// Field names used by the status policy tables. They match the item column names, with
// grade and cert resolving to the derived effective grading values.
const (
	FieldListPrice    = "list_price"
	FieldListType     = "list_type"
	FieldListDate     = "list_date"
	FieldSaleTotal    = "sale_total"
	FieldSaleDate     = "sale_date"
	FieldShipping     = "shipping"
	FieldSaleFee      = "sale_fee"
	FieldUsdToJpyRate = "usd_to_jpy_rate"
	FieldGrade        = "grade"
	FieldCert         = "cert"
)

var (
	saleFields    = []string{FieldSaleTotal, FieldSaleDate, FieldShipping, FieldSaleFee, FieldUsdToJpyRate}
	listingFields = []string{FieldListPrice, FieldListDate}
	gradedFields  = []string{FieldGrade, FieldCert}
)

var statusRequiredFields = map[Status][]string{
	StatusClosed: saleFields,
	StatusListed: {FieldListPrice, FieldListType, FieldListDate},
}

var statusRequiredToBeNull = map[Status][]string{
	StatusStorage:   concat(listingFields, saleFields),
	StatusVault:     concat(listingFields, saleFields),
	StatusOrder:     concat(listingFields, saleFields),
	StatusListed:    saleFields,
	StatusSubmitted: concat(listingFields, saleFields, gradedFields),
}

var heldStatuses = []Status{StatusStorage, StatusVault, StatusOrder}

var intentAllowedStatuses = map[Intent][]Status{
	IntentKeep:  heldStatuses,
	IntentCrack: heldStatuses,
	IntentTBD:   heldStatuses,
	IntentGrade: concat(heldStatuses, []Status{StatusSubmitted}),
	IntentSell:  concat(heldStatuses, []Status{StatusSubmitted, StatusClosed, StatusListed}),
}

func concat[T any](parts ...[]T) []T {
	return lo.Flatten(parts)
}

// RequiredFields lists the fields that must be non-null for an item in this status.
func (s Status) RequiredFields() []string {
	return statusRequiredFields[s]
}

// RequiredToBeNull lists the fields that must be null for an item in this status.
func (s Status) RequiredToBeNull() []string {
	return statusRequiredToBeNull[s]
}

// AllowedStatuses lists the statuses an item with this intent may hold.
func (i Intent) AllowedStatuses() []Status {
	return intentAllowedStatuses[i]
}

// Allows reports whether an item with this intent may hold status s.
func (i Intent) Allows(s Status) bool {
	return lo.Contains(intentAllowedStatuses[i], s)
}
