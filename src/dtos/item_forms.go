package dtos

import (
	"github.com/CardLedger/CardLedger-Backend/src/models"
)

// ItemFields lists the item keys accepted in request bodies and spreadsheet headers.
var ItemFields = []string{
	"name", "setName", "category", "language", "qualifiers", "details",
	"purchaseDate", "purchasePrice", "importFee", "purchaseGradingCompany", "purchaseGrade", "purchaseCert",
	"status", "intent", "crackedFromPurchase",
	"listPrice", "listType", "listDate",
	"saleTotal", "saleDate", "shipping", "saleFee", "usdToJpyRate",
	"groupDiscount", "auditTarget", "objectVariant",
}

var requiredItemFields = []string{
	"name", "setName", "category", "language", "purchaseDate", "purchasePrice", "status", "intent",
}

// ParseItemCreate reads a new item. Optional fields default to their zero variant.
func ParseItemCreate(body []byte) (*models.ItemModel, error) {
	f, err := newForm(body, ItemFields)
	if err != nil {
		return nil, err
	}
	f.require(requiredItemFields...)
	update := parseItem(f)
	if f.err != nil {
		return nil, f.err
	}

	item := &models.ItemModel{Qualifiers: []models.Qualifier{}}
	update.ApplyTo(item)
	return item, nil
}

// ParseItemUpdate reads a sparse item edit.
func ParseItemUpdate(body []byte) (models.ItemUpdate, error) {
	f, err := newForm(body, ItemFields)
	if err != nil {
		return models.ItemUpdate{}, err
	}
	update := parseItem(f)
	if f.err != nil {
		return models.ItemUpdate{}, f.err
	}
	return update, nil
}

func parseItem(f *form) models.ItemUpdate {
	return models.ItemUpdate{
		Name:                   field(f, "name", decodeText),
		SetName:                field(f, "setName", decodeText),
		Category:               field(f, "category", decodeEnum(models.ParseCategory)),
		Language:               field(f, "language", decodeEnum(models.ParseLanguage)),
		Qualifiers:             field(f, "qualifiers", decodeQualifiers),
		Details:                nullable(f, "details", decodeText),
		PurchaseDate:           field(f, "purchaseDate", decodeDate),
		PurchasePrice:          field(f, "purchasePrice", decodeInt),
		ImportFee:              field(f, "importFee", decodeInt),
		PurchaseGradingCompany: field(f, "purchaseGradingCompany", decodeEnum(models.ParseGradingCompany)),
		PurchaseGrade:          nullable(f, "purchaseGrade", decodeFloat),
		PurchaseCert:           nullable(f, "purchaseCert", decodeInt),
		Status:                 field(f, "status", decodeEnum(models.ParseStatus)),
		Intent:                 field(f, "intent", decodeEnum(models.ParseIntent)),
		CrackedFromPurchase:    field(f, "crackedFromPurchase", decodeBool),
		ListPrice:              nullable(f, "listPrice", decodeFloat),
		ListType:               field(f, "listType", decodeEnum(models.ParseListingType)),
		ListDate:               nullable(f, "listDate", decodeDate),
		SaleTotal:              nullable(f, "saleTotal", decodeFloat),
		SaleDate:               nullable(f, "saleDate", decodeDate),
		Shipping:               nullable(f, "shipping", decodeFloat),
		SaleFee:                nullable(f, "saleFee", decodeFloat),
		UsdToJpyRate:           nullable(f, "usdToJpyRate", decodeFloat),
		GroupDiscount:          field(f, "groupDiscount", decodeBool),
		AuditTarget:            field(f, "auditTarget", decodeBool),
		ObjectVariant:          field(f, "objectVariant", decodeEnum(models.ParseObjectVariant)),
	}
}
