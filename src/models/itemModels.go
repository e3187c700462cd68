package models

import (
	"time"

	"gorm.io/datatypes"
)

type ItemModel struct {
	ID                     int                            `json:"id" gorm:"primaryKey;autoIncrement"`
	Name                   string                         `json:"name" gorm:"type:varchar(255);not null;index"`
	SetName                string                         `json:"setName" gorm:"type:varchar(255);not null"`
	Category               Category                       `json:"category" gorm:"type:int;not null"`
	Language               Language                       `json:"language" gorm:"type:int;not null"`
	Qualifiers             datatypes.JSONSlice[Qualifier] `json:"qualifiers" gorm:"not null"`
	Details                *string                        `json:"details" gorm:"type:text"`
	PurchaseDate           time.Time                      `json:"purchaseDate" gorm:"type:date;not null"`
	PurchasePrice          int                            `json:"purchasePrice" gorm:"not null"`
	ImportFee              int                            `json:"importFee" gorm:"not null;default:0"`
	PurchaseGradingCompany GradingCompany                 `json:"purchaseGradingCompany" gorm:"type:int;not null;default:0"`
	PurchaseGrade          *float64                       `json:"purchaseGrade"`
	PurchaseCert           *int                           `json:"purchaseCert"`
	Status                 Status                         `json:"status" gorm:"type:int;not null;index"`
	Intent                 Intent                         `json:"intent" gorm:"type:int;not null"`
	CrackedFromPurchase    bool                           `json:"crackedFromPurchase" gorm:"type:boolean;not null;default:false"`
	ListPrice              *float64                       `json:"listPrice"`
	ListType               ListingType                    `json:"listType" gorm:"type:int;not null;default:0"`
	ListDate               *time.Time                     `json:"listDate" gorm:"type:date"`
	SaleTotal              *float64                       `json:"saleTotal"`
	SaleDate               *time.Time                     `json:"saleDate" gorm:"type:date"`
	Shipping               *float64                       `json:"shipping"`
	SaleFee                *float64                       `json:"saleFee"`
	UsdToJpyRate           *float64                       `json:"usdToJpyRate"`
	GroupDiscount          bool                           `json:"groupDiscount" gorm:"type:boolean;not null;default:false"`
	AuditTarget            bool                           `json:"auditTarget" gorm:"type:boolean;not null;default:false"`
	ObjectVariant          ObjectVariant                  `json:"objectVariant" gorm:"type:int;not null;default:0"`
	GradingRecords         []GradingRecordModel           `json:"gradingRecords,omitempty" gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
}

func (ItemModel) TableName() string {
	return "items"
}
