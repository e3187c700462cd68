package models

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// InvalidEnumValueError is returned when text cannot be mapped to an enum variant.
type InvalidEnumValueError struct {
	Enum  string
	Token string
}

func (e *InvalidEnumValueError) Error() string {
	return fmt.Sprintf("Invalid %s: %s", e.Enum, e.Token)
}

// codec maps between an integer-backed enum and its names. The slice index is the stored code.
type codec[E ~int] struct {
	enum  string
	names []string
}

func (c codec[E]) name(e E) string {
	if !c.valid(e) {
		return fmt.Sprintf("%s(%d)", c.enum, int(e))
	}
	return c.names[e]
}

func (c codec[E]) valid(e E) bool {
	return int(e) >= 0 && int(e) < len(c.names)
}

func (c codec[E]) parse(token string) (E, error) {
	idx := lo.IndexOf(c.names, strings.ToUpper(strings.TrimSpace(token)))
	if idx < 0 {
		return 0, &InvalidEnumValueError{Enum: c.enum, Token: strings.TrimSpace(token)}
	}
	return E(idx), nil
}

func (c codec[E]) unmarshal(dst *E, text []byte) error {
	v, err := c.parse(string(text))
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// Category

type Category int

const (
	CategoryCard Category = iota
	CategoryPack
	CategoryBox
)

var categoryCodec = codec[Category]{"Category", []string{"CARD", "PACK", "BOX"}}

func ParseCategory(s string) (Category, error)      { return categoryCodec.parse(s) }
func (c Category) String() string                   { return categoryCodec.name(c) }
func (c Category) IsValid() bool                    { return categoryCodec.valid(c) }
func (c Category) MarshalText() ([]byte, error)     { return []byte(c.String()), nil }
func (c *Category) UnmarshalText(text []byte) error { return categoryCodec.unmarshal(c, text) }

// Language

type Language int

const (
	LanguageJapanese Language = iota
	LanguageEnglish
	LanguageFrench
	LanguageGerman
	LanguageSpanish
	LanguageItalian
	LanguageDutch
	LanguagePortuguese
	LanguagePolish
	LanguageRussian
	LanguageLatinAmerican
	LanguageChineseSimplified
	LanguageChineseTraditional
	LanguageKorean
	LanguageThai
	LanguageIndonesian
)

var languageCodec = codec[Language]{"Language", []string{
	"JAPANESE", "ENGLISH", "FRENCH", "GERMAN", "SPANISH", "ITALIAN", "DUTCH", "PORTUGUESE",
	"POLISH", "RUSSIAN", "LATIN_AMERICAN", "CHINESE_SIMPLIFIED", "CHINESE_TRADITIONAL",
	"KOREAN", "THAI", "INDONESIAN",
}}

func ParseLanguage(s string) (Language, error)      { return languageCodec.parse(s) }
func (l Language) String() string                   { return languageCodec.name(l) }
func (l Language) IsValid() bool                    { return languageCodec.valid(l) }
func (l Language) MarshalText() ([]byte, error)     { return []byte(l.String()), nil }
func (l *Language) UnmarshalText(text []byte) error { return languageCodec.unmarshal(l, text) }

// ObjectVariant

type ObjectVariant int

const (
	ObjectVariantStandard ObjectVariant = iota
	ObjectVariantGroupPurchase
	ObjectVariantGroupSale
)

var objectVariantCodec = codec[ObjectVariant]{"ObjectVariant", []string{"STANDARD", "GROUP_PURCHASE", "GROUP_SALE"}}

func ParseObjectVariant(s string) (ObjectVariant, error) { return objectVariantCodec.parse(s) }
func (v ObjectVariant) String() string                   { return objectVariantCodec.name(v) }
func (v ObjectVariant) IsValid() bool                    { return objectVariantCodec.valid(v) }
func (v ObjectVariant) MarshalText() ([]byte, error)     { return []byte(v.String()), nil }
func (v *ObjectVariant) UnmarshalText(text []byte) error {
	return objectVariantCodec.unmarshal(v, text)
}

// Status

type Status int

const (
	StatusClosed Status = iota
	StatusStorage
	StatusListed
	StatusVault
	StatusSubmitted
	StatusOrder
)

var statusCodec = codec[Status]{"Status", []string{"CLOSED", "STORAGE", "LISTED", "VAULT", "SUBMITTED", "ORDER"}}

func ParseStatus(s string) (Status, error)        { return statusCodec.parse(s) }
func (s Status) String() string                   { return statusCodec.name(s) }
func (s Status) IsValid() bool                    { return statusCodec.valid(s) }
func (s Status) MarshalText() ([]byte, error)     { return []byte(s.String()), nil }
func (s *Status) UnmarshalText(text []byte) error { return statusCodec.unmarshal(s, text) }

// AllStatuses lists every status in code order.
func AllStatuses() []Status {
	return []Status{StatusClosed, StatusStorage, StatusListed, StatusVault, StatusSubmitted, StatusOrder}
}

// Intent

type Intent int

// Codes are persisted. CRACK was added after TBD and takes the next free code.
const (
	IntentKeep Intent = iota
	IntentSell
	IntentGrade
	IntentTBD
	IntentCrack
)

var intentCodec = codec[Intent]{"Intent", []string{"KEEP", "SELL", "GRADE", "TBD", "CRACK"}}

func ParseIntent(s string) (Intent, error)        { return intentCodec.parse(s) }
func (i Intent) String() string                   { return intentCodec.name(i) }
func (i Intent) IsValid() bool                    { return intentCodec.valid(i) }
func (i Intent) MarshalText() ([]byte, error)     { return []byte(i.String()), nil }
func (i *Intent) UnmarshalText(text []byte) error { return intentCodec.unmarshal(i, text) }

// AllIntents lists every intent in code order.
func AllIntents() []Intent {
	return []Intent{IntentKeep, IntentSell, IntentGrade, IntentTBD, IntentCrack}
}

// Qualifier

type Qualifier int

const (
	QualifierUnlimited Qualifier = iota
	QualifierFirstEdition
	QualifierNonHolo
	QualifierReverseHolo
	QualifierCrystal
)

var qualifierCodec = codec[Qualifier]{"Qualifier", []string{"UNLIMITED", "FIRST_EDITION", "NON_HOLO", "REVERSE_HOLO", "CRYSTAL"}}

func ParseQualifier(s string) (Qualifier, error)     { return qualifierCodec.parse(s) }
func (q Qualifier) String() string                   { return qualifierCodec.name(q) }
func (q Qualifier) IsValid() bool                    { return qualifierCodec.valid(q) }
func (q Qualifier) MarshalText() ([]byte, error)     { return []byte(q.String()), nil }
func (q *Qualifier) UnmarshalText(text []byte) error { return qualifierCodec.unmarshal(q, text) }

// ParseQualifiers accepts a comma separated list such as "FIRST_EDITION, NON_HOLO".
// Blank input yields an empty list.
func ParseQualifiers(s string) ([]Qualifier, error) {
	qualifiers := []Qualifier{}
	for _, token := range strings.Split(s, ",") {
		if strings.TrimSpace(token) == "" {
			continue
		}
		q, err := ParseQualifier(token)
		if err != nil {
			return nil, err
		}
		qualifiers = append(qualifiers, q)
	}
	return qualifiers, nil
}

// GradingCompany

type GradingCompany int

const (
	GradingCompanyRaw GradingCompany = iota
	GradingCompanyPSA
	GradingCompanyCGC
	GradingCompanyBGS
)

var gradingCompanyCodec = codec[GradingCompany]{"GradingCompany", []string{"RAW", "PSA", "CGC", "BGS"}}

func ParseGradingCompany(s string) (GradingCompany, error) { return gradingCompanyCodec.parse(s) }
func (g GradingCompany) String() string                    { return gradingCompanyCodec.name(g) }
func (g GradingCompany) IsValid() bool                     { return gradingCompanyCodec.valid(g) }
func (g GradingCompany) MarshalText() ([]byte, error)      { return []byte(g.String()), nil }
func (g *GradingCompany) UnmarshalText(text []byte) error {
	return gradingCompanyCodec.unmarshal(g, text)
}

// ListingType

type ListingType int

const (
	ListingTypeNoList ListingType = iota
	ListingTypeFixed
	ListingTypeAuction
)

var listingTypeCodec = codec[ListingType]{"ListingType", []string{"NO_LIST", "FIXED", "AUCTION"}}

func ParseListingType(s string) (ListingType, error)   { return listingTypeCodec.parse(s) }
func (t ListingType) String() string                   { return listingTypeCodec.name(t) }
func (t ListingType) IsValid() bool                    { return listingTypeCodec.valid(t) }
func (t ListingType) MarshalText() ([]byte, error)     { return []byte(t.String()), nil }
func (t *ListingType) UnmarshalText(text []byte) error { return listingTypeCodec.unmarshal(t, text) }
