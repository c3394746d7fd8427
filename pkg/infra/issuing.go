package infra

import (
	"time"
)

// Resource names as registered in the default registry.
const (
	ResourceIssuingBalance             = "IssuingBalance"
	ResourceIssuingCard                = "IssuingCard"
	ResourceIssuingCardLog             = "IssuingCardLog"
	ResourceIssuingRule                = "IssuingRule"
	ResourceIssuingInvoice             = "IssuingInvoice"
	ResourceIssuingInvoiceLog          = "IssuingInvoiceLog"
	ResourceIssuingStock               = "IssuingStock"
	ResourceIssuingStockLog            = "IssuingStockLog"
	ResourceIssuingEmbossingRequest    = "IssuingEmbossingRequest"
	ResourceIssuingEmbossingRequestLog = "IssuingEmbossingRequestLog"
)

// Card statuses accepted by Update.
const (
	CardStatusActive   = "active"
	CardStatusBlocked  = "blocked"
	CardStatusCanceled = "canceled"
	CardStatusExpired  = "expired"
)

// IssuingBalance is the issuing account balance. Amount is in cents.
type IssuingBalance struct {
	Base

	Amount   int64      `json:"amount"            yaml:"amount"`
	Currency string     `json:"currency"          yaml:"currency"`
	Updated  *time.Time `json:"updated,omitempty" yaml:"updated,omitempty"`
}

// IssuingRule is a spending rule attached to a card or holder.
type IssuingRule struct {
	Base

	Name           string              `json:"name"                     yaml:"name"`
	Interval       string              `json:"interval,omitempty"       yaml:"interval,omitempty"`
	Amount         int64               `json:"amount"                   yaml:"amount"`
	CurrencyCode   string              `json:"currencyCode,omitempty"   yaml:"currencyCode,omitempty"`
	CounterAmount  int64               `json:"counterAmount,omitempty"  yaml:"counterAmount,omitempty"`
	CurrencyName   string              `json:"currencyName,omitempty"   yaml:"currencyName,omitempty"`
	CurrencySymbol string              `json:"currencySymbol,omitempty" yaml:"currencySymbol,omitempty"`
	CurrencyType   string              `json:"currencyType,omitempty"   yaml:"currencyType,omitempty"`
	Categories     []*MerchantCategory `json:"categories,omitempty"     yaml:"categories,omitempty"`
	Countries      []*MerchantCountry  `json:"countries,omitempty"      yaml:"countries,omitempty"`
	Methods        []*CardMethod       `json:"methods,omitempty"        yaml:"methods,omitempty"`
}

// IssuingCard is a physical or virtual card. Number, SecurityCode and
// Expiration are masked by the server unless expanded; masked values read as
// empty or nil.
type IssuingCard struct {
	Base

	HolderName       string         `json:"holderName"                 yaml:"holderName"`
	HolderTaxID      string         `json:"holderTaxId"                yaml:"holderTaxId"`
	HolderExternalID string         `json:"holderExternalId"           yaml:"holderExternalId"`
	DisplayName      string         `json:"displayName,omitempty"      yaml:"displayName,omitempty"`
	Rules            []*IssuingRule `json:"rules,omitempty"            yaml:"rules,omitempty"`
	BinID            string         `json:"binId,omitempty"            yaml:"binId,omitempty"`
	Tags             []string       `json:"tags,omitempty"             yaml:"tags,omitempty"`
	StreetLine1      string         `json:"streetLine1,omitempty"      yaml:"streetLine1,omitempty"`
	StreetLine2      string         `json:"streetLine2,omitempty"      yaml:"streetLine2,omitempty"`
	District         string         `json:"district,omitempty"         yaml:"district,omitempty"`
	City             string         `json:"city,omitempty"             yaml:"city,omitempty"`
	StateCode        string         `json:"stateCode,omitempty"        yaml:"stateCode,omitempty"`
	ZipCode          string         `json:"zipCode,omitempty"          yaml:"zipCode,omitempty"`
	HolderID         string         `json:"holderId,omitempty"         yaml:"holderId,omitempty"`
	Type             string         `json:"type,omitempty"             yaml:"type,omitempty"`
	Status           string         `json:"status,omitempty"           yaml:"status,omitempty"`
	Number           string         `json:"number,omitempty"           yaml:"number,omitempty"`
	SecurityCode     string         `json:"securityCode,omitempty"     yaml:"securityCode,omitempty"`
	Expiration       *time.Time     `json:"expiration,omitempty"       yaml:"expiration,omitempty"`
	Updated          *time.Time     `json:"updated,omitempty"          yaml:"updated,omitempty"`
	Created          *time.Time     `json:"created,omitempty"          yaml:"created,omitempty"`
}

// IssuingCardLog records a change to a card.
type IssuingCardLog struct {
	Base

	Card    *IssuingCard `json:"card"    yaml:"card"`
	Type    string       `json:"type"    yaml:"type"`
	Created time.Time    `json:"created" yaml:"created"`
}

// IssuingInvoice is a request to top up the issuing balance.
type IssuingInvoice struct {
	Base

	Amount               int64      `json:"amount"                         yaml:"amount"`
	TaxID                string     `json:"taxId,omitempty"                yaml:"taxId,omitempty"`
	Name                 string     `json:"name,omitempty"                 yaml:"name,omitempty"`
	Tags                 []string   `json:"tags,omitempty"                 yaml:"tags,omitempty"`
	Brcode               string     `json:"brcode,omitempty"               yaml:"brcode,omitempty"`
	Due                  *time.Time `json:"due,omitempty"                  yaml:"due,omitempty"`
	Link                 string     `json:"link,omitempty"                 yaml:"link,omitempty"`
	Status               string     `json:"status,omitempty"               yaml:"status,omitempty"`
	IssuingTransactionID string     `json:"issuingTransactionId,omitempty" yaml:"issuingTransactionId,omitempty"`
	Updated              *time.Time `json:"updated,omitempty"              yaml:"updated,omitempty"`
	Created              *time.Time `json:"created,omitempty"              yaml:"created,omitempty"`
}

// IssuingInvoiceLog records a change to an invoice.
type IssuingInvoiceLog struct {
	Base

	Invoice *IssuingInvoice `json:"invoice" yaml:"invoice"`
	Type    string          `json:"type"    yaml:"type"`
	Created time.Time       `json:"created" yaml:"created"`
}

// IssuingStock is an embosser's stock of a card design.
type IssuingStock struct {
	Base

	Balance    int64      `json:"balance"              yaml:"balance"`
	DesignID   string     `json:"designId,omitempty"   yaml:"designId,omitempty"`
	EmbosserID string     `json:"embosserId,omitempty" yaml:"embosserId,omitempty"`
	Updated    *time.Time `json:"updated,omitempty"    yaml:"updated,omitempty"`
	Created    *time.Time `json:"created,omitempty"    yaml:"created,omitempty"`
}

// IssuingStockLog records a stock movement of Count units.
type IssuingStockLog struct {
	Base

	Stock   *IssuingStock `json:"stock"   yaml:"stock"`
	Type    string        `json:"type"    yaml:"type"`
	Count   int64         `json:"count"   yaml:"count"`
	Created time.Time     `json:"created" yaml:"created"`
}

// IssuingEmbossingRequest asks an embosser to produce a physical card.
type IssuingEmbossingRequest struct {
	Base

	CardID                 string     `json:"cardId"                           yaml:"cardId"`
	KitID                  string     `json:"kitId,omitempty"                  yaml:"kitId,omitempty"`
	DisplayName1           string     `json:"displayName1,omitempty"           yaml:"displayName1,omitempty"`
	ShippingCity           string     `json:"shippingCity,omitempty"           yaml:"shippingCity,omitempty"`
	ShippingCountryCode    string     `json:"shippingCountryCode,omitempty"    yaml:"shippingCountryCode,omitempty"`
	ShippingDistrict       string     `json:"shippingDistrict,omitempty"       yaml:"shippingDistrict,omitempty"`
	ShippingStateCode      string     `json:"shippingStateCode,omitempty"      yaml:"shippingStateCode,omitempty"`
	ShippingStreetLine1    string     `json:"shippingStreetLine1,omitempty"    yaml:"shippingStreetLine1,omitempty"`
	ShippingStreetLine2    string     `json:"shippingStreetLine2,omitempty"    yaml:"shippingStreetLine2,omitempty"`
	ShippingService        string     `json:"shippingService,omitempty"        yaml:"shippingService,omitempty"`
	ShippingTrackingNumber string     `json:"shippingTrackingNumber,omitempty" yaml:"shippingTrackingNumber,omitempty"`
	ShippingZipCode        string     `json:"shippingZipCode,omitempty"        yaml:"shippingZipCode,omitempty"`
	Fee                    int64      `json:"fee,omitempty"                    yaml:"fee,omitempty"`
	Status                 string     `json:"status,omitempty"                 yaml:"status,omitempty"`
	Tags                   []string   `json:"tags,omitempty"                   yaml:"tags,omitempty"`
	Updated                *time.Time `json:"updated,omitempty"                yaml:"updated,omitempty"`
	Created                *time.Time `json:"created,omitempty"                yaml:"created,omitempty"`
}

// IssuingEmbossingRequestLog records a change to an embossing request.
type IssuingEmbossingRequestLog struct {
	Base

	Request *IssuingEmbossingRequest `json:"request" yaml:"request"`
	Type    string                   `json:"type"    yaml:"type"`
	Errors  []string                 `json:"errors"  yaml:"errors"`
	Created time.Time                `json:"created" yaml:"created"`
}

// Parent filter keys accepted by the issuing log collections.
const (
	IssuingCardLogParentFilter             = "cardIds"
	IssuingInvoiceLogParentFilter          = "invoiceIds"
	IssuingStockLogParentFilter            = "stockIds"
	IssuingEmbossingRequestLogParentFilter = "requestIds"
)

//nolint:gochecknoglobals
var (
	IssuingBalanceDescriptor = Register(ResourceIssuingBalance, func(r *FieldReader) (Resource, error) {
		return &IssuingBalance{
			Base:     Base{ID: r.ID()},
			Amount:   r.OptInt64("amount"),
			Currency: r.OptString("currency"),
			Updated:  r.OptDateTime("updated"),
		}, nil
	})

	IssuingRuleDescriptor = Register(ResourceIssuingRule, func(r *FieldReader) (Resource, error) {
		return &IssuingRule{
			Base:           Base{ID: r.OptString("id")},
			Name:           r.OptString("name"),
			Interval:       r.OptString("interval"),
			Amount:         r.OptInt64("amount"),
			CurrencyCode:   r.OptString("currencyCode"),
			CounterAmount:  r.OptInt64("counterAmount"),
			CurrencyName:   r.OptString("currencyName"),
			CurrencySymbol: r.OptString("currencySymbol"),
			CurrencyType:   r.OptString("currencyType"),
			Categories:     ResourcesOf[*MerchantCategory](r, "categories", ResourceMerchantCategory),
			Countries:      ResourcesOf[*MerchantCountry](r, "countries", ResourceMerchantCountry),
			Methods:        ResourcesOf[*CardMethod](r, "methods", ResourceCardMethod),
		}, nil
	})

	IssuingCardDescriptor = Register(ResourceIssuingCard, func(r *FieldReader) (Resource, error) {
		return &IssuingCard{
			Base:             Base{ID: r.ID()},
			HolderName:       r.OptString("holderName"),
			HolderTaxID:      r.OptString("holderTaxId"),
			HolderExternalID: r.OptString("holderExternalId"),
			DisplayName:      r.OptString("displayName"),
			Rules:            ResourcesOf[*IssuingRule](r, "rules", ResourceIssuingRule),
			BinID:            r.OptString("binId"),
			Tags:             r.Strings("tags"),
			StreetLine1:      r.OptString("streetLine1"),
			StreetLine2:      r.OptString("streetLine2"),
			District:         r.OptString("district"),
			City:             r.OptString("city"),
			StateCode:        r.OptString("stateCode"),
			ZipCode:          r.OptString("zipCode"),
			HolderID:         r.OptString("holderId"),
			Type:             r.OptString("type"),
			Status:           r.OptString("status"),
			Number:           r.Masked("number"),
			SecurityCode:     r.Masked("securityCode"),
			Expiration:       r.OptDateTime("expiration"),
			Updated:          r.OptDateTime("updated"),
			Created:          r.OptDateTime("created"),
		}, nil
	})

	IssuingCardLogDescriptor = Register(ResourceIssuingCardLog, func(r *FieldReader) (Resource, error) {
		return &IssuingCardLog{
			Base:    Base{ID: r.ID()},
			Card:    ResourceOf[*IssuingCard](r, "card", ResourceIssuingCard),
			Type:    r.OptString("type"),
			Created: r.DateTime("created"),
		}, nil
	})

	IssuingInvoiceDescriptor = Register(ResourceIssuingInvoice, func(r *FieldReader) (Resource, error) {
		return &IssuingInvoice{
			Base:                 Base{ID: r.ID()},
			Amount:               r.OptInt64("amount"),
			TaxID:                r.OptString("taxId"),
			Name:                 r.OptString("name"),
			Tags:                 r.Strings("tags"),
			Brcode:               r.OptString("brcode"),
			Due:                  r.OptDateTime("due"),
			Link:                 r.OptString("link"),
			Status:               r.OptString("status"),
			IssuingTransactionID: r.OptString("issuingTransactionId"),
			Updated:              r.OptDateTime("updated"),
			Created:              r.OptDateTime("created"),
		}, nil
	})

	IssuingInvoiceLogDescriptor = Register(ResourceIssuingInvoiceLog, func(r *FieldReader) (Resource, error) {
		return &IssuingInvoiceLog{
			Base:    Base{ID: r.ID()},
			Invoice: ResourceOf[*IssuingInvoice](r, "invoice", ResourceIssuingInvoice),
			Type:    r.OptString("type"),
			Created: r.DateTime("created"),
		}, nil
	})

	IssuingStockDescriptor = Register(ResourceIssuingStock, func(r *FieldReader) (Resource, error) {
		return &IssuingStock{
			Base:       Base{ID: r.ID()},
			Balance:    r.OptInt64("balance"),
			DesignID:   r.OptString("designId"),
			EmbosserID: r.OptString("embosserId"),
			Updated:    r.OptDateTime("updated"),
			Created:    r.OptDateTime("created"),
		}, nil
	})

	IssuingStockLogDescriptor = Register(ResourceIssuingStockLog, func(r *FieldReader) (Resource, error) {
		return &IssuingStockLog{
			Base:    Base{ID: r.ID()},
			Stock:   ResourceOf[*IssuingStock](r, "stock", ResourceIssuingStock),
			Type:    r.OptString("type"),
			Count:   r.OptInt64("count"),
			Created: r.DateTime("created"),
		}, nil
	})

	IssuingEmbossingRequestDescriptor = Register(ResourceIssuingEmbossingRequest, func(r *FieldReader) (Resource, error) {
		return &IssuingEmbossingRequest{
			Base:                   Base{ID: r.ID()},
			CardID:                 r.OptString("cardId"),
			KitID:                  r.OptString("kitId"),
			DisplayName1:           r.OptString("displayName1"),
			ShippingCity:           r.OptString("shippingCity"),
			ShippingCountryCode:    r.OptString("shippingCountryCode"),
			ShippingDistrict:       r.OptString("shippingDistrict"),
			ShippingStateCode:      r.OptString("shippingStateCode"),
			ShippingStreetLine1:    r.OptString("shippingStreetLine1"),
			ShippingStreetLine2:    r.OptString("shippingStreetLine2"),
			ShippingService:        r.OptString("shippingService"),
			ShippingTrackingNumber: r.OptString("shippingTrackingNumber"),
			ShippingZipCode:        r.OptString("shippingZipCode"),
			Fee:                    r.OptInt64("fee"),
			Status:                 r.OptString("status"),
			Tags:                   r.Strings("tags"),
			Updated:                r.OptDateTime("updated"),
			Created:                r.OptDateTime("created"),
		}, nil
	})

	IssuingEmbossingRequestLogDescriptor = Register(ResourceIssuingEmbossingRequestLog, func(r *FieldReader) (Resource, error) {
		return &IssuingEmbossingRequestLog{
			Base:    Base{ID: r.ID()},
			Request: ResourceOf[*IssuingEmbossingRequest](r, "request", ResourceIssuingEmbossingRequest),
			Type:    r.OptString("type"),
			Errors:  r.Strings("errors"),
			Created: r.DateTime("created"),
		}, nil
	})
)
