package infra

import "time"

const (
	ResourcePixBalance     = "PixBalance"
	ResourcePixKey         = "PixKey"
	ResourcePixKeyLog      = "PixKeyLog"
	ResourcePixClaim       = "PixClaim"
	ResourcePixClaimLog    = "PixClaimLog"
	ResourcePixReversal    = "PixReversal"
	ResourcePixReversalLog = "PixReversalLog"
)

// Parent filter keys accepted by the pix log collections.
const (
	PixKeyLogParentFilter      = "keyIds"
	PixClaimLogParentFilter    = "claimIds"
	PixReversalLogParentFilter = "reversalIds"
)

// PixBalance is the instant payment account balance. Amount is in cents.
type PixBalance struct {
	Base

	Amount   int64      `json:"amount"            yaml:"amount"`
	Currency string     `json:"currency"          yaml:"currency"`
	Updated  *time.Time `json:"updated,omitempty" yaml:"updated,omitempty"`
}

// PixKey links a key (tax id, phone, email or random) to an account.
type PixKey struct {
	Base

	AccountCreated *time.Time `json:"accountCreated,omitempty" yaml:"accountCreated,omitempty"`
	AccountNumber  string     `json:"accountNumber,omitempty"  yaml:"accountNumber,omitempty"`
	AccountType    string     `json:"accountType,omitempty"    yaml:"accountType,omitempty"`
	BranchCode     string     `json:"branchCode,omitempty"     yaml:"branchCode,omitempty"`
	Name           string     `json:"name,omitempty"           yaml:"name,omitempty"`
	TaxID          string     `json:"taxId,omitempty"          yaml:"taxId,omitempty"`
	Tags           []string   `json:"tags,omitempty"           yaml:"tags,omitempty"`
	Owned          *time.Time `json:"owned,omitempty"          yaml:"owned,omitempty"`
	OwnerType      string     `json:"ownerType,omitempty"      yaml:"ownerType,omitempty"`
	Status         string     `json:"status,omitempty"         yaml:"status,omitempty"`
	BankCode       string     `json:"bankCode,omitempty"       yaml:"bankCode,omitempty"`
	BankName       string     `json:"bankName,omitempty"       yaml:"bankName,omitempty"`
	Type           string     `json:"type,omitempty"           yaml:"type,omitempty"`
	Created        *time.Time `json:"created,omitempty"        yaml:"created,omitempty"`
}

// PixKeyLog records a change to a key.
type PixKeyLog struct {
	Base

	Key     *PixKey   `json:"key"     yaml:"key"`
	Type    string    `json:"type"    yaml:"type"`
	Errors  []string  `json:"errors"  yaml:"errors"`
	Created time.Time `json:"created" yaml:"created"`
}

// PixClaim is a portability or ownership claim over a key.
type PixClaim struct {
	Base

	AccountCreated  *time.Time `json:"accountCreated,omitempty"  yaml:"accountCreated,omitempty"`
	AccountNumber   string     `json:"accountNumber,omitempty"   yaml:"accountNumber,omitempty"`
	AccountType     string     `json:"accountType,omitempty"     yaml:"accountType,omitempty"`
	BranchCode      string     `json:"branchCode,omitempty"      yaml:"branchCode,omitempty"`
	Name            string     `json:"name,omitempty"            yaml:"name,omitempty"`
	TaxID           string     `json:"taxId,omitempty"           yaml:"taxId,omitempty"`
	KeyID           string     `json:"keyId,omitempty"           yaml:"keyId,omitempty"`
	Tags            []string   `json:"tags,omitempty"            yaml:"tags,omitempty"`
	Status          string     `json:"status,omitempty"          yaml:"status,omitempty"`
	Type            string     `json:"type,omitempty"            yaml:"type,omitempty"`
	KeyType         string     `json:"keyType,omitempty"         yaml:"keyType,omitempty"`
	Flow            string     `json:"flow,omitempty"            yaml:"flow,omitempty"`
	ClaimerBankCode string     `json:"claimerBankCode,omitempty" yaml:"claimerBankCode,omitempty"`
	ClaimedBankCode string     `json:"claimedBankCode,omitempty" yaml:"claimedBankCode,omitempty"`
	Updated         *time.Time `json:"updated,omitempty"         yaml:"updated,omitempty"`
	Created         *time.Time `json:"created,omitempty"         yaml:"created,omitempty"`
}

// PixClaimLog records a change to a claim. Agent is the party that acted and
// Reason its justification.
type PixClaimLog struct {
	Base

	Claim   *PixClaim `json:"claim"            yaml:"claim"`
	Type    string    `json:"type"             yaml:"type"`
	Errors  []string  `json:"errors"           yaml:"errors"`
	Agent   string    `json:"agent,omitempty"  yaml:"agent,omitempty"`
	Reason  string    `json:"reason,omitempty" yaml:"reason,omitempty"`
	Created time.Time `json:"created"          yaml:"created"`
}

// PixReversal returns funds of a received instant payment.
type PixReversal struct {
	Base

	Amount     int64      `json:"amount"               yaml:"amount"`
	ExternalID string     `json:"externalId,omitempty" yaml:"externalId,omitempty"`
	EndToEndID string     `json:"endToEndId,omitempty" yaml:"endToEndId,omitempty"`
	Reason     string     `json:"reason,omitempty"     yaml:"reason,omitempty"`
	Tags       []string   `json:"tags,omitempty"       yaml:"tags,omitempty"`
	ReturnID   string     `json:"returnId,omitempty"   yaml:"returnId,omitempty"`
	BankCode   string     `json:"bankCode,omitempty"   yaml:"bankCode,omitempty"`
	Fee        int64      `json:"fee,omitempty"        yaml:"fee,omitempty"`
	Status     string     `json:"status,omitempty"     yaml:"status,omitempty"`
	Flow       string     `json:"flow,omitempty"       yaml:"flow,omitempty"`
	Updated    *time.Time `json:"updated,omitempty"    yaml:"updated,omitempty"`
	Created    *time.Time `json:"created,omitempty"    yaml:"created,omitempty"`
}

// PixReversalLog records a change to a reversal.
type PixReversalLog struct {
	Base

	Reversal *PixReversal `json:"reversal" yaml:"reversal"`
	Type     string       `json:"type"     yaml:"type"`
	Errors   []string     `json:"errors"   yaml:"errors"`
	Created  time.Time    `json:"created"  yaml:"created"`
}

//nolint:gochecknoglobals
var (
	PixBalanceDescriptor = Register(ResourcePixBalance, func(r *FieldReader) (Resource, error) {
		return &PixBalance{
			Base:     Base{ID: r.ID()},
			Amount:   r.OptInt64("amount"),
			Currency: r.OptString("currency"),
			Updated:  r.OptDateTime("updated"),
		}, nil
	})

	PixKeyDescriptor = Register(ResourcePixKey, func(r *FieldReader) (Resource, error) {
		return &PixKey{
			Base:           Base{ID: r.ID()},
			AccountCreated: r.OptDateTime("accountCreated"),
			AccountNumber:  r.OptString("accountNumber"),
			AccountType:    r.OptString("accountType"),
			BranchCode:     r.OptString("branchCode"),
			Name:           r.OptString("name"),
			TaxID:          r.OptString("taxId"),
			Tags:           r.Strings("tags"),
			Owned:          r.OptDateTime("owned"),
			OwnerType:      r.OptString("ownerType"),
			Status:         r.OptString("status"),
			BankCode:       r.OptString("bankCode"),
			BankName:       r.OptString("bankName"),
			Type:           r.OptString("type"),
			Created:        r.OptDateTime("created"),
		}, nil
	})

	PixKeyLogDescriptor = Register(ResourcePixKeyLog, func(r *FieldReader) (Resource, error) {
		return &PixKeyLog{
			Base:    Base{ID: r.ID()},
			Key:     ResourceOf[*PixKey](r, "key", ResourcePixKey),
			Type:    r.OptString("type"),
			Errors:  r.Strings("errors"),
			Created: r.DateTime("created"),
		}, nil
	})

	PixClaimDescriptor = Register(ResourcePixClaim, func(r *FieldReader) (Resource, error) {
		return &PixClaim{
			Base:            Base{ID: r.ID()},
			AccountCreated:  r.OptDateTime("accountCreated"),
			AccountNumber:   r.OptString("accountNumber"),
			AccountType:     r.OptString("accountType"),
			BranchCode:      r.OptString("branchCode"),
			Name:            r.OptString("name"),
			TaxID:           r.OptString("taxId"),
			KeyID:           r.OptString("keyId"),
			Tags:            r.Strings("tags"),
			Status:          r.OptString("status"),
			Type:            r.OptString("type"),
			KeyType:         r.OptString("keyType"),
			Flow:            r.OptString("flow"),
			ClaimerBankCode: r.OptString("claimerBankCode"),
			ClaimedBankCode: r.OptString("claimedBankCode"),
			Updated:         r.OptDateTime("updated"),
			Created:         r.OptDateTime("created"),
		}, nil
	})

	PixClaimLogDescriptor = Register(ResourcePixClaimLog, func(r *FieldReader) (Resource, error) {
		return &PixClaimLog{
			Base:    Base{ID: r.ID()},
			Claim:   ResourceOf[*PixClaim](r, "claim", ResourcePixClaim),
			Type:    r.OptString("type"),
			Errors:  r.Strings("errors"),
			Agent:   r.OptString("agent"),
			Reason:  r.OptString("reason"),
			Created: r.DateTime("created"),
		}, nil
	})

	PixReversalDescriptor = Register(ResourcePixReversal, func(r *FieldReader) (Resource, error) {
		return &PixReversal{
			Base:       Base{ID: r.ID()},
			Amount:     r.OptInt64("amount"),
			ExternalID: r.OptString("externalId"),
			EndToEndID: r.OptString("endToEndId"),
			Reason:     r.OptString("reason"),
			Tags:       r.Strings("tags"),
			ReturnID:   r.OptString("returnId"),
			BankCode:   r.OptString("bankCode"),
			Fee:        r.OptInt64("fee"),
			Status:     r.OptString("status"),
			Flow:       r.OptString("flow"),
			Updated:    r.OptDateTime("updated"),
			Created:    r.OptDateTime("created"),
		}, nil
	})

	PixReversalLogDescriptor = Register(ResourcePixReversalLog, func(r *FieldReader) (Resource, error) {
		return &PixReversalLog{
			Base:     Base{ID: r.ID()},
			Reversal: ResourceOf[*PixReversal](r, "reversal", ResourcePixReversal),
			Type:     r.OptString("type"),
			Errors:   r.Strings("errors"),
			Created:  r.DateTime("created"),
		}, nil
	})
)
