package infra

const (
	ResourceMerchantCountry  = "MerchantCountry"
	ResourceMerchantCategory = "MerchantCategory"
	ResourceCardMethod       = "CardMethod"
)

// MerchantCountry is a country reference entry. It has no server id; Code
// identifies it.
type MerchantCountry struct {
	Code      string `json:"code"                yaml:"code"`
	Name      string `json:"name,omitempty"      yaml:"name,omitempty"`
	Number    string `json:"number,omitempty"    yaml:"number,omitempty"`
	ShortCode string `json:"shortCode,omitempty" yaml:"shortCode,omitempty"`
}

func (c *MerchantCountry) GetID() string { return c.Code }

// MerchantCategory is a merchant category code group.
type MerchantCategory struct {
	Code   string `json:"code,omitempty"   yaml:"code,omitempty"`
	Type   string `json:"type,omitempty"   yaml:"type,omitempty"`
	Name   string `json:"name,omitempty"   yaml:"name,omitempty"`
	Number string `json:"number,omitempty" yaml:"number,omitempty"`
}

func (c *MerchantCategory) GetID() string { return c.Code }

// CardMethod is a card entry method such as chip or contactless.
type CardMethod struct {
	Code   string `json:"code"             yaml:"code"`
	Name   string `json:"name,omitempty"   yaml:"name,omitempty"`
	Number string `json:"number,omitempty" yaml:"number,omitempty"`
}

func (m *CardMethod) GetID() string { return m.Code }

//nolint:gochecknoglobals
var (
	MerchantCountryDescriptor = Register(ResourceMerchantCountry, func(r *FieldReader) (Resource, error) {
		return &MerchantCountry{
			Code:      r.String("code"),
			Name:      r.OptString("name"),
			Number:    r.OptString("number"),
			ShortCode: r.OptString("shortCode"),
		}, nil
	})

	MerchantCategoryDescriptor = Register(ResourceMerchantCategory, func(r *FieldReader) (Resource, error) {
		return &MerchantCategory{
			Code:   r.OptString("code"),
			Type:   r.OptString("type"),
			Name:   r.OptString("name"),
			Number: r.OptString("number"),
		}, nil
	})

	CardMethodDescriptor = Register(ResourceCardMethod, func(r *FieldReader) (Resource, error) {
		return &CardMethod{
			Code:   r.String("code"),
			Name:   r.OptString("name"),
			Number: r.OptString("number"),
		}, nil
	})
)
