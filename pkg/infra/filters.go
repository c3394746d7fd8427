package infra

// CardFilter narrows IssuingCards().Query and Page.
type CardFilter struct {
	Status    string
	Types     []string
	HolderIDs []string
	Tags      []string
	IDs       []string
	Expand    []string
	After     Date
	Before    Date
}

// Query renders the filter.
func (f CardFilter) Query() Query {
	return Query{
		"status":    f.Status,
		"types":     f.Types,
		"holderIds": f.HolderIDs,
		"tags":      f.Tags,
		"ids":       f.IDs,
		"expand":    f.Expand,
		"after":     f.After,
		"before":    f.Before,
	}
}

// LogFilter narrows log collections. ParentIDs is sent under the collection's
// parent key (cardIds, keyIds, ...). IDs and ParentIDs are sent as given
// when both are set.
type LogFilter struct {
	IDs       []string
	Types     []string
	ParentIDs []string
	After     Date
	Before    Date
}

// Query renders the filter for a log collection whose parent key is parentKey.
func (f LogFilter) Query(parentKey string) Query {
	q := Query{
		"ids":    f.IDs,
		"types":  f.Types,
		"after":  f.After,
		"before": f.Before,
	}

	if parentKey != "" {
		q[parentKey] = f.ParentIDs
	}

	return q
}

// CountryFilter narrows MerchantCountries().Query.
type CountryFilter struct {
	Search string
}

// Query renders the filter.
func (f CountryFilter) Query() Query {
	return Query{"search": f.Search}
}
