package models

// Provider is a streaming, rental or purchase service offering a title.
type Provider struct {
	ProviderID   int    `json:"provider_id"`
	ProviderName string `json:"provider_name"`
	LogoPath     string `json:"logo_path,omitempty"`
}

type ProviderOffers struct {
	Flatrate []Provider `json:"flatrate,omitempty"`
	Rent     []Provider `json:"rent,omitempty"`
	Buy      []Provider `json:"buy,omitempty"`
}

// Unique merges flatrate, rent and buy in that order, keeping the first
// occurrence of every provider id.
func (o ProviderOffers) Unique() []Provider {
	seen := make(map[int]struct{})
	out := make([]Provider, 0, len(o.Flatrate)+len(o.Rent)+len(o.Buy))
	for _, group := range [][]Provider{o.Flatrate, o.Rent, o.Buy} {
		for _, p := range group {
			if _, ok := seen[p.ProviderID]; ok {
				continue
			}
			seen[p.ProviderID] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}
