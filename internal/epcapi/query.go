package epcapi

import (
	"fmt"
	"net/url"

	"github.com/go-viper/mapstructure/v2"
)

// Query selects certificates on the domestic search endpoint. Empty fields
// are not sent.
type Query struct {
	LocalAuthority string `mapstructure:"local-authority,omitempty"`
	PropertyType   string `mapstructure:"property-type,omitempty"`
	Size           int    `mapstructure:"size,omitempty"`
}

// Values flattens the query into URL parameters.
func (q Query) Values() (url.Values, error) {
	var m map[string]any
	if err := mapstructure.Decode(q, &m); err != nil {
		return nil, fmt.Errorf("encoding query: %w", err)
	}

	values := url.Values{}
	for k, v := range m {
		values.Set(k, fmt.Sprint(v))
	}
	return values, nil
}
