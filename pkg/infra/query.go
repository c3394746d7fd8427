package infra

import (
	"fmt"
	"maps"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Query holds logical query parameters. Supported values are string, []string,
// int, int64, bool, time.Time, Date, pointers to those, and nil. Nil and empty
// values are left out of the wire form.
type Query map[string]any

// Set stores a parameter and returns the query for chaining.
func (q Query) Set(key string, value any) Query {
	q[key] = value

	return q
}

// Clone returns a shallow copy; a nil query clones to an empty one.
func (q Query) Clone() Query {
	out := make(Query, len(q))
	maps.Copy(out, q)

	return out
}

// Values renders the query. Lists are comma joined, times and dates are
// rendered as YYYY-MM-DD and bools in lowercase.
func (q Query) Values() (url.Values, error) {
	values := url.Values{}

	for key, raw := range q {
		encoded, ok, err := encodeQueryValue(raw)
		if err != nil {
			return nil, fmt.Errorf("query parameter %q: %w", key, err)
		}

		if ok {
			values.Set(key, encoded)
		}
	}

	return values, nil
}

// Encode renders the query string with keys in sorted order.
func (q Query) Encode() (string, error) {
	values, err := q.Values()
	if err != nil {
		return "", err
	}

	return values.Encode(), nil
}

func encodeQueryValue(raw any) (string, bool, error) {
	switch v := raw.(type) {
	case nil:
		return "", false, nil
	case string:
		return v, v != "", nil
	case *string:
		if v == nil {
			return "", false, nil
		}

		return encodeQueryValue(*v)
	case []string:
		return strings.Join(v, ","), len(v) > 0, nil
	case int:
		return strconv.Itoa(v), true, nil
	case *int:
		if v == nil {
			return "", false, nil
		}

		return strconv.Itoa(*v), true, nil
	case int64:
		return strconv.FormatInt(v, 10), true, nil
	case *int64:
		if v == nil {
			return "", false, nil
		}

		return strconv.FormatInt(*v, 10), true, nil
	case bool:
		return strconv.FormatBool(v), true, nil
	case *bool:
		if v == nil {
			return "", false, nil
		}

		return strconv.FormatBool(*v), true, nil
	case time.Time:
		if v.IsZero() {
			return "", false, nil
		}

		return DateOf(v).String(), true, nil
	case *time.Time:
		if v == nil {
			return "", false, nil
		}

		return encodeQueryValue(*v)
	case Date:
		if v.IsZero() {
			return "", false, nil
		}

		return v.String(), true, nil
	case *Date:
		if v == nil {
			return "", false, nil
		}

		return encodeQueryValue(*v)
	default:
		return "", false, fmt.Errorf("%w: %T", ErrUnsupportedQuery, raw)
	}
}
