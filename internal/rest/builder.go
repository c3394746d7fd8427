// Package rest turns resource-level operations into signed HTTP round trips
// and server JSON back into registered resources.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/fivetwenty-io/infra-client/internal/constants"
	"github.com/fivetwenty-io/infra-client/pkg/infra"
)

// Clock returns the current time. Tests replace it to pin Access-Time.
type Clock func() time.Time

// SignedRequest is a request ready for the transport.
type SignedRequest struct {
	Method  string
	Path    string
	Query   url.Values
	Body    []byte
	Headers map[string]string
}

// Builder signs requests for a credential.
type Builder struct {
	clock Clock
}

// NewBuilder creates a builder. A nil clock means time.Now.
func NewBuilder(clock Clock) *Builder {
	if clock == nil {
		clock = time.Now
	}

	return &Builder{clock: clock}
}

// Build encodes body once, signs those exact bytes and returns the request.
// id is appended to the endpoint when not empty.
func (b *Builder) Build(ctx context.Context, cred *infra.Credential, method, resourceName, id string, query infra.Query, body any) (*SignedRequest, error) {
	err := ctx.Err()
	if err != nil {
		return nil, err
	}

	if cred == nil {
		return nil, infra.ErrAuthenticationConfig
	}

	values, err := query.Values()
	if err != nil {
		return nil, fmt.Errorf("encoding query for %s: %w", resourceName, err)
	}

	var payload []byte

	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding body for %s: %w", resourceName, err)
		}
	}

	accessTime := strconv.FormatInt(b.clock().Unix(), 10)

	signature, err := cred.Sign(accessTime, payload)
	if err != nil {
		return nil, err
	}

	return &SignedRequest{
		Method: method,
		Path:   Path(resourceName, id),
		Query:  values,
		Body:   payload,
		Headers: map[string]string{
			constants.HeaderAccessID:        cred.AccessID(),
			constants.HeaderAccessTime:      accessTime,
			constants.HeaderAccessSignature: signature,
		},
	}, nil
}

// Path returns "v2/<endpoint>[/<id>]".
func Path(resourceName, id string) string {
	path := constants.APIVersion + "/" + Endpoint(resourceName)
	if id != "" {
		path += "/" + url.PathEscape(id)
	}

	return path
}

// Endpoint is the kebab-case resource name with log collections nested under
// their parent: IssuingCardLog becomes issuing-card/log.
func Endpoint(resourceName string) string {
	kebab := kebabCase(resourceName)
	if strings.HasSuffix(kebab, "-log") {
		kebab = strings.TrimSuffix(kebab, "-log") + "/log"
	}

	return kebab
}

// LastName is the last word of the resource name, used as the JSON key of
// single-entity answers: IssuingCard becomes card.
func LastName(resourceName string) string {
	kebab := kebabCase(resourceName)

	return kebab[strings.LastIndex(kebab, "-")+1:]
}

// LastNamePlural is the JSON key of list answers and bulk bodies.
func LastNamePlural(resourceName string) string {
	base := LastName(resourceName)

	switch {
	case strings.HasSuffix(base, "s"):
		return base
	case strings.HasSuffix(base, "ey"):
		return base + "s"
	case strings.HasSuffix(base, "y"):
		return strings.TrimSuffix(base, "y") + "ies"
	default:
		return base + "s"
	}
}

func kebabCase(name string) string {
	var b strings.Builder

	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}

			b.WriteRune(unicode.ToLower(r))

			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}
