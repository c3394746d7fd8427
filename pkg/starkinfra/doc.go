// Package starkinfra provides the primary entry point for constructing an
// API client that implements the infra.Client interface.
//
// It layers configuration, HTTP transport and request signing on top of the
// resource interfaces and types defined in the infra package. Most
// applications import starkinfra to build a client, then use the returned
// infra.Client to reach resource-specific clients such as IssuingCards(),
// PixKeyLogs() or MerchantCountries().
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//	  "os"
//
//	  "github.com/fivetwenty-io/infra-client/pkg/infra"
//	  "github.com/fivetwenty-io/infra-client/pkg/starkinfra"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  key, err := os.ReadFile("privateKey.pem")
//	  if err != nil { log.Fatal(err) }
//
//	  cli, err := starkinfra.NewWithProject(ctx, infra.EnvironmentSandbox, "5656565656565656", string(key))
//	  if err != nil { log.Fatal(err) }
//
//	  cards := cli.IssuingCards().Query(ctx, infra.CardFilter{Status: "active"}.Query(), 10)
//	  for card, err := range cards.Seq() {
//	    if err != nil { log.Fatal(err) }
//	    log.Println(card.ID, card.HolderName)
//	  }
//	}
//
// # Credentials
//
// A client may be built without a credential when the process default is set
// with infra.SetDefaultCredential, and any single call can be signed with
// another credential through infra.WithCredential.
//
// # Helpers
//
// The package also provides convenience constructors NewWithProject,
// NewWithOrganization and NewWithKeyFile that wrap New with the appropriate
// configuration.
package starkinfra
