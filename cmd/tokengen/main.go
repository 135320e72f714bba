// tokengen mints a development bearer token for testing the API
// without the external auth provider.
//
//	JWT_SECRET=... tokengen -sub user_123 -email dev@example.com [-name "Dev User"] [-ttl 24h]
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"todosync/pkg/utils"
)

func main() {
	sub := flag.String("sub", "", "external identity id (required)")
	email := flag.String("email", "", "primary email (required)")
	name := flag.String("name", "", "display name")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" || *sub == "" || *email == "" {
		fmt.Fprintln(os.Stderr, "tokengen: JWT_SECRET, -sub and -email are required")
		os.Exit(2)
	}

	token, err := utils.SignBearerToken(&utils.Identity{
		ID:    *sub,
		Email: *email,
		Name:  *name,
	}, secret, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tokengen:", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
