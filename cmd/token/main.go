// Command token mints bearer tokens for staff terminals and customer apps.
//
//	go run ./cmd/token -subject staff-01 -role staff -ttl 12h
package main

import (
	"Coin-Loyalty-Backend/domain"
	"Coin-Loyalty-Backend/internal/utils"
	"Coin-Loyalty-Backend/pkg/jwt"
	"flag"
	"fmt"
	"os"
	"time"
)

func main() {
	utils.LoadConfig()

	defaultTTL := time.Duration(utils.GetConfigInt("JWT_TOKEN_TTL_HOURS", 12)) * time.Hour
	subject := flag.String("subject", "", "staff id or customer uuid")
	role := flag.String("role", domain.RoleStaff, "staff or customer")
	ttl := flag.Duration("ttl", defaultTTL, "token lifetime")
	flag.Parse()

	if *subject == "" {
		fmt.Fprintln(os.Stderr, "-subject is required")
		os.Exit(2)
	}
	if *role != domain.RoleStaff && *role != domain.RoleCustomer {
		fmt.Fprintf(os.Stderr, "unknown role %q\n", *role)
		os.Exit(2)
	}

	secret := utils.GetConfig("JWT_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is not configured")
		os.Exit(1)
	}

	token, err := jwt.NewJWTService(secret, utils.GetConfig("JWT_ISSUER")).GenerateToken(*subject, *role, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(token)
}
