// SPDX-License-Identifier: AGPL-3.0-only
package cli

import (
	"context"
	"fmt"
	"log"
	"syscall"

	"golang.org/x/term"

	"github.com/yapster-gg/yapster-api/internal/authhelp"
	"github.com/yapster-gg/yapster-api/internal/store"
)

// HandleResetPassword is the admin escape hatch for a locked-out account:
// it prompts for a new password on the terminal and overwrites the stored
// hash.
func HandleResetPassword(s *store.Store, username string) {
	ctx := context.Background()

	if username == "" {
		log.Fatal("--username is required")
	}

	user, err := s.UserByUsername(ctx, username)
	if err != nil {
		log.Fatalf("User '%s' not found: %v", username, err)
	}

	fmt.Printf("Enter new password for '%s': ", username)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		log.Fatalf("\nFailed to read password: %v", err)
	}
	fmt.Println()

	password := string(bytePassword)
	if err := authhelp.ValidatePasswordStrength(password); err != nil {
		log.Fatalf("Password is too weak: %v", err)
	}

	hash, err := authhelp.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	if err := s.SetUserFields(ctx, user.ID.Hex(), map[string]any{"passwordHash": hash}); err != nil {
		log.Fatalf("Failed to update password: %v", err)
	}

	fmt.Println("Password updated successfully.")
}
