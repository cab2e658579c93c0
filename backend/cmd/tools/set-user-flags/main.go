// set-user-flags grants or revokes admin rights and (de)activates accounts.
//
//	go run ./backend/cmd/tools/set-user-flags -email ann@example.com -admin=true
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/itchan-dev/shopkeeper/backend/internal/storage/pg"
	"github.com/itchan-dev/shopkeeper/shared/config"
	sharedpg "github.com/itchan-dev/shopkeeper/shared/storage/pg"
)

// parseFlag turns "" into nil so unset flags leave the column untouched.
func parseFlag(name, value string) (*bool, error) {
	if value == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil, fmt.Errorf("-%s: %w", name, err)
	}
	return &b, nil
}

func main() {
	var configFolder, email, admin, activated string
	flag.StringVar(&configFolder, "config_folder", "backend/config", "path to folder with configs")
	flag.StringVar(&email, "email", "", "email of the user to change")
	flag.StringVar(&admin, "admin", "", "true or false; empty leaves it unchanged")
	flag.StringVar(&activated, "activated", "", "true or false; empty leaves it unchanged")
	flag.Parse()

	if email == "" {
		log.Fatal("-email is required")
	}
	adminFlag, err := parseFlag("admin", admin)
	if err != nil {
		log.Fatal(err)
	}
	activatedFlag, err := parseFlag("activated", activated)
	if err != nil {
		log.Fatal(err)
	}
	if adminFlag == nil && activatedFlag == nil {
		log.Fatal("nothing to change: pass -admin and/or -activated")
	}

	cfg := config.MustLoad(configFolder)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	storage, err := pg.NewWithConnectionConfig(ctx, cfg, sharedpg.LightweightConnectionConfig())
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer storage.Cleanup()

	user, err := storage.SetUserFlags(ctx, strings.ToLower(strings.TrimSpace(email)), adminFlag, activatedFlag)
	if err != nil {
		log.Fatalf("Failed to update user: %v", err)
	}
	fmt.Printf("%s: admin=%t activated=%t\n", user.Email, user.Admin, user.Activated)
}
