package utils

import (
	"context"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"shutterhub/config"
)

// FCMClient is nil when no credentials file is configured. Push delivery is
// best-effort, so callers skip sends instead of failing bookings.
var FCMClient *messaging.Client

// FirebaseInit initializes the Firebase Messaging client. A missing
// credentials file disables push notifications rather than aborting startup,
// so local environments can run without a Firebase project.
func FirebaseInit() {
	path := config.AppConfig.FirebaseCredentialsFile
	if _, err := os.Stat(path); err != nil {
		log.Printf("firebase: credentials file %q not found, push notifications disabled", path)
		return
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(path))
	if err != nil {
		log.Fatalf("firebase: error initializing app: %v", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		log.Fatalf("firebase: error getting Messaging client: %v", err)
	}

	FCMClient = client
}
