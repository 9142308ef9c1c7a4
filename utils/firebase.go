// utils/firebase.go
package utils

import (
	"context"
	"fmt"

	"github.com/renjoshini/hereforyou/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var FCMClient *messaging.Client

// FirebaseInit initializes the Firebase App and Messaging client. With no
// credentials file configured it leaves FCMClient nil and push is disabled.
func FirebaseInit() error {
	path := config.AppConfig.FirebaseCredentialsFile
	if path == "" {
		GetLogger().Warn("FIREBASE_CREDENTIALS_FILE not set, push notifications disabled")
		return nil
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(path))
	if err != nil {
		return fmt.Errorf("firebase: error initializing app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return fmt.Errorf("firebase: error getting Messaging client: %w", err)
	}

	FCMClient = client
	return nil
}
