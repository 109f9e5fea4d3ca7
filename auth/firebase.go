package auth

import (
	"context"
	"fmt"
	"os"

	firebase "firebase.google.com/go"
	fbauth "firebase.google.com/go/auth"
	"google.golang.org/api/option"
)

var (
	firebaseAuth *fbauth.Client
	projectID    string
)

// InitFirebase wires up the Google ID-token verifier. Must be called once
// at startup before the auth routes are served.
func InitFirebase() error {
	projectID = os.Getenv("FIREBASE_PROJECT_ID")
	if projectID == "" {
		return fmt.Errorf("FIREBASE_PROJECT_ID is not set")
	}

	ctx := context.Background()

	var opts []option.ClientOption
	if credsFile := os.Getenv("FIREBASE_CREDENTIALS_FILE"); credsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return fmt.Errorf("failed to initialize firebase app: %v", err)
	}

	firebaseAuth, err = app.Auth(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize firebase auth client: %v", err)
	}

	return nil
}
