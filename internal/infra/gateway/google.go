package gateway

import (
	"context"
	"fmt"

	"shopapi/internal/usecase"

	"google.golang.org/api/idtoken"
)

// GoogleVerifier はusecase.GoogleTokenVerifierのidtoken実装。
// audienceは自分のGOOGLE_CLIENT_ID。
type GoogleVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID}
}

func (v *GoogleVerifier) Verify(ctx context.Context, token string) (usecase.GoogleIdentity, error) {
	payload, err := idtoken.Validate(ctx, token, v.clientID)
	if err != nil {
		return usecase.GoogleIdentity{}, err
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return usecase.GoogleIdentity{}, fmt.Errorf("google token has no email claim")
	}
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)

	return usecase.GoogleIdentity{
		Sub:     payload.Subject,
		Email:   email,
		Name:    name,
		Picture: picture,
	}, nil
}
