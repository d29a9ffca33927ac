package identity

import (
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestFromAccessToken(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	token := signToken(t, jwt.MapClaims{
		"sub":   userID.String(),
		"email": "moun@citoyen.ht",
		"user_metadata": map[string]any{
			"full_name": "Moun Natif",
		},
	})

	ident, err := FromAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, userID, ident.UserID)
	require.Equal(t, "moun@citoyen.ht", ident.Email)
	require.NotNil(t, ident.FullName)
	require.Equal(t, "Moun Natif", *ident.FullName)
}

func TestFromAccessToken_NoFullName(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	token := signToken(t, jwt.MapClaims{
		"sub":   userID.String(),
		"email": "moun@citoyen.ht",
	})

	ident, err := FromAccessToken(token)
	require.NoError(t, err)
	require.Nil(t, ident.FullName)
}

func TestFromAccessToken_MissingSubject(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"email": "moun@citoyen.ht"})

	_, err := FromAccessToken(token)
	require.Error(t, err)
}

func TestFromAccessToken_SubjectNotAUserID(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"sub": "not-a-uuid"})

	_, err := FromAccessToken(token)
	require.Error(t, err)
}

func TestFromAccessToken_Garbage(t *testing.T) {
	_, err := FromAccessToken("not.a.token")
	require.Error(t, err)
}
