package utils

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stocktree/stocktree-auth/internal/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer  = "stocktree-auth"
	testSignKey = "test-sign-key"
)

func testCodec() crypto.Codec {
	return crypto.NewCodec("test-encryption-secret")
}

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	codec := testCodec()

	issued, err := GenerateAccessToken(codec, testIssuer, 42, "jane@example.com", []string{"admin", "user"}, time.Hour, testSignKey)
	require.NoError(t, err)
	require.NotEmpty(t, issued.SignedString)

	parsed, err := ValidateAndParseAccessToken(codec, issued.SignedString, testSignKey, testIssuer)
	require.NoError(t, err)

	assert.Equal(t, int64(42), parsed.UserID)
	assert.Equal(t, "jane@example.com", parsed.Email)
	assert.Equal(t, []string{"admin", "user"}, parsed.Roles)
}

func TestGenerateAccessToken_ClaimsAreSealed(t *testing.T) {
	codec := testCodec()

	issued, err := GenerateAccessToken(codec, testIssuer, 42, "jane@example.com", nil, time.Hour, testSignKey)
	require.NoError(t, err)

	parts := strings.Split(issued.SignedString, ".")
	require.Len(t, parts, 3)

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var claims map[string]any
	require.NoError(t, json.Unmarshal(payload, &claims))

	// id and email are never plaintext inside the token payload
	assert.NotEqual(t, "42", claims["id"])
	assert.NotEqual(t, "jane@example.com", claims["email"])
	assert.NotContains(t, string(payload), "jane@example.com")
}

func TestGenerateAccessToken_InvalidParams(t *testing.T) {
	codec := testCodec()

	_, err := GenerateAccessToken(codec, "", 42, "jane@example.com", nil, time.Hour, testSignKey)
	assert.Error(t, err)

	_, err = GenerateAccessToken(codec, testIssuer, 42, "jane@example.com", nil, 0, testSignKey)
	assert.Error(t, err)

	_, err = GenerateAccessToken(codec, testIssuer, 42, "jane@example.com", nil, time.Hour, "")
	assert.Error(t, err)
}

func TestValidateAndParseAccessToken_WrongSignKey(t *testing.T) {
	codec := testCodec()

	issued, err := GenerateAccessToken(codec, testIssuer, 42, "jane@example.com", nil, time.Hour, testSignKey)
	require.NoError(t, err)

	_, err = ValidateAndParseAccessToken(codec, issued.SignedString, "another-key", testIssuer)
	assert.Error(t, err)
}

func TestValidateAndParseAccessToken_WrongIssuer(t *testing.T) {
	codec := testCodec()

	issued, err := GenerateAccessToken(codec, testIssuer, 42, "jane@example.com", nil, time.Hour, testSignKey)
	require.NoError(t, err)

	_, err = ValidateAndParseAccessToken(codec, issued.SignedString, testSignKey, "someone-else")
	assert.Error(t, err)
}

func TestValidateAndParseAccessToken_Expired(t *testing.T) {
	codec := testCodec()

	issued, err := GenerateAccessToken(codec, testIssuer, 42, "jane@example.com", nil, -time.Minute, testSignKey)
	require.NoError(t, err)

	_, err = ValidateAndParseAccessToken(codec, issued.SignedString, testSignKey, testIssuer)
	assert.Error(t, err)
}

func TestValidateAndParseAccessToken_TamperedPayload(t *testing.T) {
	codec := testCodec()

	issued, err := GenerateAccessToken(codec, testIssuer, 42, "jane@example.com", nil, time.Hour, testSignKey)
	require.NoError(t, err)

	parts := strings.Split(issued.SignedString, ".")
	require.Len(t, parts, 3)

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var claims map[string]any
	require.NoError(t, json.Unmarshal(payload, &claims))
	claims["roles"] = []string{"admin"}
	forged, err := json.Marshal(claims)
	require.NoError(t, err)
	parts[1] = base64.RawURLEncoding.EncodeToString(forged)

	_, err = ValidateAndParseAccessToken(codec, strings.Join(parts, "."), testSignKey, testIssuer)
	assert.Error(t, err)
}

func TestParseBearerToken(t *testing.T) {
	token, err := ParseBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ParseBearerToken("Bearer")
	assert.Error(t, err)

	_, err = ParseBearerToken("")
	assert.Error(t, err)
}
