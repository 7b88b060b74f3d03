package utils

import (
	"encoding/base64"
	"strings"
	"tawheed/src/lib"
	"tawheed/src/models"
	"tawheed/src/types"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestBookingTotal(t *testing.T) {
	pkg := &models.Package{Price: 500}
	assert.Equal(t, 1000.0, BookingTotal(pkg, 2))

	discounted := 450.0
	pkg.DiscountedPrice = &discounted
	assert.Equal(t, 1350.0, BookingTotal(pkg, 3))

	cms := &models.CMSPackage{Price: 700}
	assert.Equal(t, 700.0, BookingTotal(cms, 1))

	assert.Equal(t, 0.0, BookingTotal(nil, 2))
	assert.Equal(t, 0.0, BookingTotal(pkg, 0))
}

func TestDeriveUsername(t *testing.T) {
	nothingTaken := func(string) bool { return false }
	assert.Equal(t, "amina", DeriveUsername("amina@example.com", nothingTaken))

	taken := map[string]bool{"amina": true}
	assert.Equal(t, "amina1", DeriveUsername("amina@travel.net", func(u string) bool { return taken[u] }))

	taken["amina1"] = true
	assert.Equal(t, "amina2", DeriveUsername("amina@agency.org", func(u string) bool { return taken[u] }))

	// Local parts are slugified into safe handles.
	assert.Equal(t, "omar-ali", DeriveUsername("Omar.Ali@example.com", nothingTaken))
	assert.Equal(t, "user", DeriveUsername("@example.com", nothingTaken))
}

func TestSessionTokenUsesRuntimeSecret(t *testing.T) {
	// The secret must be read when a token is issued, not captured at
	// package init, or env loaded from a .env file would be ignored.
	t.Setenv("JWT_SECRET", "runtime-secret")

	user := &models.User{ID: 7, Username: "amina", Role: models.RoleUser}
	token, err := IssueSessionToken(user)
	assert.Nil(t, err)

	claims := &types.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return JWTKey(), nil
	})
	assert.Nil(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, "amina", claims.Username)
	assert.NotEmpty(t, claims.ID)
}

type memStore struct {
	files map[string][]byte
}

func (s *memStore) Put(name string, data []byte) (string, error) {
	if s.files == nil {
		s.files = map[string][]byte{}
	}
	s.files[name] = data
	return "media/" + name, nil
}

func TestSaveBase64Media(t *testing.T) {
	store := &memStore{}
	lib.NewBlobStore(store)
	defer lib.NewBlobStore(&lib.DiskStore{Dir: "media"})

	pngBytes := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}
	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)

	path, err := SaveBase64Media(payload)
	assert.Nil(t, err)
	assert.True(t, strings.HasPrefix(path, "media/"))
	assert.True(t, strings.HasSuffix(path, ".png"), "sniffed extension should come from content, got %s", path)
	assert.Len(t, store.files, 1)

	// Already-stored paths and plain URLs pass through untouched.
	path, err = SaveBase64Media("https://cdn.example.com/hero.jpg")
	assert.Nil(t, err)
	assert.Equal(t, "https://cdn.example.com/hero.jpg", path)

	_, err = SaveBase64Media("data:image/png;notencoded")
	assert.ErrorIs(t, err, ErrInvalidMediaPayload)

	_, err = SaveBase64Media("data:image/png;base64,!!!not-base64!!!")
	assert.ErrorIs(t, err, ErrInvalidMediaPayload)
}
