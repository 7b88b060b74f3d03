package utils

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"tawheed/src/config"
	"tawheed/src/db"
	"tawheed/src/lib"
	"tawheed/src/models"
	"tawheed/src/types"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// JWTKey reads the signing secret at call time, after any .env file has
// been loaded, never at package init.
func JWTKey() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

func sessionUserKey(userID uint) string {
	return fmt.Sprintf("session:user:%d", userID)
}

func sessionTokenKey(jti string) string {
	return fmt.Sprintf("session:token:%s", jti)
}

// IssueSessionToken reuses the user's live token when one exists, otherwise
// mints a JWT and registers it in the session store so logout can revoke it.
func IssueSessionToken(user *models.User) (string, error) {
	rd := lib.GetRedisClient()
	ttl := config.SessionTTLHours * time.Hour
	if rd != nil {
		if existing, err := rd.Get(context.Background(), sessionUserKey(user.ID)).Result(); err == nil && existing != "" {
			return existing, nil
		}
	}
	jti := uuid.NewString()
	claims := &types.Claims{
		Username: user.Username,
		Role:     string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(JWTKey())
	if err != nil {
		return "", err
	}
	if rd != nil {
		rd.Set(context.Background(), sessionUserKey(user.ID), signed, ttl)
		rd.Set(context.Background(), sessionTokenKey(jti), user.ID, ttl)
	}
	return signed, nil
}

// SessionAlive reports whether the token id is still registered. With no
// session store configured every parsed token is accepted until expiry.
func SessionAlive(jti string) bool {
	rd := lib.GetRedisClient()
	if rd == nil {
		return true
	}
	n, err := rd.Exists(context.Background(), sessionTokenKey(jti)).Result()
	if err != nil {
		log.Printf("[session] liveness check failed: %s\n", err.Error())
		return false
	}
	return n > 0
}

// RevokeSession drops the caller's session keys. A missing token is
// reported to the caller but never treated as fatal.
func RevokeSession(userID uint, jti string) error {
	rd := lib.GetRedisClient()
	if rd == nil {
		return errors.New("no session store configured")
	}
	deleted, err := rd.Del(context.Background(), sessionUserKey(userID), sessionTokenKey(jti)).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return errors.New("no active session found")
	}
	return nil
}

func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

// DeriveUsername builds a login handle from the email local part and
// resolves collisions with a numeric suffix: amina, amina1, amina2, ...
func DeriveUsername(email string, taken func(string) bool) string {
	base := email
	if at := strings.Index(email, "@"); at > 0 {
		base = email[:at]
	}
	base = slug.Make(base)
	if base == "" {
		base = "user"
	}
	username := base
	for counter := 1; taken(username); counter++ {
		username = fmt.Sprintf("%s%d", base, counter)
	}
	return username
}

// LogActivity appends an audit row. Failures are logged and swallowed so a
// broken trail never fails the request that produced it.
func LogActivity(userID uint, action, description, ipAddress string) {
	d := db.GetDb()
	activity := models.UserActivity{
		UserID:      userID,
		Action:      action,
		Description: description,
		IPAddress:   ipAddress,
	}
	if err := d.Create(&activity).Error; err != nil {
		log.Printf("Could not record activity %s for user %d: %s\n", action, userID, err.Error())
	}
}

// BookingTotal is the pricing rule: effective catalog price times passenger
// count. Pure so tests can call it without storage.
func BookingTotal(pkg models.Priced, passengers int) float64 {
	if pkg == nil || passengers <= 0 {
		return 0
	}
	return pkg.EffectivePrice() * float64(passengers)
}

// MatchPackageType resolves a free-text package-type label against the
// catalog. An exact case-insensitive match wins; otherwise a substring
// match in either direction applies, so a label like "umrah_classic" still
// finds the "umrah" type tag. Ties break on package_type ascending. No
// match returns nil, nil.
func MatchPackageType(tx *gorm.DB, label string) (*models.Package, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, nil
	}
	var pkg models.Package
	err := tx.
		Model(&models.Package{}).
		Where("LOWER(package_type) = LOWER(?)", label).
		Order("package_type asc").
		First(&pkg).
		Error
	if err == nil {
		return &pkg, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	err = tx.
		Model(&models.Package{}).
		Where("package_type ILIKE ? OR ? ILIKE CONCAT('%', package_type, '%')", "%"+label+"%", label).
		Order("package_type asc").
		First(&pkg).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// ParseDate parses a date-only field from a request body.
func ParseDate(value string) (*time.Time, error) {
	parsed, err := time.Parse(config.DATE_PARSE_FORMAT, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

var ErrInvalidMediaPayload = errors.New("invalid media payload")

// SaveBase64Media decodes a data-URI payload (data:image/... or
// data:video/...), sniffs the real format from the decoded bytes and writes
// the blob under a generated opaque filename. Returns the stored path.
// Plain URLs or already-stored paths pass through untouched.
func SaveBase64Media(payload string) (string, error) {
	if !strings.HasPrefix(payload, "data:image") && !strings.HasPrefix(payload, "data:video") {
		return payload, nil
	}
	_, encoded, found := strings.Cut(payload, "base64,")
	if !found {
		return "", ErrInvalidMediaPayload
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidMediaPayload
	}
	mtype := mimetype.Detect(decoded)
	ext := strings.TrimPrefix(mtype.Extension(), ".")
	if ext == "" {
		return "", ErrInvalidMediaPayload
	}
	name := fmt.Sprintf("%s.%s", strings.ReplaceAll(uuid.NewString(), "-", "")[:12], ext)
	store := lib.GetBlobStore()
	path, err := store.Put(name, decoded)
	if err != nil {
		log.Printf("Could not store media blob %s: %s\n", name, err.Error())
		return "", err
	}
	return path, nil
}
