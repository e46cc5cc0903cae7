package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ndorofeev/clubdesk_backend/internal/model"
)

// SessionConfig параметры проверки сессионных токенов, выдаваемых
// внешним бэкендом аутентификации. Сами токены мы не выпускаем
type SessionConfig struct {
	Secret string
	Issuer string
}

// ErrMissingToken заголовок Authorization отсутствует
var ErrMissingToken = errors.New("missing bearer token")

// ErrInvalidToken токен не прошёл проверку
var ErrInvalidToken = errors.New("invalid bearer token")

// ParseSessionToken проверяет JWT и собирает из claims контекст сессии
func ParseSessionToken(token string, cfg SessionConfig) (*model.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrMissingToken
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	}, jwt.WithIssuer(cfg.Issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	subject, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	clubIDRaw, _ := claims["club_id"].(string)
	clubName, _ := claims["club_name"].(string)

	if subject == "" || role == "" {
		return nil, ErrInvalidToken
	}

	switch model.Role(role) {
	case model.RoleSuperAdmin, model.RoleClubAdmin, model.RoleCoach:
	default:
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, role)
	}

	// superadmin может работать без привязки к клубу,
	// остальным club_id обязателен
	clubID := uuid.Nil
	if clubIDRaw != "" {
		clubID, err = uuid.Parse(clubIDRaw)
		if err != nil {
			return nil, fmt.Errorf("%w: bad club_id: %v", ErrInvalidToken, err)
		}
	}
	if clubID == uuid.Nil && model.Role(role) != model.RoleSuperAdmin {
		return nil, fmt.Errorf("%w: club_id is required for role %q", ErrInvalidToken, role)
	}

	return &model.Session{
		UserID:   subject,
		Role:     model.Role(role),
		ClubID:   clubID,
		ClubName: clubName,
	}, nil
}

type contextKey string

const sessionKey contextKey = "clubdesk-session"

// WithSession кладёт сессию в контекст запроса
func WithSession(ctx context.Context, sess *model.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// SessionFromContext достаёт сессию, положенную middleware
func SessionFromContext(ctx context.Context) (*model.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(*model.Session)
	return sess, ok
}
