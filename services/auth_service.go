package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Annisa878/perikanan-tangkap-sub001/apperror"
	"github.com/Annisa878/perikanan-tangkap-sub001/constants"
	"github.com/Annisa878/perikanan-tangkap-sub001/logger"
	"github.com/Annisa878/perikanan-tangkap-sub001/models"
	"github.com/Annisa878/perikanan-tangkap-sub001/roles"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByLogin(ctx context.Context, login string) (*models.User, error)
	Taken(ctx context.Context, email, username string, exceptID uint) (emailTaken, usernameTaken bool, err error)
	GetAll(ctx context.Context) ([]models.User, error)
	UpdateUsername(ctx context.Context, id uint, username string) error
	UpdateRole(ctx context.Context, id uint, role string, actor uint) error
	CountByRole(ctx context.Context, role string) (int64, error)
}

type SessionStore interface {
	CreateSession(ctx context.Context, s *models.UserSession) error
	ActiveSession(ctx context.Context, sessionID string, now time.Time) (*models.UserSession, error)
	EndSession(ctx context.Context, sessionID string, now time.Time) error
	WriteLoginLog(ctx context.Context, l *models.LoginLog) error
}

type TokenConfig struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

const (
	tokenAccess  = "access"
	tokenRefresh = "refresh"
)

type AuthService struct {
	users    UserStore
	sessions SessionStore
	tokens   TokenConfig
	hashCost int
	now      func() time.Time
}

func NewAuthService(users UserStore, sessions SessionStore, tokens TokenConfig) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
	}
}

type RegisterInput struct {
	Email           string `json:"email" form:"email" validate:"required,email"`
	Password        string `json:"password" form:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" validate:"required,eqfield=Password"`
	Username        string `json:"username" form:"username" validate:"required,min=3,max=64"`
	Name            string `json:"name" form:"name"`
	Domisili        string `json:"domisili" form:"domisili" validate:"required,domisili"`
}

func fieldError(field, tag string) error {
	return apperror.Field(field, tag)
}

// Register selalu membuat akun berperan user.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	username := strings.TrimSpace(in.Username)

	fields := map[string]string{}
	if email == "" {
		fields["email"] = "required"
	}
	if len(in.Password) < 6 {
		fields["password"] = "min"
	}
	if in.Password != in.ConfirmPassword {
		fields["confirm_password"] = "eqfield"
	}
	if len(username) < 3 {
		fields["username"] = "min"
	}
	domisili, ok := constants.NormalizeDomisili(in.Domisili)
	if !ok {
		fields["domisili"] = "domisili"
	}
	if len(fields) > 0 {
		return nil, &apperror.FieldError{Fields: fields}
	}

	emailTaken, usernameTaken, err := s.users.Taken(ctx, email, username, 0)
	if err != nil {
		return nil, err
	}
	if emailTaken {
		fields["email"] = "unique"
	}
	if usernameTaken {
		fields["username"] = "unique"
	}
	if len(fields) > 0 {
		return nil, &apperror.FieldError{Fields: fields}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = username
	}
	user := &models.User{
		Username: username,
		Email:    email,
		Name:     name,
		Password: string(hash),
		Role:     string(roles.User),
		Domisili: domisili,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

type ClientInfo struct {
	IP        string
	UserAgent string
	Browser   string
	OS        string
	Device    string
}

type LoginInput struct {
	Login    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	SessionID    string
	User         *models.User
	Role         roles.Role
}

func (r LoginResult) Redirect() string { return r.Role.DashboardPath() }

var errBadCredentials = apperror.Wrap(apperror.ErrUnauthorized, "email/username atau password salah")

func (s *AuthService) Login(ctx context.Context, in LoginInput, client ClientInfo) (*LoginResult, error) {
	now := s.now()
	sessionID := uuid.NewString()

	entry := &models.LoginLog{
		SessionID:   sessionID,
		Username:    in.Login,
		LoginAt:     &now,
		IPAddress:   client.IP,
		UserAgent:   client.UserAgent,
		Browser:     client.Browser,
		OS:          client.OS,
		DeviceType:  client.Device,
		LoginStatus: "FAILED",
		CreatedAt:   now,
	}
	fail := func(reason string, cause error) (*LoginResult, error) {
		entry.FailureReason = &reason
		s.writeLog(ctx, entry)
		return nil, cause
	}

	user, err := s.users.GetByLogin(ctx, in.Login)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return fail("USER_NOT_FOUND", errBadCredentials)
		}
		return nil, err
	}
	uid := uint64(user.ID)
	entry.UserID = &uid
	entry.Username = user.Username

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)) != nil {
		return fail("WRONG_PASSWORD", errBadCredentials)
	}

	role, err := roles.Parse(user.Role)
	if err != nil {
		return fail("UNKNOWN_ROLE", apperror.Wrap(apperror.ErrUnauthorized, "peran akun tidak dikenali, hubungi admin"))
	}

	session := &models.UserSession{
		UserID:         uid,
		SessionID:      sessionID,
		DeviceID:       client.Device,
		IPAddress:      client.IP,
		UserAgent:      client.UserAgent,
		IsActive:       true,
		LastActivityAt: now,
		ExpiresAt:      now.Add(s.tokens.RefreshTTL),
	}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	entry.LoginStatus = "SUCCESS"
	s.writeLog(ctx, entry)

	return s.issue(user, role, sessionID, true)
}

func (s *AuthService) writeLog(ctx context.Context, entry *models.LoginLog) {
	if err := s.sessions.WriteLoginLog(ctx, entry); err != nil {
		logger.Warn("gagal menulis login log", zap.String("username", entry.Username), zap.Error(err))
	}
}

func (s *AuthService) issue(user *models.User, role roles.Role, sessionID string, withRefresh bool) (*LoginResult, error) {
	now := s.now()
	res := &LoginResult{
		SessionID: sessionID,
		User:      user,
		Role:      role,
		ExpiresAt: now.Add(s.tokens.AccessTTL),
	}

	access, err := s.sign(jwt.MapClaims{
		"user_id":    user.ID,
		"session_id": sessionID,
		"typ":        tokenAccess,
		"iat":        now.Unix(),
		"exp":        res.ExpiresAt.Unix(),
		"jti":        uuid.NewString(),
	})
	if err != nil {
		return nil, err
	}
	res.AccessToken = access

	if withRefresh {
		refresh, err := s.sign(jwt.MapClaims{
			"user_id":    user.ID,
			"session_id": sessionID,
			"typ":        tokenRefresh,
			"iat":        now.Unix(),
			"exp":        now.Add(s.tokens.RefreshTTL).Unix(),
			"jti":        uuid.NewString(),
		})
		if err != nil {
			return nil, err
		}
		res.RefreshToken = refresh
	}
	return res, nil
}

func (s *AuthService) sign(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.tokens.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

type tokenClaims struct {
	UserID    uint
	SessionID string
}

func (s *AuthService) parse(tokenString, typ string) (*tokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.tokens.Secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, apperror.Wrap(apperror.ErrUnauthorized, "token tidak valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperror.Wrap(apperror.ErrUnauthorized, "token tidak valid")
	}
	if t, _ := claims["typ"].(string); t != typ {
		return nil, apperror.Wrap(apperror.ErrUnauthorized, "jenis token tidak sesuai")
	}
	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return nil, apperror.Wrap(apperror.ErrUnauthorized, "token tidak memuat user id")
	}
	sessionID, ok := claims["session_id"].(string)
	if !ok || sessionID == "" {
		return nil, apperror.Wrap(apperror.ErrUnauthorized, "token tidak memuat sesi")
	}
	return &tokenClaims{UserID: uint(userID), SessionID: sessionID}, nil
}

// Resolve dijalankan pada setiap request: token, sesi, profil, lalu peran.
// Kegagalan apa pun berakhir sebagai ErrUnauthorized; peran tidak pernah
// diberi nilai bawaan.
func (s *AuthService) Resolve(ctx context.Context, accessToken string) (*Principal, error) {
	if accessToken == "" {
		return nil, apperror.Wrap(apperror.ErrUnauthorized, "token tidak ditemukan")
	}
	claims, err := s.parse(accessToken, tokenAccess)
	if err != nil {
		return nil, err
	}
	return s.principal(ctx, claims)
}

func (s *AuthService) principal(ctx context.Context, claims *tokenClaims) (*Principal, error) {
	if _, err := s.sessions.ActiveSession(ctx, claims.SessionID, s.now()); err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			logger.Error("gagal memeriksa sesi", zap.String("session_id", claims.SessionID), zap.Error(err))
		}
		return nil, apperror.Wrap(apperror.ErrUnauthorized, "sesi sudah berakhir, silakan masuk kembali")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			logger.Error("gagal memuat profil", zap.Uint("user_id", claims.UserID), zap.Error(err))
		}
		return nil, apperror.Wrap(apperror.ErrUnauthorized, "profil pengguna tidak ditemukan")
	}

	role, err := roles.Parse(user.Role)
	if err != nil {
		logger.Warn("peran tidak dikenal", zap.Uint("user_id", user.ID), zap.String("role", user.Role))
		return nil, apperror.Wrap(apperror.ErrUnauthorized, "peran akun tidak dikenali")
	}

	return &Principal{UserID: user.ID, SessionID: claims.SessionID, Role: role, User: user}, nil
}

// Refresh menerbitkan access token baru untuk sesi yang sama. Peran dibaca
// ulang dari database.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	if refreshToken == "" {
		return nil, apperror.Wrap(apperror.ErrUnauthorized, "refresh token tidak ditemukan")
	}
	claims, err := s.parse(refreshToken, tokenRefresh)
	if err != nil {
		return nil, err
	}
	p, err := s.principal(ctx, claims)
	if err != nil {
		return nil, err
	}
	return s.issue(p.User, p.Role, p.SessionID, false)
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apperror.Wrap(apperror.ErrUnauthorized, "sesi tidak valid")
	}
	return s.sessions.EndSession(ctx, sessionID, s.now())
}

type UsernameInput struct {
	Username string `json:"username" form:"username" validate:"required,min=3,max=64"`
}

func (s *AuthService) UpdateUsername(ctx context.Context, p Principal, in UsernameInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	if len(username) < 3 {
		return nil, fieldError("username", "min")
	}
	_, taken, err := s.users.Taken(ctx, "", username, p.UserID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fieldError("username", "unique")
	}
	if err := s.users.UpdateUsername(ctx, p.UserID, username); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, p.UserID)
}
