package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/careersynapse/backend/internal/clients/mail"
	"github.com/careersynapse/backend/internal/logger"
	"github.com/careersynapse/backend/internal/normalization"
	"github.com/careersynapse/backend/internal/repos"
	"github.com/careersynapse/backend/internal/types"
	"github.com/careersynapse/backend/internal/utils"
)

const otpTTL = 2 * time.Minute

type AuthService interface {
	Signup(ctx context.Context, username, email, password string) error
	Login(ctx context.Context, usernameOrEmail, password string) (string, *types.User, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	VerifyOTP(ctx context.Context, email, otp, token string) error
	ResetPassword(ctx context.Context, email, otp, token, newPassword string) error
	GenerateSessionToken(userID uuid.UUID) (string, error)
	ParseSessionToken(tokenString string) (uuid.UUID, error)
}

type SessionClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

type otpClaims struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
	jwt.RegisteredClaims
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	mailClient   mail.Client
	jwtSecretKey string
	sessionTTL   time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	mailClient mail.Client,
	jwtSecretKey string,
	sessionTTL time.Duration,
) AuthService {
	return &authService{
		db:           db,
		log:          log.With("service", "AuthService"),
		userRepo:     userRepo,
		mailClient:   mailClient,
		jwtSecretKey: jwtSecretKey,
		sessionTTL:   sessionTTL,
	}
}

func (as *authService) Signup(ctx context.Context, username, email, password string) error {
	username = normalization.TrimInputString(username)
	email = normalization.ParseInputString(email)

	if err := utils.ValidateSignupInput(username, email, password); err != nil {
		return validationError(err.Error())
	}

	emailExists, err := as.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return fmt.Errorf("Failed to check user email: %w", err)
	}
	if emailExists {
		return validationError("Email already registered")
	}
	usernameExists, err := as.userRepo.UsernameExists(ctx, nil, username)
	if err != nil {
		return fmt.Errorf("Failed to check username: %w", err)
	}
	if usernameExists {
		return validationError("Username already taken")
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	user := &types.User{
		ID:       uuid.New(),
		Username: username,
		Email:    email,
		Password: hashed,
	}
	if _, err := as.userRepo.Create(ctx, nil, []*types.User{user}); err != nil {
		return fmt.Errorf("Failed to create user: %w", err)
	}
	as.log.Info("User created", "user_id", user.ID)
	return nil
}

func (as *authService) Login(ctx context.Context, usernameOrEmail, password string) (string, *types.User, error) {
	usernameOrEmail = normalization.TrimInputString(usernameOrEmail)
	if err := utils.ValidateLoginInput(usernameOrEmail, password); err != nil {
		return "", nil, validationError(err.Error())
	}

	user, err := as.userRepo.GetByUsernameOrEmail(ctx, nil, usernameOrEmail)
	if err != nil {
		return "", nil, fmt.Errorf("Failed to look up user: %w", err)
	}
	if user == nil || !utils.CheckPassword(user.Password, password) {
		return "", nil, validationError("Invalid credentials")
	}

	token, err := as.GenerateSessionToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ForgotPassword emails a 6-digit OTP and returns a short-lived signed token
// carrying {email, otp}. The token plus the OTP the user reads from their
// inbox together authorize the reset.
func (as *authService) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = normalization.ParseInputString(email)

	users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return "", fmt.Errorf("Failed to look up email: %w", err)
	}
	if len(users) == 0 {
		return "", notFoundError("Email not found")
	}

	otp := fmt.Sprintf("%06d", rand.Intn(900000)+100000)

	claims := otpClaims{
		Email: email,
		OTP:   otp,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(otpTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	otpToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", fmt.Errorf("Failed to sign OTP token: %w", err)
	}

	html := fmt.Sprintf(`
		<h2>Password Reset Request</h2>
		<p>Your OTP for password reset is: <strong>%s</strong></p>
		<p>This OTP will expire in 2 minutes.</p>
		<p>If you didn't request this, please ignore this email.</p>
	`, otp)
	if err := as.mailClient.Send(ctx, email, "Password Reset OTP", html); err != nil {
		as.log.Error("Failed to send OTP email", "error", err)
		return "", fmt.Errorf("Failed to send OTP")
	}

	return otpToken, nil
}

func (as *authService) VerifyOTP(ctx context.Context, email, otp, token string) error {
	return as.checkOTPToken(email, otp, token)
}

func (as *authService) ResetPassword(ctx context.Context, email, otp, token, newPassword string) error {
	if err := as.checkOTPToken(email, otp, token); err != nil {
		return err
	}
	if len(newPassword) < 6 {
		return validationError("Password must be at least 6 characters")
	}

	email = normalization.ParseInputString(email)
	users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return fmt.Errorf("Failed to look up email: %w", err)
	}
	if len(users) == 0 {
		return notFoundError("User not found")
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user := users[0]
	user.Password = hashed
	if err := as.userRepo.Save(ctx, nil, user); err != nil {
		return fmt.Errorf("Failed to save new password: %w", err)
	}
	return nil
}

func (as *authService) checkOTPToken(email, otp, token string) error {
	parsed, err := jwt.ParseWithClaims(token, &otpClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !parsed.Valid {
		return validationError("OTP expired")
	}
	claims, ok := parsed.Claims.(*otpClaims)
	if !ok {
		return validationError("OTP expired")
	}
	if claims.Email != normalization.ParseInputString(email) || claims.OTP != otp {
		return validationError("Invalid OTP")
	}
	return nil
}

func (as *authService) GenerateSessionToken(userID uuid.UUID) (string, error) {
	claims := SessionClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", fmt.Errorf("Failed to sign session token: %w", err)
	}
	return token, nil
}

func (as *authService) ParseSessionToken(tokenString string) (uuid.UUID, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("Failed to parse token: %w", err)
	}
	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return uuid.Nil, fmt.Errorf("Invalid or expired token")
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("Invalid user id in token: %w", err)
	}
	return userID, nil
}
