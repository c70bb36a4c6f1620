package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	autherrors "go-personnel/internal/auth/errors"
	companyerrors "go-personnel/internal/company/errors"
	"go-personnel/internal/employee"
	employeeerrors "go-personnel/internal/employee/errors"
	"go-personnel/internal/rbac"
	"go-personnel/internal/shared/clock"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const refreshTokenType = "refresh"

type TokenConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (TokenPair, AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
	Register(ctx context.Context, companyID string, req RegisterRequest) (AuthResponse, error)
}

type service struct {
	repo         Repository
	rbac         rbac.Service
	employeeRepo employee.Repository
	tokens       TokenConfig
	clock        clock.Clock
	logger       *zap.Logger
}

func NewService(
	repo Repository,
	rbac rbac.Service,
	employeeRepo employee.Repository,
	tokens TokenConfig,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	if tokens.AccessTTL <= 0 {
		tokens.AccessTTL = 15 * time.Minute
	}
	if tokens.RefreshTTL <= 0 {
		tokens.RefreshTTL = 7 * 24 * time.Hour
	}
	return &service{
		repo:         repo,
		rbac:         rbac,
		employeeRepo: employeeRepo,
		tokens:       tokens,
		clock:        clock.Or(clk),
		logger:       l,
	}
}

func (s *service) Login(ctx context.Context, email, password string) (TokenPair, AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
		}
		return TokenPair{}, AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return TokenPair{}, AuthResponse{}, autherrors.ErrUserInactive
	}

	if err := s.rbac.LoadCompanyPolicy(ctx, user.CompanyID.String()); err != nil {
		return TokenPair{}, AuthResponse{}, err
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return TokenPair{}, AuthResponse{}, err
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID.String()), zap.String("company_id", user.CompanyID.String()))
	return pair, toResponse(user), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error) {
	claims, err := s.parse(refreshToken)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}
	if typ, _ := claims["typ"].(string); typ != refreshTokenType {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	userIDStr, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidToken
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return TokenPair{}, AuthResponse{}, mapRepositoryError(err)
	}
	if !user.IsActive {
		return TokenPair{}, AuthResponse{}, autherrors.ErrUserInactive
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return TokenPair{}, AuthResponse{}, err
	}
	return pair, toResponse(user), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := toResponse(u)
	return &resp, nil
}

// Register creates a login for an existing employee of companyID. Roles are granted separately;
// only company onboarding hands out ADMIN.
func (s *service) Register(ctx context.Context, companyID string, req RegisterRequest) (AuthResponse, error) {
	company, err := uuid.Parse(companyID)
	if err != nil {
		return AuthResponse{}, companyerrors.ErrInvalidCompanyID
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AuthResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	if _, err := s.employeeRepo.FindByIDAndCompany(ctx, company.String(), employeeID.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return AuthResponse{}, err
	}

	linked, err := s.repo.ExistsByEmployee(ctx, employeeID)
	if err != nil {
		return AuthResponse{}, err
	}
	if linked {
		return AuthResponse{}, autherrors.ErrEmployeeAlreadyLinked
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	user := &User{
		ID:         uuid.New(),
		EmployeeID: &employeeID,
		CompanyID:  company,
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Name:       strings.TrimSpace(req.Name),
		Password:   string(hashed),
		Role:       "EMPLOYEE",
		IsActive:   true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return AuthResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()), zap.String("employee_id", employeeID.String()))
	return toResponse(user), nil
}

func (s *service) issueTokens(user *User) (TokenPair, error) {
	access, err := s.generateToken(user, "access", s.tokens.AccessTTL)
	if err != nil {
		return TokenPair{}, autherrors.ErrTokenGenerationFailed
	}
	refresh, err := s.generateToken(user, refreshTokenType, s.tokens.RefreshTTL)
	if err != nil {
		return TokenPair{}, autherrors.ErrTokenGenerationFailed
	}
	return TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresIn:  int(s.tokens.AccessTTL.Seconds()),
		RefreshExpiresIn: int(s.tokens.RefreshTTL.Seconds()),
	}, nil
}

func (s *service) generateToken(user *User, typ string, expiry time.Duration) (string, error) {
	now := s.clock.Now()
	claims := jwt.MapClaims{
		"user_id":     user.ID.String(),
		"employee_id": user.employeeID(),
		"company_id":  user.CompanyID.String(),
		"role":        user.Role,
		"typ":         typ,
		"iat":         now.Unix(),
		"exp":         now.Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.tokens.Secret))
}

func (s *service) parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(s.tokens.Secret), nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil || !token.Valid {
		return nil, autherrors.ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, autherrors.ErrInvalidToken
	}
	return claims, nil
}

func toResponse(u *User) AuthResponse {
	return AuthResponse{
		ID:         u.ID.String(),
		CompanyID:  u.CompanyID.String(),
		EmployeeID: u.employeeID(),
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
	}
}
