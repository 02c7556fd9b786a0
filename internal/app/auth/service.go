package auth

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"softglow/internal/domain"
	"softglow/internal/events"
	"softglow/internal/repository/admin_repo"
	"softglow/internal/repository/customer_repo"
	"softglow/internal/repository/outbox_repo"
	"softglow/internal/util"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidOTP         = errors.New("invalid or expired verification code")
)

const otpTTL = 10 * time.Minute

type AuthService interface {
	RegisterCustomer(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	LoginCustomer(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	LoginAdmin(ctx context.Context, req *LoginRequest) (*AuthResponse, error)

	GetProfile(ctx context.Context, customerID string) (*ProfileResponse, error)
	UpdateProfile(ctx context.Context, customerID string, req *UpdateProfileRequest) (*ProfileResponse, error)
	ProfileCompleteness(ctx context.Context, customerID string) (*ProfileCompletenessResponse, error)

	RequestEmailOTP(ctx context.Context, customerID string) error
	VerifyEmailOTP(ctx context.Context, customerID, code string) error
}

type authService struct {
	customerRepo customer_repo.CustomerRepository
	adminRepo    admin_repo.AdminRepository
	outboxRepo   outbox_repo.OutboxRepository
	tokens       *TokenManager
	emailsTopic  string
	logger       *zap.Logger
}

func NewAuthService(
	customerRepo customer_repo.CustomerRepository,
	adminRepo admin_repo.AdminRepository,
	outboxRepo outbox_repo.OutboxRepository,
	tokens *TokenManager,
	emailsTopic string,
	logger *zap.Logger,
) AuthService {
	return &authService{
		customerRepo: customerRepo,
		adminRepo:    adminRepo,
		outboxRepo:   outboxRepo,
		tokens:       tokens,
		emailsTopic:  emailsTopic,
		logger:       logger,
	}
}

func (s *authService) RegisterCustomer(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	customer, err := domain.NewCustomer(util.GenerateUUID(), req.Name, strings.ToLower(req.Email), string(hash))
	if err != nil {
		return nil, err
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("Failed to create customer", zap.String("email", req.Email), zap.Error(err))
		return nil, errors.New("failed to register")
	}

	// Verification email is best-effort; registration stands either way.
	if err := s.RequestEmailOTP(ctx, customer.ID); err != nil {
		s.logger.Error("Failed to queue verification email",
			zap.String("customer_id", customer.ID),
			zap.Error(err))
	}

	token, err := s.tokens.Issue(domain.Principal{Kind: domain.PrincipalCustomer, ID: customer.ID})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Customer registered", zap.String("customer_id", customer.ID))
	return &AuthResponse{
		Token: token,
		User: UserResponse{
			ID:    customer.ID,
			Name:  customer.Name,
			Email: customer.Email,
			Role:  string(domain.PrincipalCustomer),
		},
	}, nil
}

func (s *authService) LoginCustomer(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	customer, err := s.customerRepo.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(domain.Principal{Kind: domain.PrincipalCustomer, ID: customer.ID})
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Token: token,
		User: UserResponse{
			ID:            customer.ID,
			Name:          customer.Name,
			Email:         customer.Email,
			Role:          string(domain.PrincipalCustomer),
			EmailVerified: customer.EmailVerified,
		},
	}, nil
}

func (s *authService) LoginAdmin(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(domain.Principal{Kind: domain.PrincipalAdmin, ID: admin.ID})
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Token: token,
		User: UserResponse{
			ID:    admin.ID,
			Name:  admin.Name,
			Email: admin.Email,
			Role:  string(domain.PrincipalAdmin),
		},
	}, nil
}

func (s *authService) GetProfile(ctx context.Context, customerID string) (*ProfileResponse, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return mapCustomerToProfile(customer), nil
}

func (s *authService) UpdateProfile(ctx context.Context, customerID string, req *UpdateProfileRequest) (*ProfileResponse, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	customer.Name = req.Name
	customer.Phone = req.Phone
	customer.AddressLine1 = req.AddressLine1
	customer.AddressLine2 = req.AddressLine2
	customer.City = req.City
	customer.State = req.State
	customer.PostalCode = req.PostalCode
	customer.Country = req.Country
	customer.UpdatedAt = time.Now()

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		s.logger.Error("Failed to update profile", zap.String("customer_id", customerID), zap.Error(err))
		return nil, errors.New("failed to update profile")
	}
	return mapCustomerToProfile(customer), nil
}

func (s *authService) ProfileCompleteness(ctx context.Context, customerID string) (*ProfileCompletenessResponse, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	missing := customer.MissingProfileFields()
	return &ProfileCompletenessResponse{
		Complete:      len(missing) == 0,
		MissingFields: missing,
	}, nil
}

func (s *authService) RequestEmailOTP(ctx context.Context, customerID string) error {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return err
	}

	code, err := generateOTPCode()
	if err != nil {
		return err
	}
	codeHash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash OTP: %w", err)
	}

	if err := s.customerRepo.DeleteOTPs(ctx, customerID); err != nil {
		return err
	}
	otp, err := domain.NewEmailOTP(util.GenerateUUID(), customerID, string(codeHash), otpTTL)
	if err != nil {
		return err
	}
	if err := s.customerRepo.CreateOTP(ctx, otp); err != nil {
		return err
	}

	payload, err := json.Marshal(events.EmailEvent{
		To:       customer.Email,
		Subject:  "Your SoftGlow verification code",
		Template: "email_otp",
		Data:     map[string]string{"code": code},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal OTP email payload: %w", err)
	}
	return s.outboxRepo.CreateMessage(ctx, &outbox_repo.OutboxMessage{
		ID:        util.GenerateUUID(),
		Topic:     s.emailsTopic,
		Key:       customerID,
		Payload:   payload,
		Status:    outbox_repo.StatusPending,
		CreatedAt: time.Now(),
	})
}

func (s *authService) VerifyEmailOTP(ctx context.Context, customerID, code string) error {
	otp, err := s.customerRepo.GetLatestOTP(ctx, customerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInvalidOTP
		}
		return err
	}
	if otp.Expired(time.Now()) {
		return ErrInvalidOTP
	}
	if bcrypt.CompareHashAndPassword([]byte(otp.CodeHash), []byte(code)) != nil {
		return ErrInvalidOTP
	}

	if err := s.customerRepo.MarkEmailVerified(ctx, customerID); err != nil {
		return err
	}
	if err := s.customerRepo.DeleteOTPs(ctx, customerID); err != nil {
		s.logger.Error("Failed to delete used OTPs", zap.String("customer_id", customerID), zap.Error(err))
	}

	s.logger.Info("Customer email verified", zap.String("customer_id", customerID))
	return nil
}

func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func mapCustomerToProfile(c *domain.Customer) *ProfileResponse {
	return &ProfileResponse{
		ID:            c.ID,
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		AddressLine1:  c.AddressLine1,
		AddressLine2:  c.AddressLine2,
		City:          c.City,
		State:         c.State,
		PostalCode:    c.PostalCode,
		Country:       c.Country,
		EmailVerified: c.EmailVerified,
	}
}
