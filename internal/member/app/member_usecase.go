package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"noteshub/internal/member/domain"
	"noteshub/internal/member/repository"
	"noteshub/pkg/config"
	"noteshub/pkg/database"
	"noteshub/pkg/encrypt"
	"noteshub/pkg/logger"
	token "noteshub/pkg/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MemberUseCase auth operations exposed to the handlers
type MemberUseCase interface {
	Register(ctx context.Context, email, password string) error
	FindMember(ctx context.Context, param *domain.MemberQuery) (*domain.Member, error)
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, token string) error
	CheckSessionTimeout(ctx context.Context, token string) (bool, error)
	ReconnectSession(ctx context.Context, token string) error
}

type memberUseCase struct {
	memberRepo repository.MemberRepository
	sessionTTL time.Duration
	redisRepo  database.RedisRepository[domain.MemberSession]
}

// NewMemberUseCase build a new MemberUseCase
func NewMemberUseCase(memberRepo repository.MemberRepository,
	sessionTTL time.Duration,
	redisRepo database.RedisRepository[domain.MemberSession],
) MemberUseCase {
	return &memberUseCase{
		memberRepo: memberRepo,
		sessionTTL: sessionTTL,
		redisRepo:  redisRepo,
	}
}

// Register create an account for a new email
func (m *memberUseCase) Register(ctx context.Context, email, password string) error {
	if _, err := m.memberRepo.FindByMember(ctx, &domain.MemberQuery{Email: &email}); err == nil {
		return errors.New("email already exists")
	}

	pw, err := encrypt.HashPassword(password)
	if err != nil {
		return err
	}

	user := domain.Member{
		MemberID: uuid.New().String(),
		Email:    email,
		Password: pw,
	}

	logger.Log.Info(fmt.Sprintf("usecase Register : %s", user.Email))

	if err := m.memberRepo.CreateUser(ctx, &user); err != nil {
		return err
	}

	return nil
}

// FindMember look a member up by any of the query fields
func (m *memberUseCase) FindMember(ctx context.Context, param *domain.MemberQuery) (*domain.Member, error) {
	return m.memberRepo.FindByMember(ctx, param)
}

// Login verify credentials, mark online and issue a session token
func (m *memberUseCase) Login(ctx context.Context, email, password string) (string, error) {
	member, err := m.memberRepo.FindByMember(ctx, &domain.MemberQuery{Email: &email})
	if err != nil {
		logger.Log.Error("email can't find!!!")
		return "", errors.New("user not found")
	}

	if err = member.IsPasswordMatch(password); err != nil {
		logger.Log.Error("password can't match!!!")
		return "", err
	}

	member.Status = domain.MemberStatusOnLine

	t, err := token.GenerateJWT(member.MemberID, string(token.RoleMember), config.EnvConfig.NotesHub)
	if err != nil {
		return "", err
	}
	now := time.Now()
	session := domain.MemberSession{
		Token:        t,
		MemberID:     member.MemberID,
		CreatedAt:    now,
		LastActivity: now,
		ExpiredAt:    now.Add(m.sessionTTL),
	}

	m.redisRepo.Set(context.Background(), member.MemberID, session, m.sessionTTL)

	if err := m.memberRepo.UpdateMemberStatus(ctx, member); err != nil {
		return "", err
	}

	return t, nil
}

// Logout drop the session and mark offline
func (m *memberUseCase) Logout(ctx context.Context, t string) error {
	tokenInfo, err := token.ParseJWT(t)
	if err != nil {
		logger.Log.Error("Logout err :", zap.String("err", err.Error()))
		return err
	}

	m.redisRepo.Del(context.Background(), tokenInfo.MemberID)

	if err := m.memberRepo.UpdateMemberStatus(ctx, &domain.Member{
		MemberID: tokenInfo.MemberID,
		Status:   domain.MemberStatusOffLine,
	}); err != nil {
		return err
	}
	return nil
}

// CheckSessionTimeout report whether the session behind the token has expired
func (m *memberUseCase) CheckSessionTimeout(ctx context.Context, t string) (bool, error) {
	tokenInfo, err := token.ParseJWT(t)
	if err != nil {
		logger.Log.Error("CheckSessionTimeout err :", zap.String("err", err.Error()))
		return true, err
	}

	ttl, err := m.redisRepo.GetTTL(context.Background(), tokenInfo.MemberID)
	if err != nil {
		return true, err
	}

	if ttl > 0 {
		return false, nil
	}
	return true, nil
}

// ReconnectSession refresh the session TTL on reconnect
func (m *memberUseCase) ReconnectSession(ctx context.Context, t string) error {
	tokenInfo, err := token.ParseJWT(t)
	if err != nil {
		logger.Log.Error("ReconnectSession err :", zap.String("err", err.Error()))
		return err
	}

	m.redisRepo.ExtendTTL(context.Background(), tokenInfo.MemberID, m.sessionTTL)

	return nil
}
