package service

import (
	"context"
	"fmt"

	"health-coach/internal/model"
	"health-coach/internal/store"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct{ store store.Store }

func NewAuthService(st store.Store) *AuthService { return &AuthService{store: st} }

func (s *AuthService) Login(ctx context.Context, username, password string) (*model.Member, error) {
	m, err := s.store.MemberByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(m.Password), []byte(password)) != nil {
		return nil, fmt.Errorf("wrong password")
	}
	return m, nil
}
