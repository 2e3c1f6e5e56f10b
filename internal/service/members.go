package service

import (
	"context"
	"errors"
	"fmt"

	"finalproject_backend/internal/model"
	"finalproject_backend/internal/repository"
)

type MemberService struct {
	repo MemberRepository
}

func NewMemberService(repo MemberRepository) *MemberService {
	return &MemberService{
		repo: repo,
	}
}

func (s *MemberService) RegisterMember(ctx context.Context, member *model.Member) error {
	err := s.repo.CreateMember(ctx, member)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return ErrMemberAlreadyExists
		}
		return fmt.Errorf("failed to register member: %w", err)
	}

	return nil
}

func (s *MemberService) GetMember(ctx context.Context, memberID string) (*model.Member, error) {
	member, err := s.repo.GetMember(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return member, nil
}
