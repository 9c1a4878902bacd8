package service

import (
	"context"

	"github.com/d60-Lab/gin-blog/internal/repository"
)

// RelationshipService 关注关系服务
type RelationshipService interface {
	// Follow 建立关注，重复关注为空操作
	Follow(ctx context.Context, userID, authorID string) error
	// Unfollow 取消关注，未关注时为空操作
	Unfollow(ctx context.Context, userID, authorID string) error
	IsFollowing(ctx context.Context, userID, authorID string) (bool, error)
	FollowedAuthors(ctx context.Context, userID string) ([]string, error)
}

type relationshipService struct {
	followRepo repository.FollowRepository
}

func NewRelationshipService(followRepo repository.FollowRepository) RelationshipService {
	return &relationshipService{followRepo: followRepo}
}

func (s *relationshipService) Follow(ctx context.Context, userID, authorID string) error {
	if userID == authorID {
		return ErrFollowSelf
	}
	return s.followRepo.Create(ctx, userID, authorID)
}

func (s *relationshipService) Unfollow(ctx context.Context, userID, authorID string) error {
	return s.followRepo.Delete(ctx, userID, authorID)
}

func (s *relationshipService) IsFollowing(ctx context.Context, userID, authorID string) (bool, error) {
	if userID == "" || userID == authorID {
		return false, nil
	}
	return s.followRepo.Exists(ctx, userID, authorID)
}

func (s *relationshipService) FollowedAuthors(ctx context.Context, userID string) ([]string, error) {
	ids, err := s.followRepo.ListAuthorIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
