package service

import (
	"context"
	"errors"

	"finalproject_backend/internal/model"
)

var (
	ErrReviewNotFound = errors.New("review not found")

	ErrUnknownQuestType                  = errors.New("unknown quest type")
	ErrQuestNotCompletedOrAlreadyClaimed = errors.New("quest not completed or reward already claimed")
	ErrConflictingState                  = errors.New("conflicting quest progress state")
	ErrInvalidCatalog                    = errors.New("invalid quest catalog")

	ErrMemberNotFound      = errors.New("member not found")
	ErrMemberAlreadyExists = errors.New("member already exists")
)

type Service struct {
	*MemberService
	*QuestService
	*ReviewService
}

func NewService(memberService *MemberService, questService *QuestService, reviewService *ReviewService) *Service {
	return &Service{
		MemberService: memberService,
		QuestService:  questService,
		ReviewService: reviewService,
	}
}

type MemberServiceI interface {
	RegisterMember(ctx context.Context, member *model.Member) error
	GetMember(ctx context.Context, memberID string) (*model.Member, error)
}

type MemberRepository interface {
	CreateMember(ctx context.Context, member *model.Member) error
	GetMember(ctx context.Context, memberID string) (*model.Member, error)
}

type QuestServiceI interface {
	GetQuestList(ctx context.Context, userID string, day model.DayKey) ([]model.QuestView, error)
	IncreaseProgress(ctx context.Context, userID, questType string, day model.DayKey) error
	ClaimReward(ctx context.Context, userID, questType string, day model.DayKey) (int, error)
}

type QuestRepository interface {
	GetDailyQuestProgress(ctx context.Context, userID string, day model.DayKey) ([]model.QuestProgress, error)
	IncreaseDailyQuestProgress(ctx context.Context, userID, questType string, day model.DayKey) error
	ClaimDailyQuestReward(ctx context.Context, claim model.QuestClaim) error
}

// RewardNotifier is told about rewards after they are committed.
type RewardNotifier interface {
	NotifyReward(ctx context.Context, userID string, quest model.QuestDefinition) error
}

type ReviewServiceI interface {
	CreateReview(ctx context.Context, review *model.Review) error
	ListReviewsByContents(ctx context.Context, contentsID int64) ([]*model.Review, error)
	GetMyReview(ctx context.Context, loginID string, contentsID int64) (*model.Review, error)
	GetReview(ctx context.Context, reviewNo int64) (*model.Review, error)
	UpdateReview(ctx context.Context, reviewNo int64, patch model.ReviewPatch) error
	DeleteReview(ctx context.Context, reviewNo int64) error
}

type ReviewRepository interface {
	CreateReview(ctx context.Context, review *model.Review) error
	GetReviewsByContents(ctx context.Context, contentsID int64) ([]*model.Review, error)
	GetReviewByUserAndContents(ctx context.Context, loginID string, contentsID int64) (*model.Review, error)
	GetReviewByNo(ctx context.Context, reviewNo int64) (*model.Review, error)
	UpdateReview(ctx context.Context, reviewNo int64, patch model.ReviewPatch) error
	DeleteReview(ctx context.Context, reviewNo int64) error
}
