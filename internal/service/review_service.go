package service

import (
	"strings"
	"time"

	"github.com/ecommerce-api/internal/constants"
	"github.com/ecommerce-api/internal/models"
	"github.com/ecommerce-api/internal/repository"

	"github.com/shopspring/decimal"
)

const recentReviewLimit = 5

// ReviewService 商品评价服务
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	audit       *AuditService
}

// NewReviewService 创建评价服务
func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository, audit *AuditService) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, productRepo: productRepo, audit: audit}
}

// CreateReviewInput 发表评价
type CreateReviewInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Rating    int    `json:"rating" validate:"gte=1,lte=5"`
	Comment   string `json:"comment" validate:"max=1000"`
}

// ReviewDTO 评价
type ReviewDTO struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	CustomerID   string    `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

// ReviewSummary 商品评价汇总
type ReviewSummary struct {
	ProductID     string      `json:"product_id"`
	AverageRating float64     `json:"average_rating"`
	TotalReviews  int64       `json:"total_reviews"`
	RecentReviews []ReviewDTO `json:"recent_reviews"`
}

// ListByProduct 商品评价列表（最新在前）
func (s *ReviewService) ListByProduct(productID string) ([]ReviewDTO, error) {
	reviews, err := s.reviewRepo.ListByProduct(productID, 0)
	if err != nil {
		return nil, err
	}
	return toReviewDTOs(reviews), nil
}

// Create 发表评价
func (s *ReviewService) Create(customerID string, input CreateReviewInput) (*ReviewDTO, error) {
	input.ProductID = strings.TrimSpace(input.ProductID)
	input.Comment = strings.TrimSpace(input.Comment)
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, NotFound("Product", input.ProductID)
	}

	review := &models.Review{
		ProductID:  product.ID,
		CustomerID: customerID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}
	s.audit.Record("Review", review.ID, constants.AuditActionInsert, nil, review, customerID)

	dto := toReviewDTO(review)
	return &dto, nil
}

// Delete 删除自己的评价
func (s *ReviewService) Delete(customerID, reviewID string) error {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return err
	}
	if review == nil {
		return NotFound("Review", reviewID)
	}
	if review.CustomerID != customerID {
		return Forbidden("You can only delete your own reviews")
	}
	if err := s.reviewRepo.Delete(review.ID); err != nil {
		return err
	}
	s.audit.Record("Review", review.ID, constants.AuditActionDelete, review, nil, customerID)
	return nil
}

// Summary 评价汇总（平均分保留两位小数）
func (s *ReviewService) Summary(productID string) (*ReviewSummary, error) {
	stats, err := s.reviewRepo.StatsByProduct(productID)
	if err != nil {
		return nil, err
	}
	recent, err := s.reviewRepo.ListByProduct(productID, recentReviewLimit)
	if err != nil {
		return nil, err
	}
	return &ReviewSummary{
		ProductID:     productID,
		AverageRating: decimal.NewFromFloat(stats.Average).Round(2).InexactFloat64(),
		TotalReviews:  stats.Total,
		RecentReviews: toReviewDTOs(recent),
	}, nil
}

func toReviewDTO(review *models.Review) ReviewDTO {
	dto := ReviewDTO{
		ID:         review.ID,
		ProductID:  review.ProductID,
		CustomerID: review.CustomerID,
		Rating:     review.Rating,
		Comment:    review.Comment,
		CreatedAt:  review.CreatedAt,
	}
	if review.Customer != nil {
		dto.CustomerName = strings.TrimSpace(review.Customer.FirstName + " " + review.Customer.LastName)
	}
	return dto
}

func toReviewDTOs(reviews []models.Review) []ReviewDTO {
	result := make([]ReviewDTO, 0, len(reviews))
	for i := range reviews {
		result = append(result, toReviewDTO(&reviews[i]))
	}
	return result
}
