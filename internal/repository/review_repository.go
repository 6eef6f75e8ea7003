package repository

import (
	"errors"

	"github.com/ecommerce-api/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository 评价数据访问接口
type ReviewRepository interface {
	ListByProduct(productID string, limit int) ([]models.Review, error)
	GetByID(id string) (*models.Review, error)
	Create(review *models.Review) error
	Delete(id string) error
	StatsByProduct(productID string) (ReviewStats, error)
}

// GormReviewRepository GORM 实现
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓库
func NewReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// ListByProduct 商品评价列表（最新在前，limit<=0 表示不限制）
func (r *GormReviewRepository) ListByProduct(productID string, limit int) ([]models.Review, error) {
	var reviews []models.Review
	query := r.db.Preload("Customer").Where("product_id = ?", productID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// GetByID 根据 ID 获取评价
func (r *GormReviewRepository) GetByID(id string) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// Create 创建评价
func (r *GormReviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

// Delete 删除评价
func (r *GormReviewRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Review{}).Error
}

// StatsByProduct 统计商品评分均值与数量
func (r *GormReviewRepository) StatsByProduct(productID string) (ReviewStats, error) {
	var row struct {
		Average *float64
		Total   int64
	}
	err := r.db.Model(&models.Review{}).
		Select("AVG(rating) AS average, COUNT(*) AS total").
		Where("product_id = ?", productID).
		Scan(&row).Error
	if err != nil {
		return ReviewStats{}, err
	}
	stats := ReviewStats{Total: row.Total}
	if row.Average != nil {
		stats.Average = *row.Average
	}
	return stats, nil
}
