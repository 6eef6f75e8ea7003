package service

import (
	"strings"
	"time"

	"github.com/ecommerce-api/internal/constants"
	"github.com/ecommerce-api/internal/models"
	"github.com/ecommerce-api/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const msgInvalidCoupon = "Invalid coupon code"

// CouponService 优惠券服务
type CouponService struct {
	couponRepo repository.CouponRepository
	usageRepo  repository.CouponUsageRepository
}

// NewCouponService 创建优惠券服务
func NewCouponService(couponRepo repository.CouponRepository, usageRepo repository.CouponUsageRepository) *CouponService {
	return &CouponService{couponRepo: couponRepo, usageRepo: usageRepo}
}

// Quote 计算优惠金额（不超过小计），tx 为空时使用默认连接
func (s *CouponService) Quote(tx *gorm.DB, code string, subTotal models.Money, now time.Time) (*models.Coupon, models.Money, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, models.ZeroMoney(), nil
	}
	coupon, err := s.couponRepo.WithTx(tx).GetByCode(code)
	if err != nil {
		return nil, models.ZeroMoney(), err
	}
	if coupon == nil || !coupon.Usable(now, subTotal) {
		return nil, models.ZeroMoney(), BadRequest(msgInvalidCoupon)
	}
	return coupon, CalculateDiscount(coupon, subTotal), nil
}

// Redeem 在事务内核销优惠券
func (s *CouponService) Redeem(tx *gorm.DB, coupon *models.Coupon, customerID, orderID string, discount models.Money) error {
	if coupon == nil {
		return nil
	}
	affected, err := s.couponRepo.WithTx(tx).IncrementUsage(coupon.ID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return BadRequest(msgInvalidCoupon)
	}
	return s.usageRepo.WithTx(tx).Create(&models.CouponUsage{
		CouponID:       coupon.ID,
		CustomerID:     customerID,
		OrderID:        orderID,
		DiscountAmount: discount,
	})
}

// CalculateDiscount 按优惠券类型计算优惠金额
func CalculateDiscount(coupon *models.Coupon, subTotal models.Money) models.Money {
	if coupon == nil || !subTotal.Decimal.IsPositive() {
		return models.ZeroMoney()
	}
	var discount decimal.Decimal
	switch coupon.DiscountType {
	case constants.DiscountTypePercentage:
		discount = subTotal.Decimal.Mul(coupon.Value.Decimal).Div(decimal.NewFromInt(100))
	case constants.DiscountTypeFixed:
		discount = coupon.Value.Decimal
	default:
		return models.ZeroMoney()
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	if discount.GreaterThan(subTotal.Decimal) {
		discount = subTotal.Decimal
	}
	return models.NewMoneyFromDecimal(discount)
}
