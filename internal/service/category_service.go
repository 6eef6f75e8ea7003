package service

import (
	"strings"
	"time"

	"github.com/ecommerce-api/internal/constants"
	"github.com/ecommerce-api/internal/models"
	"github.com/ecommerce-api/internal/repository"
)

const (
	msgCategorySelfParent = "Category cannot be its own parent"
	msgCategoryCycle      = "Category parent would create a cycle"
)

// CategoryService 分类业务服务
type CategoryService struct {
	repo  repository.CategoryRepository
	audit *AuditService
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository, audit *AuditService) *CategoryService {
	return &CategoryService{repo: repo, audit: audit}
}

// CategoryInput 分类创建/更新输入
type CategoryInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description" validate:"max=1000"`
	ParentID    *string `json:"parent_id"`
}

// CategorySummary 子分类摘要
type CategorySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategoryDTO 分类详情
type CategoryDTO struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	ParentID      *string           `json:"parent_id"`
	ParentName    string            `json:"parent_name,omitempty"`
	SubCategories []CategorySummary `json:"sub_categories"`
	CreatedAt     time.Time         `json:"created_at"`
}

// List 获取启用的分类列表
func (s *CategoryService) List() ([]CategoryDTO, error) {
	categories, err := s.repo.List(true)
	if err != nil {
		return nil, err
	}
	result := make([]CategoryDTO, 0, len(categories))
	for i := range categories {
		result = append(result, toCategoryDTO(&categories[i]))
	}
	return result, nil
}

// GetByID 获取分类详情
func (s *CategoryService) GetByID(id string) (*CategoryDTO, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil || !category.IsActive {
		return nil, NotFound("Category", id)
	}
	dto := toCategoryDTO(category)
	return &dto, nil
}

// Create 创建分类
func (s *CategoryService) Create(input CategoryInput, actorID string) (*CategoryDTO, error) {
	input = normalizeCategoryInput(input)
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	if err := s.ensureParent(input.ParentID); err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:        input.Name,
		Description: input.Description,
		ParentID:    input.ParentID,
		IsActive:    true,
	}
	if err := s.repo.Create(category); err != nil {
		return nil, err
	}
	s.audit.Record("Category", category.ID, constants.AuditActionInsert, nil, category, actorID)
	return s.GetByID(category.ID)
}

// Update 更新分类
func (s *CategoryService) Update(id string, input CategoryInput, actorID string) error {
	input = normalizeCategoryInput(input)
	if err := validateStruct(input); err != nil {
		return err
	}
	category, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return NotFound("Category", id)
	}
	if input.ParentID != nil && *input.ParentID == id {
		return BadRequest(msgCategorySelfParent)
	}
	if err := s.ensureParent(input.ParentID); err != nil {
		return err
	}
	if err := s.ensureNoCycle(id, input.ParentID); err != nil {
		return err
	}

	before := *category
	category.Name = input.Name
	category.Description = input.Description
	category.ParentID = input.ParentID
	if err := s.repo.Update(category); err != nil {
		return err
	}
	s.audit.Record("Category", id, constants.AuditActionUpdate, before, category, actorID)
	return nil
}

// Delete 软删除分类
func (s *CategoryService) Delete(id string, actorID string) error {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return NotFound("Category", id)
	}
	if err := s.repo.Deactivate(id); err != nil {
		return err
	}
	s.audit.Record("Category", id, constants.AuditActionDelete, category, nil, actorID)
	return nil
}

func (s *CategoryService) ensureParent(parentID *string) error {
	if parentID == nil {
		return nil
	}
	exists, err := s.repo.Exists(*parentID)
	if err != nil {
		return err
	}
	if !exists {
		return NotFound("Category", *parentID)
	}
	return nil
}

// ensureNoCycle 沿父级链向上查找，出现自身即成环
func (s *CategoryService) ensureNoCycle(id string, parentID *string) error {
	visited := map[string]struct{}{}
	current := parentID
	for current != nil {
		if *current == id {
			return BadRequest(msgCategoryCycle)
		}
		if _, seen := visited[*current]; seen {
			return nil
		}
		visited[*current] = struct{}{}
		parent, err := s.repo.GetByID(*current)
		if err != nil {
			return err
		}
		if parent == nil {
			return nil
		}
		current = parent.ParentID
	}
	return nil
}

func normalizeCategoryInput(input CategoryInput) CategoryInput {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	if input.ParentID != nil {
		trimmed := strings.TrimSpace(*input.ParentID)
		if trimmed == "" {
			input.ParentID = nil
		} else {
			input.ParentID = &trimmed
		}
	}
	return input
}

func toCategoryDTO(category *models.Category) CategoryDTO {
	dto := CategoryDTO{
		ID:            category.ID,
		Name:          category.Name,
		Description:   category.Description,
		ParentID:      category.ParentID,
		SubCategories: make([]CategorySummary, 0, len(category.Children)),
		CreatedAt:     category.CreatedAt,
	}
	if category.Parent != nil {
		dto.ParentName = category.Parent.Name
	}
	for _, child := range category.Children {
		dto.SubCategories = append(dto.SubCategories, CategorySummary{ID: child.ID, Name: child.Name})
	}
	return dto
}
