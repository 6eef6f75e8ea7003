package authz

import (
	"fmt"

	"github.com/ecommerce-api/internal/constants"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Policies []Policy
}

// BuiltinRoleSeeds 系统预置角色矩阵
// Customer 不需要任何管理策略，仅登记角色
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.RoleAdmin,
			Policies: []Policy{
				{Object: "/products", Action: "POST"},
				{Object: "/products/:id", Action: "PUT"},
				{Object: "/products/:id", Action: "DELETE"},
				{Object: "/products/:id/inventory", Action: "PUT"},
				{Object: "/inventory/low-stock", Action: "GET"},
				{Object: "/categories", Action: "POST"},
				{Object: "/categories/:id", Action: "PUT"},
				{Object: "/categories/:id", Action: "DELETE"},
				{Object: "/adminorders", Action: "GET"},
				{Object: "/adminorders/:id/status", Action: "PUT"},
				{Object: "/auditlogs", Action: "GET"},
				{Object: "/authz/policies", Action: "GET"},
			},
		},
		{
			Role: constants.RoleCustomer,
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		if _, err := s.EnsureRole(seed.Role); err != nil {
			return err
		}
		for _, policy := range seed.Policies {
			if err := s.GrantRolePolicy(seed.Role, policy.Object, policy.Action); err != nil {
				return fmt.Errorf("add builtin policy %s %s: %w", policy.Action, policy.Object, err)
			}
		}
	}
	return nil
}
