package authz

import (
	"fmt"
	"strings"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/util"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

const (
	apiV1Prefix     = "/api/v1"
	casbinTableName = "casbin_rule"
	adminSubjectFmt = "admin:%d"
	rolePrefix      = "role:"
	roleAnchor      = "role:__anchor__"
)

const defaultRBACModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = (g(r.sub, p.sub) || r.sub == p.sub) && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

// Policy 权限策略
type Policy struct {
	Subject string `json:"subject"`
	Object  string `json:"object"`
	Action  string `json:"action"`
}

// Service Casbin 授权服务
// 封装策略加载、授权判定与角色管理。
type Service struct {
	enforcer *casbin.SyncedEnforcer
}

// NewService 创建授权服务
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, fmt.Errorf("authz db is nil")
	}

	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", casbinTableName)
	if err != nil {
		return nil, fmt.Errorf("create authz adapter failed: %w", err)
	}

	m, err := model.NewModelFromString(defaultRBACModel)
	if err != nil {
		return nil, fmt.Errorf("load authz model failed: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("init authz enforcer failed: %w", err)
	}
	enforcer.AddFunction("keyMatch2", util.KeyMatch2Func)
	enforcer.EnableAutoSave(true)

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load authz policy failed: %w", err)
	}

	return &Service{enforcer: enforcer}, nil
}

// Enforce 执行授权判断
func (s *Service) Enforce(sub, obj, act string) (bool, error) {
	if s == nil || s.enforcer == nil {
		return false, fmt.Errorf("authz service unavailable")
	}
	return s.enforcer.Enforce(strings.TrimSpace(sub), NormalizeObject(obj), NormalizeAction(act))
}

// EnforceAdmin 按管理员 ID 判定授权
func (s *Service) EnforceAdmin(adminID uint, obj, act string) (bool, error) {
	return s.Enforce(SubjectForAdmin(adminID), obj, act)
}

// AssignRole 给管理员绑定角色
func (s *Service) AssignRole(adminID uint, role string) error {
	normalized, err := NormalizeRole(role)
	if err != nil {
		return err
	}
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}
	added, err := s.enforcer.AddNamedGroupingPolicy("g", SubjectForAdmin(adminID), normalized)
	if err != nil {
		return fmt.Errorf("assign role failed: %w", err)
	}
	if added {
		return s.saveAndReload()
	}
	return nil
}

// RevokeRole 解除管理员角色绑定
func (s *Service) RevokeRole(adminID uint, role string) error {
	normalized, err := NormalizeRole(role)
	if err != nil {
		return err
	}
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}
	removed, err := s.enforcer.RemoveNamedGroupingPolicy("g", SubjectForAdmin(adminID), normalized)
	if err != nil {
		return fmt.Errorf("revoke role failed: %w", err)
	}
	if removed {
		return s.saveAndReload()
	}
	return nil
}

// ListAdminRoles 列出管理员绑定的角色
func (s *Service) ListAdminRoles(adminID uint) ([]string, error) {
	if s == nil || s.enforcer == nil {
		return nil, fmt.Errorf("authz service unavailable")
	}
	roles, err := s.enforcer.GetRolesForUser(SubjectForAdmin(adminID))
	if err != nil {
		return nil, fmt.Errorf("list admin roles failed: %w", err)
	}
	filtered := make([]string, 0, len(roles))
	for _, role := range roles {
		if role == roleAnchor {
			continue
		}
		filtered = append(filtered, role)
	}
	return filtered, nil
}

func (s *Service) saveAndReload() error {
	if err := s.enforcer.SavePolicy(); err != nil {
		return fmt.Errorf("save authz policy failed: %w", err)
	}
	return s.enforcer.LoadPolicy()
}

// SubjectForAdmin 管理员主体标识
func SubjectForAdmin(adminID uint) string {
	return fmt.Sprintf(adminSubjectFmt, adminID)
}

// NormalizeRole 归一化角色名（强制 role: 前缀）
func NormalizeRole(role string) (string, error) {
	trimmed := strings.TrimSpace(strings.ToLower(role))
	trimmed = strings.TrimPrefix(trimmed, rolePrefix)
	if trimmed == "" {
		return "", fmt.Errorf("role is required")
	}
	return rolePrefix + trimmed, nil
}

// NormalizeObject 归一化资源路径（剥离 API 版本前缀）
func NormalizeObject(obj string) string {
	trimmed := strings.TrimSpace(obj)
	if trimmed == "" {
		return trimmed
	}
	if strings.HasPrefix(trimmed, apiV1Prefix) {
		trimmed = strings.TrimPrefix(trimmed, apiV1Prefix)
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return trimmed
}

// NormalizeAction 归一化动作（HTTP 方法大写）
func NormalizeAction(act string) string {
	return strings.ToUpper(strings.TrimSpace(act))
}
