package rbac

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go-personnel/internal/domain"
	rbacerrors "go-personnel/internal/rbac/errors"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AdminRoleName is granted every permission and given to the employee who onboarded the company.
const AdminRoleName = "ADMIN"

const policyTTL = 30 * time.Second

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadCompanyPolicy(ctx context.Context, companyID string) error
	Enforce(ctx context.Context, req domain.EnforceRequest) (bool, error)

	ListRoles(ctx context.Context, companyID string) ([]domain.RoleResponse, error)
	GetRole(ctx context.Context, companyID, id string) (domain.RoleResponse, error)
	CreateRole(ctx context.Context, companyID string, req domain.CreateRoleRequest) (domain.RoleResponse, error)
	UpdateRole(ctx context.Context, companyID, id string, req domain.UpdateRoleRequest) (domain.RoleResponse, error)
	DeleteRole(ctx context.Context, companyID, id string) error
	ListPermissions(ctx context.Context) ([]domain.PermissionResponse, error)
	AssignRole(ctx context.Context, companyID, employeeID, roleID string) error
	EnsureAdminRole(ctx context.Context, tx *sql.Tx, companyID, employeeID string) error
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.Mutex
	loadedAt map[string]time.Time
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		loadedAt: make(map[string]time.Time),
		now:      time.Now,
		logger:   l,
	}
}

func (s *service) LoadCompanyPolicy(ctx context.Context, companyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadCompanyPolicyUnlocked(ctx, companyID)
}

// loadCompanyPolicyUnlocked replaces the policies of a single domain, leaving other companies intact.
func (s *service) loadCompanyPolicyUnlocked(ctx context.Context, companyID string) error {
	if _, err := s.enforcer.RemoveFilteredGroupingPolicy(2, companyID); err != nil {
		return err
	}
	if _, err := s.enforcer.RemoveFilteredPolicy(1, companyID); err != nil {
		return err
	}
	delete(s.loadedAt, companyID)

	employeeRoles, err := s.repo.GetEmployeeRoles(ctx, companyID)
	if err != nil {
		return err
	}
	for _, er := range employeeRoles {
		if _, err := s.enforcer.AddGroupingPolicy(er.EmployeeID, er.RoleID, companyID); err != nil {
			return err
		}
	}

	rolePerms, err := s.repo.GetRolePermissions(ctx, companyID)
	if err != nil {
		return err
	}
	for _, rp := range rolePerms {
		if _, err := s.enforcer.AddPolicy(rp.RoleID, companyID, rp.Resource, rp.Action); err != nil {
			return err
		}
	}

	s.loadedAt[companyID] = s.now()
	s.logger.Debug("rbac policy loaded",
		zap.String("company_id", companyID),
		zap.Int("employee_roles", len(employeeRoles)),
		zap.Int("role_permissions", len(rolePerms)),
	)
	return nil
}

func (s *service) Enforce(ctx context.Context, req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if at, ok := s.loadedAt[req.CompanyID]; !ok || s.now().Sub(at) > policyTTL {
		if err := s.loadCompanyPolicyUnlocked(ctx, req.CompanyID); err != nil {
			return false, err
		}
	}

	allowed, err := s.enforcer.Enforce(req.EmployeeID, req.CompanyID, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("employee_id", req.EmployeeID),
			zap.String("company_id", req.CompanyID),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("employee_id", req.EmployeeID),
		zap.String("company_id", req.CompanyID),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
		zap.Strings("roles", s.enforcer.GetRolesForUserInDomain(req.EmployeeID, req.CompanyID)),
	)
	return allowed, nil
}

func (s *service) ListRoles(ctx context.Context, companyID string) ([]domain.RoleResponse, error) {
	roles, err := s.repo.ListRoles(ctx, companyID)
	if err != nil {
		return nil, err
	}

	res := make([]domain.RoleResponse, 0, len(roles))
	for _, role := range roles {
		resp, err := s.toRoleResponse(ctx, role)
		if err != nil {
			return nil, err
		}
		res = append(res, resp)
	}
	return res, nil
}

func (s *service) GetRole(ctx context.Context, companyID, id string) (domain.RoleResponse, error) {
	role, err := s.repo.GetRoleByID(ctx, companyID, id)
	if err != nil {
		return domain.RoleResponse{}, mapRoleError(err)
	}
	return s.toRoleResponse(ctx, *role)
}

func (s *service) CreateRole(ctx context.Context, companyID string, req domain.CreateRoleRequest) (domain.RoleResponse, error) {
	name := strings.ToUpper(strings.TrimSpace(req.Name))
	if _, err := s.repo.GetRoleByName(ctx, companyID, name); err == nil {
		return domain.RoleResponse{}, rbacerrors.ErrRoleNameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.RoleResponse{}, err
	}

	permIDs, err := s.resolvePermissionIDs(ctx, req.Permissions)
	if err != nil {
		return domain.RoleResponse{}, err
	}

	role := &RoleRow{CompanyID: companyID, Name: name, Description: req.Description}
	if err := s.repo.CreateRole(ctx, role); err != nil {
		return domain.RoleResponse{}, err
	}
	if err := s.repo.UpdateRolePermissions(ctx, role.ID, permIDs); err != nil {
		return domain.RoleResponse{}, err
	}

	s.invalidate(companyID)
	s.logger.Info("role created", zap.String("company_id", companyID), zap.String("role", name))
	return s.toRoleResponse(ctx, *role)
}

func (s *service) UpdateRole(ctx context.Context, companyID, id string, req domain.UpdateRoleRequest) (domain.RoleResponse, error) {
	role, err := s.repo.GetRoleByID(ctx, companyID, id)
	if err != nil {
		return domain.RoleResponse{}, mapRoleError(err)
	}

	if name := strings.ToUpper(strings.TrimSpace(req.Name)); name != "" && name != role.Name {
		if _, err := s.repo.GetRoleByName(ctx, companyID, name); err == nil {
			return domain.RoleResponse{}, rbacerrors.ErrRoleNameExists
		}
		role.Name = name
	}
	if req.Description != "" {
		role.Description = req.Description
	}
	if err := s.repo.UpdateRole(ctx, role); err != nil {
		return domain.RoleResponse{}, err
	}

	if req.Permissions != nil {
		permIDs, err := s.resolvePermissionIDs(ctx, req.Permissions)
		if err != nil {
			return domain.RoleResponse{}, err
		}
		if err := s.repo.UpdateRolePermissions(ctx, role.ID, permIDs); err != nil {
			return domain.RoleResponse{}, err
		}
	}

	s.invalidate(companyID)
	return s.toRoleResponse(ctx, *role)
}

func (s *service) DeleteRole(ctx context.Context, companyID, id string) error {
	if err := s.repo.DeleteRole(ctx, companyID, id); err != nil {
		return mapRoleError(err)
	}
	s.invalidate(companyID)
	return nil
}

func (s *service) ListPermissions(ctx context.Context) ([]domain.PermissionResponse, error) {
	perms, err := s.repo.ListPermissions(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]domain.PermissionResponse, len(perms))
	for i, p := range perms {
		res[i] = domain.PermissionResponse{ID: p.ID, Resource: p.Resource, Action: p.Action, Label: p.Label, Category: p.Category}
	}
	return res, nil
}

func (s *service) AssignRole(ctx context.Context, companyID, employeeID, roleID string) error {
	if _, err := s.repo.GetRoleByID(ctx, companyID, roleID); err != nil {
		return mapRoleError(err)
	}
	if err := s.repo.AssignEmployeeRole(ctx, employeeID, roleID); err != nil {
		return err
	}
	s.invalidate(companyID)
	return nil
}

// EnsureAdminRole bootstraps a company that has no roles yet: it creates the ADMIN role with
// every permission and assigns it to employeeID. Companies that already have roles are untouched.
// A non-nil tx keeps the bootstrap inside the caller's onboarding transaction.
func (s *service) EnsureAdminRole(ctx context.Context, tx *sql.Tx, companyID, employeeID string) error {
	repo := s.repo
	if tx != nil {
		repo = repo.WithTx(tx)
	}

	roles, err := repo.ListRoles(ctx, companyID)
	if err != nil {
		return err
	}
	if len(roles) > 0 {
		return nil
	}

	perms, err := repo.ListPermissions(ctx)
	if err != nil {
		return err
	}
	permIDs := make([]string, len(perms))
	for i, p := range perms {
		permIDs[i] = p.ID
	}

	role := &RoleRow{CompanyID: companyID, Name: AdminRoleName, Description: "Full access"}
	if err := repo.CreateRole(ctx, role); err != nil {
		return err
	}
	if err := repo.UpdateRolePermissions(ctx, role.ID, permIDs); err != nil {
		return err
	}
	if err := repo.AssignEmployeeRole(ctx, employeeID, role.ID); err != nil {
		return err
	}

	s.invalidate(companyID)
	s.logger.Info("admin role bootstrapped", zap.String("company_id", companyID), zap.String("employee_id", employeeID))
	return nil
}

func (s *service) resolvePermissionIDs(ctx context.Context, keys []string) ([]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	perms, err := s.repo.ListPermissions(ctx)
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]string, len(perms))
	for _, p := range perms {
		byKey[p.Key()] = p.ID
	}

	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		id, ok := byKey[strings.ToLower(strings.TrimSpace(k))]
		if !ok {
			return nil, fmt.Errorf("%w: %s", rbacerrors.ErrUnknownPermission, k)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *service) toRoleResponse(ctx context.Context, role RoleRow) (domain.RoleResponse, error) {
	perms, err := s.repo.GetPermissionsByRoleID(ctx, role.ID)
	if err != nil {
		return domain.RoleResponse{}, err
	}
	keys := make([]string, len(perms))
	for i, p := range perms {
		keys[i] = p.Key()
	}
	sort.Strings(keys)
	return domain.RoleResponse{ID: role.ID, Name: role.Name, Description: role.Description, Permissions: keys}, nil
}

func (s *service) invalidate(companyID string) {
	s.mu.Lock()
	delete(s.loadedAt, companyID)
	s.mu.Unlock()
}

func mapRoleError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rbacerrors.ErrRoleNotFound
	}
	return err
}
