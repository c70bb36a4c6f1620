package rbac_test

import (
	"context"
	"database/sql"
	"testing"

	"go-personnel/internal/domain"
	"go-personnel/internal/rbac"
	rbacerrors "go-personnel/internal/rbac/errors"
	"go-personnel/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	employeeRoles map[string][]rbac.EmployeeRoleRow
	rolePerms     map[string][]rbac.RolePermissionRow
	roles         []rbac.RoleRow
	perms         []rbac.PermissionRow
	assigned      map[string][]string
	rolePermIDs   map[string][]string
	loads         int
	txBound       bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		employeeRoles: map[string][]rbac.EmployeeRoleRow{},
		rolePerms:     map[string][]rbac.RolePermissionRow{},
		assigned:      map[string][]string{},
		rolePermIDs:   map[string][]string{},
		perms: []rbac.PermissionRow{
			{ID: "p-1", Resource: "employee", Action: "read"},
			{ID: "p-2", Resource: "leave", Action: "approve"},
		},
	}
}

func (f *fakeRepo) WithTx(*sql.Tx) rbac.Repository {
	f.txBound = true
	return f
}
func (f *fakeRepo) GetEmployeeRoles(_ context.Context, companyID string) ([]rbac.EmployeeRoleRow, error) {
	f.loads++
	return f.employeeRoles[companyID], nil
}
func (f *fakeRepo) GetRolePermissions(_ context.Context, companyID string) ([]rbac.RolePermissionRow, error) {
	return f.rolePerms[companyID], nil
}
func (f *fakeRepo) ListRoles(_ context.Context, companyID string) ([]rbac.RoleRow, error) {
	var out []rbac.RoleRow
	for _, r := range f.roles {
		if r.CompanyID == companyID {
			out = append(out, r)
		}
	}
	return out, nil
}
func (f *fakeRepo) GetRoleByID(_ context.Context, companyID, id string) (*rbac.RoleRow, error) {
	for _, r := range f.roles {
		if r.CompanyID == companyID && r.ID == id {
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeRepo) GetRoleByName(_ context.Context, companyID, name string) (*rbac.RoleRow, error) {
	for _, r := range f.roles {
		if r.CompanyID == companyID && r.Name == name {
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeRepo) CreateRole(_ context.Context, role *rbac.RoleRow) error {
	role.ID = "role-" + role.Name
	f.roles = append(f.roles, *role)
	return nil
}
func (f *fakeRepo) UpdateRole(context.Context, *rbac.RoleRow) error { return nil }
func (f *fakeRepo) DeleteRole(context.Context, string, string) error { return nil }
func (f *fakeRepo) ListPermissions(context.Context) ([]rbac.PermissionRow, error) {
	return f.perms, nil
}
func (f *fakeRepo) GetPermissionsByRoleID(_ context.Context, roleID string) ([]rbac.PermissionRow, error) {
	var out []rbac.PermissionRow
	for _, id := range f.rolePermIDs[roleID] {
		for _, p := range f.perms {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}
func (f *fakeRepo) UpdateRolePermissions(_ context.Context, roleID string, permIDs []string) error {
	f.rolePermIDs[roleID] = permIDs
	return nil
}
func (f *fakeRepo) AssignEmployeeRole(_ context.Context, employeeID, roleID string) error {
	f.assigned[employeeID] = append(f.assigned[employeeID], roleID)
	return nil
}

func newService(t *testing.T, repo rbac.Repository) rbac.Service {
	t.Helper()
	enforcer, err := infra.NewEnforcer("")
	require.NoError(t, err)
	return rbac.NewService(repo, enforcer)
}

func TestRBACService_Enforce(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	repo.employeeRoles["company-1"] = []rbac.EmployeeRoleRow{{EmployeeID: "emp-1", RoleID: "role-hr"}}
	repo.rolePerms["company-1"] = []rbac.RolePermissionRow{{RoleID: "role-hr", Resource: "leave", Action: "approve"}}
	repo.employeeRoles["company-2"] = []rbac.EmployeeRoleRow{{EmployeeID: "emp-2", RoleID: "role-viewer"}}
	repo.rolePerms["company-2"] = []rbac.RolePermissionRow{{RoleID: "role-viewer", Resource: "employee", Action: "read"}}

	svc := newService(t, repo)

	allowed, err := svc.Enforce(ctx, domain.EnforceRequest{EmployeeID: "emp-1", CompanyID: "company-1", Resource: "leave", Action: "approve"})
	assert.NoError(t, err)
	assert.True(t, allowed)

	// loading a second company keeps the first one's policy
	allowed, err = svc.Enforce(ctx, domain.EnforceRequest{EmployeeID: "emp-2", CompanyID: "company-2", Resource: "employee", Action: "read"})
	assert.NoError(t, err)
	assert.True(t, allowed)

	denied, err := svc.Enforce(ctx, domain.EnforceRequest{EmployeeID: "emp-1", CompanyID: "company-2", Resource: "leave", Action: "approve"})
	assert.NoError(t, err)
	assert.False(t, denied)

	allowed, err = svc.Enforce(ctx, domain.EnforceRequest{EmployeeID: "emp-1", CompanyID: "company-1", Resource: "leave", Action: "approve"})
	assert.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 2, repo.loads, "policies are reused within the TTL")
}

func TestRBACService_EnsureAdminRole(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newService(t, repo)

	require.NoError(t, svc.EnsureAdminRole(ctx, nil, "company-1", "emp-1"))
	assert.Equal(t, []string{"role-ADMIN"}, repo.assigned["emp-1"])
	assert.ElementsMatch(t, []string{"p-1", "p-2"}, repo.rolePermIDs["role-ADMIN"])
	assert.False(t, repo.txBound)

	// a company that already has roles is left alone
	require.NoError(t, svc.EnsureAdminRole(ctx, &sql.Tx{}, "company-1", "emp-2"))
	assert.Empty(t, repo.assigned["emp-2"])
	assert.True(t, repo.txBound)
}

func TestRBACService_CreateRole(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newService(t, repo)

	resp, err := svc.CreateRole(ctx, "company-1", domain.CreateRoleRequest{Name: "hr", Permissions: []string{"leave:approve", "employee:read"}})
	require.NoError(t, err)
	assert.Equal(t, "HR", resp.Name)
	assert.Equal(t, []string{"employee:read", "leave:approve"}, resp.Permissions)

	_, err = svc.CreateRole(ctx, "company-1", domain.CreateRoleRequest{Name: "HR"})
	assert.ErrorIs(t, err, rbacerrors.ErrRoleNameExists)

	_, err = svc.CreateRole(ctx, "company-1", domain.CreateRoleRequest{Name: "other", Permissions: []string{"payroll:run"}})
	assert.ErrorIs(t, err, rbacerrors.ErrUnknownPermission)
}

func TestRBACService_AssignRole_UnknownRole(t *testing.T) {
	svc := newService(t, newFakeRepo())

	err := svc.AssignRole(context.Background(), "company-1", "emp-1", "missing")

	assert.ErrorIs(t, err, rbacerrors.ErrRoleNotFound)
}
