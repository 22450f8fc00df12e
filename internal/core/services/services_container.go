package services

import (
	portsrepo "github.com/apex-am/apexam_backend/internal/core/ports/repositories"
	portssvc "github.com/apex-am/apexam_backend/internal/core/ports/services"
	"github.com/apex-am/apexam_backend/internal/platform/config"
)

// NewServiceContainer wires all services around the repository provider.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	permissionSvc := NewPermissionService(repos.AccountantRepo)

	return &portssvc.ServiceContainer{
		Auth:       NewAuthService(cfg, repos.UserRepo),
		User:       NewUserService(repos.UserRepo, repos.AccountantRepo, repos.BusinessRepo),
		Accountant: NewAccountantService(repos.AccountantRepo, permissionSvc),
		Business:   NewBusinessService(repos.BusinessRepo, repos.AccountantRepo, permissionSvc),
		Permission: permissionSvc,
	}
}
