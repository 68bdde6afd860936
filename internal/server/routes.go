package server

import (
	"github.com/danielgtaylor/huma/v2"

	v1 "github.com/vaadly/vaadly/internal/api/v1"
	"github.com/vaadly/vaadly/internal/notify"
)

func registerAuthRoutes(api huma.API, authSvc v1.AuthService) {
	v1.RegisterAuthRoutes(api, authSvc)
}

func registerCatalogRoutes(api huma.API, catalogue v1.Catalogue, notifier notify.Notifier) {
	v1.RegisterToolRoutes(api, catalogue, notifier)
	v1.RegisterResourceRoutes(api, catalogue)
	v1.RegisterPromptRoutes(api, catalogue)
}

func registerReportRoutes(api huma.API, reporter v1.Reporter, notifier notify.Notifier) {
	v1.RegisterReportRoutes(api, reporter, notifier)
}
