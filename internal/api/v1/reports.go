package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"

	"github.com/vaadly/vaadly/internal/notify"
	"github.com/vaadly/vaadly/internal/report"
)

type ReportOutput struct {
	Body *report.Result
}

type OccupancyReportInput struct {
	Building *int `query:"building" doc:"Building number (optional)"`
}

type TenantListReportInput struct {
	Building        *int `query:"building" doc:"Building number (optional)"`
	IncludeContacts bool `query:"include_contacts" doc:"Include phone numbers"`
}

type HistoryReportInput struct {
	Building  int `path:"building" doc:"Building number"`
	Apartment int `path:"apartment" doc:"Apartment number"`
}

type CustomQueryInput struct {
	Body struct {
		Query string `json:"query" minLength:"1" maxLength:"2000" doc:"Natural language query"`
	}
}

// RegisterReportRoutes mounts AI report generation.
func RegisterReportRoutes(api huma.API, reporter Reporter, notifier notify.Notifier) {
	announce := func(ctx context.Context, result *report.Result) {
		reportType, _ := result.Metadata["report_type"].(string)
		if err := notifier.ReportGenerated(ctx, reportType, result.ID); err != nil {
			log.Warn().Err(err).Str("report_id", result.ID).Msg("report announcement failed")
		}
	}

	huma.Register(api, huma.Operation{
		OperationID: "report-occupancy",
		Method:      http.MethodGet,
		Path:        "/reports/occupancy",
		Summary:     "Generate the occupancy report",
		Tags:        []string{"Reports"},
	}, func(ctx context.Context, input *OccupancyReportInput) (*ReportOutput, error) {
		result, err := reporter.OccupancyReport(ctx, input.Building)
		if err != nil {
			return nil, mapError(err, "report generation failed")
		}
		announce(ctx, result)
		return &ReportOutput{Body: result}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "report-tenant-list",
		Method:      http.MethodGet,
		Path:        "/reports/tenant-list",
		Summary:     "Generate the tenant list report",
		Tags:        []string{"Reports"},
	}, func(ctx context.Context, input *TenantListReportInput) (*ReportOutput, error) {
		result, err := reporter.TenantListReport(ctx, input.Building, input.IncludeContacts)
		if err != nil {
			return nil, mapError(err, "report generation failed")
		}
		announce(ctx, result)
		return &ReportOutput{Body: result}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "report-history",
		Method:      http.MethodGet,
		Path:        "/reports/history/{building}/{apartment}",
		Summary:     "Generate the tenancy history report for an apartment",
		Tags:        []string{"Reports"},
	}, func(ctx context.Context, input *HistoryReportInput) (*ReportOutput, error) {
		result, err := reporter.HistoryReport(ctx, input.Building, input.Apartment)
		if err != nil {
			return nil, mapError(err, "report generation failed")
		}
		announce(ctx, result)
		return &ReportOutput{Body: result}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "report-custom-query",
		Method:      http.MethodPost,
		Path:        "/reports/query",
		Summary:     "Answer a natural language query about tenants",
		Tags:        []string{"Reports"},
	}, func(ctx context.Context, input *CustomQueryInput) (*ReportOutput, error) {
		result, err := reporter.CustomQuery(ctx, input.Body.Query)
		if err != nil {
			return nil, mapError(err, "report generation failed")
		}
		announce(ctx, result)
		return &ReportOutput{Body: result}, nil
	})
}
