package api

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"connectrpc.com/connect"
)

const (
	FareServiceName     = "farebonus.v1.FareService"
	SettingsServiceName = "farebonus.v1.SettingsService"
	AuthServiceName     = "farebonus.v1.AuthService"
)

// Fully-qualified procedure names, also used as HTTP paths.
const (
	FareServiceListFaresProcedure           = "/farebonus.v1.FareService/ListFares"
	FareServiceCalculateProcedure           = "/farebonus.v1.FareService/Calculate"
	SettingsServiceGetSettingsProcedure     = "/farebonus.v1.SettingsService/GetSettings"
	SettingsServiceUpdateSettingsProcedure  = "/farebonus.v1.SettingsService/UpdateSettings"
	SettingsServiceRestoreDefaultsProcedure = "/farebonus.v1.SettingsService/RestoreDefaults"
	AuthServiceLoginProcedure               = "/farebonus.v1.AuthService/Login"
)

// FareServiceHandler is implemented by the fare service.
type FareServiceHandler interface {
	ListFares(context.Context, *connect.Request[ListFaresRequest]) (*connect.Response[ListFaresResponse], error)
	Calculate(context.Context, *connect.Request[CalculateRequest]) (*connect.Response[CalculateResponse], error)
}

// SettingsServiceHandler is implemented by the settings service.
type SettingsServiceHandler interface {
	GetSettings(context.Context, *connect.Request[GetSettingsRequest]) (*connect.Response[GetSettingsResponse], error)
	UpdateSettings(context.Context, *connect.Request[UpdateSettingsRequest]) (*connect.Response[UpdateSettingsResponse], error)
	RestoreDefaults(context.Context, *connect.Request[RestoreDefaultsRequest]) (*connect.Response[RestoreDefaultsResponse], error)
}

// AuthServiceHandler is implemented by the auth service.
type AuthServiceHandler interface {
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
}

// NewFareServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewFareServiceHandler(svc FareServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	routes := map[string]http.Handler{
		FareServiceListFaresProcedure: connect.NewUnaryHandler(FareServiceListFaresProcedure, svc.ListFares, opts...),
		FareServiceCalculateProcedure: connect.NewUnaryHandler(FareServiceCalculateProcedure, svc.Calculate, opts...),
	}
	return "/" + FareServiceName + "/", router(routes)
}

// NewSettingsServiceHandler builds an HTTP handler from the service
// implementation. guard runs in front of every procedure that changes
// settings, inside any interceptor in opts, so rejected calls still pass
// through them.
func NewSettingsServiceHandler(svc SettingsServiceHandler, guard connect.Interceptor, opts ...connect.HandlerOption) (string, http.Handler) {
	public := withCodec(opts)
	protected := public
	if guard != nil {
		protected = append(slices.Clip(public), connect.WithInterceptors(guard))
	}

	routes := map[string]http.Handler{
		SettingsServiceGetSettingsProcedure:     connect.NewUnaryHandler(SettingsServiceGetSettingsProcedure, svc.GetSettings, public...),
		SettingsServiceUpdateSettingsProcedure:  connect.NewUnaryHandler(SettingsServiceUpdateSettingsProcedure, svc.UpdateSettings, protected...),
		SettingsServiceRestoreDefaultsProcedure: connect.NewUnaryHandler(SettingsServiceRestoreDefaultsProcedure, svc.RestoreDefaults, protected...),
	}
	return "/" + SettingsServiceName + "/", router(routes)
}

// NewAuthServiceHandler builds an HTTP handler from the service implementation.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	routes := map[string]http.Handler{
		AuthServiceLoginProcedure: connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...),
	}
	return "/" + AuthServiceName + "/", router(routes)
}

// FareServiceClient calls the fare service.
type FareServiceClient struct {
	listFares *connect.Client[ListFaresRequest, ListFaresResponse]
	calculate *connect.Client[CalculateRequest, CalculateResponse]
}

// NewFareServiceClient constructs a client for the fare service at baseURL.
func NewFareServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *FareServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withClientCodec(opts)
	return &FareServiceClient{
		listFares: connect.NewClient[ListFaresRequest, ListFaresResponse](httpClient, baseURL+FareServiceListFaresProcedure, opts...),
		calculate: connect.NewClient[CalculateRequest, CalculateResponse](httpClient, baseURL+FareServiceCalculateProcedure, opts...),
	}
}

func (c *FareServiceClient) ListFares(ctx context.Context, req *connect.Request[ListFaresRequest]) (*connect.Response[ListFaresResponse], error) {
	return c.listFares.CallUnary(ctx, req)
}

func (c *FareServiceClient) Calculate(ctx context.Context, req *connect.Request[CalculateRequest]) (*connect.Response[CalculateResponse], error) {
	return c.calculate.CallUnary(ctx, req)
}

// SettingsServiceClient calls the settings service.
type SettingsServiceClient struct {
	getSettings     *connect.Client[GetSettingsRequest, GetSettingsResponse]
	updateSettings  *connect.Client[UpdateSettingsRequest, UpdateSettingsResponse]
	restoreDefaults *connect.Client[RestoreDefaultsRequest, RestoreDefaultsResponse]
}

// NewSettingsServiceClient constructs a client for the settings service at baseURL.
func NewSettingsServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SettingsServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withClientCodec(opts)
	return &SettingsServiceClient{
		getSettings:     connect.NewClient[GetSettingsRequest, GetSettingsResponse](httpClient, baseURL+SettingsServiceGetSettingsProcedure, opts...),
		updateSettings:  connect.NewClient[UpdateSettingsRequest, UpdateSettingsResponse](httpClient, baseURL+SettingsServiceUpdateSettingsProcedure, opts...),
		restoreDefaults: connect.NewClient[RestoreDefaultsRequest, RestoreDefaultsResponse](httpClient, baseURL+SettingsServiceRestoreDefaultsProcedure, opts...),
	}
}

func (c *SettingsServiceClient) GetSettings(ctx context.Context, req *connect.Request[GetSettingsRequest]) (*connect.Response[GetSettingsResponse], error) {
	return c.getSettings.CallUnary(ctx, req)
}

func (c *SettingsServiceClient) UpdateSettings(ctx context.Context, req *connect.Request[UpdateSettingsRequest]) (*connect.Response[UpdateSettingsResponse], error) {
	return c.updateSettings.CallUnary(ctx, req)
}

func (c *SettingsServiceClient) RestoreDefaults(ctx context.Context, req *connect.Request[RestoreDefaultsRequest]) (*connect.Response[RestoreDefaultsResponse], error) {
	return c.restoreDefaults.CallUnary(ctx, req)
}

// AuthServiceClient calls the auth service.
type AuthServiceClient struct {
	login *connect.Client[LoginRequest, LoginResponse]
}

// NewAuthServiceClient constructs a client for the auth service at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	return &AuthServiceClient{
		login: connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, withClientCodec(opts)...),
	}
}

func (c *AuthServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func withCodec(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
}

func withClientCodec(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
}

func router(routes map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := routes[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}
